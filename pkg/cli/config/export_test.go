package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewScoringForTest creates a Scoring config for testing purposes
func NewScoringForTest(weightsFile string, strictRanges bool) *Scoring {
	return &Scoring{
		weightsFile:  weightsFile,
		strictRanges: strictRanges,
	}
}

// NewSentryForTest creates a Sentry config for testing purposes
func NewSentryForTest(dsn, environment string) *Sentry {
	return &Sentry{
		dsn:         dsn,
		environment: environment,
	}
}
