package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
)

// Validation errors. Their messages are returned to callers verbatim.
var (
	ErrMissingParameters = goerr.New("Missing required parameters: method, likelihood, impact, detectability")
	ErrUnsupportedMethod = goerr.New(`Unsupported method. Use "RPN" or "WEIGHTED"`, goerr.ID("unsupported_method"))
	ErrExposureRequired  = goerr.New("Exposure parameter required for WEIGHTED method")
	ErrOutOfRange        = goerr.New("Parameter out of range")
	ErrInvalidItem       = goerr.New("Invalid item payload")
	ErrItemsRequired     = goerr.New("Items array is required and must not be empty")
)

var validationErrors = []error{
	ErrMissingParameters,
	ErrUnsupportedMethod,
	ErrExposureRequired,
	ErrOutOfRange,
	ErrInvalidItem,
	ErrItemsRequired,
}

// MsgCalculationError prefixes every computation failure reported to callers
const MsgCalculationError = "Error calculating risk score"

// Context keys for error values
const (
	IndexKey     = "index"
	MethodKey    = "method"
	ParameterKey = "parameter"
	ValueKey     = "value"
)

// IsValidationError reports whether err was caused by malformed or incomplete input
func IsValidationError(err error) bool {
	return validationSentinel(err) != nil
}

// Message returns the caller-facing message for err. Validation errors map
// to their fixed sentinel text, computation errors to MsgCalculationError
// followed by the engine cause; anything else keeps the full error chain.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if sentinel := validationSentinel(err); sentinel != nil {
		return sentinel.Error()
	}
	if cause := model.ComputationCause(err); cause != nil {
		return MsgCalculationError + ": " + cause.Error()
	}
	return err.Error()
}

func validationSentinel(err error) error {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

// IsComputationError reports whether err is an arithmetic failure of the scoring engine
func IsComputationError(err error) bool {
	return model.IsComputationError(err)
}
