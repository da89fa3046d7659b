package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskcalc/pkg/controller/http"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var allowedOrigins []string
	var enableMetrics bool
	var bodyLimit int
	var scoringCfg config.Scoring

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":3000",
			Sources:     cli.EnvVars("RISKCALC_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "Origin allowed by CORS (repeatable)",
			Value:       append([]string(nil), httpctrl.DefaultAllowedOrigins...),
			Sources:     cli.EnvVars("RISKCALC_ALLOWED_ORIGINS"),
			Destination: &allowedOrigins,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics on /metrics",
			Value:       true,
			Sources:     cli.EnvVars("RISKCALC_METRICS"),
			Destination: &enableMetrics,
		},
		&cli.IntFlag{
			Name:        "body-limit",
			Usage:       "Maximum request body size in bytes",
			Value:       int(httpctrl.DefaultBodyLimit),
			Sources:     cli.EnvVars("RISKCALC_BODY_LIMIT"),
			Destination: &bodyLimit,
		},
	}
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure scoring")
			}

			httpOpts := []httpctrl.Options{
				httpctrl.WithAllowedOrigins(allowedOrigins),
				httpctrl.WithBodyLimit(int64(bodyLimit)),
			}
			if enableMetrics {
				httpOpts = append(httpOpts, httpctrl.WithMetrics(httpctrl.NewMetrics()))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Risk, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"metrics", enableMetrics,
					"allowed_origins", allowedOrigins,
					"scoring", scoringCfg,
					"default_weights", uc.Risk.DefaultWeights(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
