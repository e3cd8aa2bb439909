package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/computefake/internal/config"
	cerrors "github.com/salmonumbrella/computefake/internal/errors"
	"github.com/salmonumbrella/computefake/internal/fakes"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var listen string
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fake compute API over HTTP",
		Args:  cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return Suggest(err, cerrors.SuggestionCheckConfig)
				}
				cfg = loaded
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			fake := app.NewFake(cfg.Options()...)

			ln, err := net.Listen("tcp", cfg.Server.Listen)
			if err != nil {
				return Suggest(fmt.Errorf("listen on %s: %w", cfg.Server.Listen, err), cerrors.SuggestionCheckNet)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app.UI.Success(fmt.Sprintf("Serving %d routes on http://%s%s", len(fake.Routes()), ln.Addr(), fake.Prefix()))
			return serve(ctx, ln, newServeHandler(fake, app.logger()), app.logger())
		}),
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default "+config.DefaultListen+")")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with server settings and extra routes")
	return cmd
}

// serve runs an HTTP server on ln until ctx is done, then shuts it down.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newServeHandler wraps the fake with request logging.
func newServeHandler(fake *fakes.Transport, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fake.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelWarn
		}
		logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// configOptions loads extra fake options from a config file, if one is
// given.
func configOptions(path string) ([]fakes.Option, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, Suggest(err, cerrors.SuggestionCheckConfig)
	}
	return cfg.Options(), nil
}
