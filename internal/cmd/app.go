package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	cerrors "github.com/salmonumbrella/computefake/internal/errors"
	"github.com/salmonumbrella/computefake/internal/fakes"
	"github.com/salmonumbrella/computefake/internal/logging"
	"github.com/salmonumbrella/computefake/internal/outfmt"
	"github.com/salmonumbrella/computefake/internal/ui"
)

type appKey struct{}

type App struct {
	Flags  *rootFlags
	UI     *ui.UI
	Logger *slog.Logger
}

func NewApp() *App {
	flags := rootFlags{
		Color:      envOr("COMPUTEFAKE_COLOR", "auto"),
		Output:     envOr("COMPUTEFAKE_OUTPUT", "text"),
		Debug:      envBool("COMPUTEFAKE_DEBUG", false),
		Query:      envOr("COMPUTEFAKE_QUERY", ""),
		Extensions: envList("COMPUTEFAKE_EXTENSIONS"),
		Prefix:     envOr("COMPUTEFAKE_PREFIX", ""),
	}
	return &App{Flags: &flags}
}

func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func AppFromContext(ctx context.Context) *App {
	if app, ok := ctx.Value(appKey{}).(*App); ok {
		return app
	}
	return nil
}

// runE wraps a cobra RunE to inject the App and normalize errors.
func runE(app *App, fn func(cmd *cobra.Command, args []string, app *App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if app == nil {
			app = AppFromContext(cmd.Context())
		}
		if app == nil {
			app = &App{Flags: &rootFlags{}}
		}
		return mapCommandError(fn(cmd, args, app))
	}
}

func (a *App) IsJSON(ctx context.Context) bool {
	mode, ok := ctx.Value(outputModeKey).(outfmt.Mode)
	return ok && mode == outfmt.JSON
}

func (a *App) Query(ctx context.Context) string {
	query, _ := ctx.Value(queryKey).(string)
	return query
}

func (a *App) PrintJSON(cmd *cobra.Command, v any) error {
	return outfmt.WriteJSONFiltered(cmd.OutOrStdout(), v, a.Query(cmd.Context()))
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return logging.Discard()
}

// NewFake builds a fake transport from the global flags. Later options
// win, so callers can override the prefix.
func (a *App) NewFake(opts ...fakes.Option) *fakes.Transport {
	base := []fakes.Option{fakes.WithLogger(a.logger())}
	if a.Flags != nil {
		base = append(base,
			fakes.WithPrefix(a.Flags.Prefix),
			fakes.WithExtensions(a.Flags.Extensions...),
		)
	}
	return fakes.New(append(base, opts...)...)
}

// Suggest wraps an error with a user-facing suggestion.
func Suggest(err error, suggestion string) error {
	return cerrors.WithSuggestion(err, suggestion)
}
