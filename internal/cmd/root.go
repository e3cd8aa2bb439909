package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cerrors "github.com/salmonumbrella/computefake/internal/errors"
	"github.com/salmonumbrella/computefake/internal/logging"
	"github.com/salmonumbrella/computefake/internal/outfmt"
	"github.com/salmonumbrella/computefake/internal/ui"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type rootFlags struct {
	Color      string
	Output     string
	Debug      bool
	Query      string
	Extensions []string
	Prefix     string
}

type contextKey string

const (
	outputModeKey contextKey = "outputMode"
	queryKey      contextKey = "query"
)

func Execute(args []string) error {
	app := NewApp()
	root := NewRootCmd(app)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		if app.Flags.Output == "json" {
			payload := map[string]any{
				"error": map[string]any{
					"message": err.Error(),
				},
			}
			if cerrors.ContainsSuggestion(err) {
				payload["error"].(map[string]any)["suggestion"] = cerrors.GetSuggestion(err)
			}
			_ = outfmt.WriteJSON(os.Stderr, payload)
		} else {
			// Print the main error
			fmt.Fprintln(os.Stderr, "Error:", err)

			// Print suggestion if available
			if cerrors.ContainsSuggestion(err) {
				fmt.Fprintln(os.Stderr, "")
				fmt.Fprintln(os.Stderr, "Suggestion:", cerrors.GetSuggestion(err))
			}
		}
	}
	return err
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "computefake",
		Short:         "Fake compute API transport: inspect, dispatch and serve canned replies",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # What handlers exist?
  computefake routes --family servers

  # Which handler would a request hit?
  computefake key GET '/os-hosts/sample_host?zone=nova'

  # Dispatch a request against a fresh fake
  computefake dispatch POST /servers/1234/action --body '{"reboot": {"type": "HARD"}}'
  echo '{"quota_set": {"tenant_id": "test"}}' | computefake dispatch PUT /os-quota-sets/test

  # Drive the bundled compute client through the fake
  computefake servers --detail

  # Serve the fake over HTTP for other tools
  computefake serve --listen 127.0.0.1:8774 --prefix /v1.1/project_id

  # JSON output for scripting
  computefake --output=json routes --query '[.[].key]'
`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// UI (must come first)
			u := ui.NewWithWriter(cmd.ErrOrStderr(), app.Flags.Color)
			ctx := ui.WithUI(cmd.Context(), u)
			app.UI = u

			// Output format
			mode, err := outfmt.ParseMode(app.Flags.Output)
			if err != nil {
				return err
			}
			ctx = context.WithValue(ctx, outputModeKey, mode)

			// Query filter
			ctx = context.WithValue(ctx, queryKey, app.Flags.Query)

			// Logging
			logger := logging.New(cmd.ErrOrStderr(), app.Flags.Debug)
			ctx = logging.WithLogger(ctx, logger)
			app.Logger = logger

			ctx = WithApp(ctx, app)
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&app.Flags.Color, "color", app.Flags.Color, "Color output: auto|always|never")
	root.PersistentFlags().StringVar(&app.Flags.Output, "output", app.Flags.Output, "Output format: text|json")
	root.PersistentFlags().BoolVar(&app.Flags.Debug, "debug", app.Flags.Debug, "Enable debug logging")
	root.PersistentFlags().StringVar(&app.Flags.Query, "query", app.Flags.Query, "JQ filter expression for JSON output")
	root.PersistentFlags().StringSliceVar(&app.Flags.Extensions, "extension", app.Flags.Extensions, "Extension the fake advertises (repeatable)")
	root.PersistentFlags().StringVar(&app.Flags.Prefix, "prefix", app.Flags.Prefix, "Path prefix stripped from request URLs, e.g. /v1.1/project_id")

	root.AddCommand(newRoutesCmd(app))
	root.AddCommand(newKeyCmd(app))
	root.AddCommand(newDispatchCmd(app))
	root.AddCommand(newServersCmd(app))
	root.AddCommand(newServeCmd(app))
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
