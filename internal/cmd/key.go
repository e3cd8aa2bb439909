package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/computefake/internal/fakes"
)

type keyResult struct {
	Method     string `json:"method"`
	URL        string `json:"url"`
	Key        string `json:"key"`
	Registered bool   `json:"registered"`
}

func newKeyCmd(app *App) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "key <method> <url>",
		Short: "Print the handler key a request resolves to",
		Long: strings.TrimSpace(`
Print the handler key a request resolves to. The key is the lower-cased
method, an underscore, then the path with its query string removed and
every '/', '.' and '-' replaced by '_'.`),
		Args: cobra.ExactArgs(2),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			method := strings.ToUpper(args[0])
			rawURL := args[1]

			opts, err := configOptions(configPath)
			if err != nil {
				return err
			}
			fake := app.NewFake(opts...)
			res := keyResult{
				Method:     method,
				URL:        rawURL,
				Key:        fakes.HandlerKey(method, rawURL),
				Registered: fake.HasRoute(method, rawURL),
			}

			if app.IsJSON(cmd.Context()) {
				return app.PrintJSON(cmd, res)
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Key)
			if !res.Registered {
				app.UI.Warning("no handler registered for " + res.Key)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with extra routes")
	return cmd
}
