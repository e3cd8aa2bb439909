package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/computefake/internal/fakes"
	"github.com/salmonumbrella/computefake/internal/outfmt"
)

func newRoutesCmd(app *App) *cobra.Command {
	var family string
	var configPath string

	cmd := &cobra.Command{
		Use:     "routes",
		Aliases: []string{"ls"},
		Short:   "List the handler table",
		Args:    cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			opts, err := configOptions(configPath)
			if err != nil {
				return err
			}
			routes := app.NewFake(opts...).Routes()

			if family != "" {
				filtered := routes[:0]
				for _, r := range routes {
					if strings.EqualFold(r.Family, family) {
						filtered = append(filtered, r)
					}
				}
				routes = filtered
			}

			if app.IsJSON(cmd.Context()) {
				return app.PrintJSON(cmd, routes)
			}
			return printRoutes(cmd, routes)
		}),
	}
	cmd.Flags().StringVar(&family, "family", "", "Only list routes of this family (servers, flavors, admin, ...)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with extra routes")
	return cmd
}

func printRoutes(cmd *cobra.Command, routes []fakes.RouteInfo) error {
	if len(routes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No routes found")
		return nil
	}

	tw := outfmt.NewTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(tw, "METHOD\tPATH\tKEY\tFAMILY")
	for _, r := range routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Method,
			outfmt.SanitizeTab(r.Path),
			r.Key,
			r.Family,
		)
	}
	return tw.Flush()
}
