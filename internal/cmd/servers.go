package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/computefake/internal/compute"
	"github.com/salmonumbrella/computefake/internal/fakes"
	"github.com/salmonumbrella/computefake/internal/outfmt"
)

// fakeEndpoint is never dialed; the fake transport answers every request.
const fakeEndpoint = "http://compute.fake"

func newServersCmd(app *App) *cobra.Command {
	var detail bool
	var project string

	cmd := &cobra.Command{
		Use:   "servers",
		Short: "List servers through the compute client backed by the fake",
		Args:  cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			client, fake, err := newFakeClient(app, project)
			if err != nil {
				return err
			}

			servers, err := client.ListServers(cmd.Context(), detail)
			if err != nil {
				return err
			}
			app.logger().Debug("listed servers", "count", len(servers), "calls", len(fake.Calls()))

			if app.IsJSON(cmd.Context()) {
				return app.PrintJSON(cmd, servers)
			}
			return printServers(cmd, servers)
		}),
	}
	cmd.Flags().BoolVar(&detail, "detail", false, "Use the detailed listing")
	cmd.Flags().StringVar(&project, "project", "project_id", "Project the client is scoped to")
	return cmd
}

// newFakeClient wires a compute client to a fresh fake whose prefix matches
// the client's base path.
func newFakeClient(app *App, project string) (*compute.Client, *fakes.Transport, error) {
	prefix := "/" + compute.DefaultAPIVersion + "/" + url.PathEscape(project)
	fake := app.NewFake(fakes.WithPrefix(prefix))

	client, err := compute.NewClient(fakeEndpoint, project,
		compute.WithTransport(fake),
		compute.WithLogger(app.logger()),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, fake, nil
}

func printServers(cmd *cobra.Command, servers []compute.Server) error {
	if len(servers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No servers found")
		return nil
	}

	tw := outfmt.NewTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tFLAVOR")
	for _, s := range servers {
		status := s.Status
		if status == "" {
			status = "-"
		}
		flavor := "-"
		if !s.Flavor.IsZero() {
			flavor = string(s.Flavor.ID)
			if s.Flavor.Name != "" {
				flavor = s.Flavor.Name
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.ID,
			outfmt.SanitizeTab(s.Name),
			status,
			outfmt.SanitizeTab(flavor),
		)
	}
	return tw.Flush()
}
