package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	cerrors "github.com/salmonumbrella/computefake/internal/errors"
	"github.com/salmonumbrella/computefake/internal/outfmt"
)

type dispatchResult struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body"`
}

func newDispatchCmd(app *App) *cobra.Command {
	var bodyArg string
	var configPath string

	cmd := &cobra.Command{
		Use:   "dispatch <method> <url>",
		Short: "Send one request to a fresh fake and print the canned reply",
		Long: strings.TrimSpace(`
Send one request to a fresh fake and print the canned reply.

The request body is taken from --body, or from stdin when --body is "-"
or stdin is not a terminal. It must be JSON.`),
		Args: cobra.ExactArgs(2),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			method := strings.ToUpper(args[0])
			rawURL := args[1]

			body, err := readRequestBody(cmd.InOrStdin(), bodyArg)
			if err != nil {
				return err
			}

			opts, err := configOptions(configPath)
			if err != nil {
				return err
			}
			fake := app.NewFake(opts...)

			resp, out, err := fake.Dispatch(method, rawURL, body)
			if err != nil {
				return err
			}

			res := dispatchResult{
				Status:  resp.StatusCode,
				Headers: flattenHeader(resp.Header),
				Body:    out,
			}
			if app.IsJSON(cmd.Context()) {
				return app.PrintJSON(cmd, res)
			}
			return printDispatch(cmd, app, res)
		}),
	}
	cmd.Flags().StringVar(&bodyArg, "body", "", "JSON request body, or - to read it from stdin")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with extra routes")
	return cmd
}

// readRequestBody decodes the request body from arg or stdin. It returns
// nil when there is no body.
func readRequestBody(stdin io.Reader, arg string) (any, error) {
	var data []byte
	switch {
	case arg == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data = b
	case arg != "":
		data = []byte(arg)
	case !isTerminal(stdin):
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data = b
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, Suggest(fmt.Errorf("request body is not JSON: %w", err), cerrors.SuggestionValidJSON)
	}
	return body, nil
}

// isTerminal reports whether r is an interactive terminal. Readers that are
// not files, such as test buffers, are treated as piped input.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[k] = strings.Join(vs, ", ")
	}
	return out
}

func printDispatch(cmd *cobra.Command, app *App, res dispatchResult) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, app.UI.Status(res.Status))

	keys := make([]string, 0, len(res.Headers))
	for k := range res.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, res.Headers[k])
	}

	if res.Body == nil {
		return nil
	}
	fmt.Fprintln(w)
	return outfmt.WriteJSONFiltered(w, res.Body, app.Query(cmd.Context()))
}
