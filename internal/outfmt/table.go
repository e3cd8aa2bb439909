package outfmt

import (
	"io"
	"strings"
	"text/tabwriter"
)

// NewTabWriter returns a tabwriter configured for column output to w.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// SanitizeTab replaces tab characters with spaces for clean tabwriter output.
func SanitizeTab(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
