// Package ui provides terminal UI utilities with color support.
// It handles color output with automatic detection, respects NO_COLOR,
// and provides message helpers plus status-line coloring for fake replies.
package ui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/muesli/termenv"
)

type UI struct {
	w     io.Writer
	out   *termenv.Output
	color bool
}

type contextKey struct{}

// New creates a UI writing to stderr with the specified color mode.
// colorMode can be "never", "always", or "auto".
// The NO_COLOR environment variable overrides color=true.
func New(colorMode string) *UI {
	return NewWithWriter(os.Stderr, colorMode)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, colorMode string) *UI {
	out := termenv.NewOutput(w)
	var color bool

	switch colorMode {
	case "never":
		color = false
	case "always":
		color = true
	default: // auto
		color = out.ColorProfile() != termenv.Ascii
	}

	if os.Getenv("NO_COLOR") != "" {
		color = false
	}

	return &UI{w: w, out: out, color: color}
}

func (u *UI) paint(msg, color string) string {
	if !u.color {
		return msg
	}
	return u.out.String(msg).Foreground(u.out.Color(color)).String()
}

// Success prints a success message in green.
func (u *UI) Success(msg string) {
	fmt.Fprintln(u.w, u.paint(msg, "2"))
}

// Error prints an error message in red.
func (u *UI) Error(msg string) {
	fmt.Fprintln(u.w, u.paint(msg, "1"))
}

// Warning prints a warning message in yellow.
func (u *UI) Warning(msg string) {
	fmt.Fprintln(u.w, u.paint(msg, "3"))
}

// Info prints an informational message.
func (u *UI) Info(msg string) {
	fmt.Fprintln(u.w, msg)
}

// Status renders a status line such as "202 Accepted", colored by class:
// green for 2xx, cyan for 3xx, yellow for 4xx and red for 5xx.
func (u *UI) Status(code int) string {
	line := fmt.Sprintf("%d %s", code, http.StatusText(code))
	switch {
	case code >= 500:
		return u.paint(line, "1")
	case code >= 400:
		return u.paint(line, "3")
	case code >= 300:
		return u.paint(line, "6")
	case code >= 200:
		return u.paint(line, "2")
	default:
		return line
	}
}

// WithUI stores the UI in the context.
func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext retrieves the UI from the context.
// If no UI is found in the context, returns New("auto").
func FromContext(ctx context.Context) *UI {
	if u, ok := ctx.Value(contextKey{}).(*UI); ok {
		return u
	}
	return New("auto")
}
