package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// clearEnv unsets every COMPUTEFAKE_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COMPUTEFAKE_COLOR",
		"COMPUTEFAKE_OUTPUT",
		"COMPUTEFAKE_DEBUG",
		"COMPUTEFAKE_QUERY",
		"COMPUTEFAKE_EXTENSIONS",
		"COMPUTEFAKE_PREFIX",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")
}

// runCmd executes the root command with args and returns what it wrote.
// stdin is empty unless given.
func runCmd(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	clearEnv(t)

	var outBuf, errBuf bytes.Buffer
	root := NewRootCmd(NewApp())
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)

	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// emptyStdin points os.Stdin at the null device for the duration of the
// test, so commands that read piped input see EOF.
func emptyStdin(t *testing.T) {
	t.Helper()

	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	stdin := os.Stdin
	os.Stdin = f
	t.Cleanup(func() {
		os.Stdin = stdin
		_ = f.Close()
	})
}

// captureStdout captures stdout output for assertions in tests.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	stdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = stdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}

// captureStderr captures stderr output for assertions in tests.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	stderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w

	fn()

	_ = w.Close()
	os.Stderr = stderr

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}

// newTestApp returns a minimal App for command unit tests.
func newTestApp() *App {
	return &App{Flags: &rootFlags{}}
}
