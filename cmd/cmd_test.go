//go:build !release

package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mordilloSan/helog/internal/diag"
	"github.com/mordilloSan/helog/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(logger.EnvFormat, "")
	t.Setenv(logger.EnvIgnoreLevels, "")
	t.Setenv(logger.EnvIgnoreTypes, "")
	t.Setenv(diag.EnvLevel, "")
}

// syncBuffer is a bytes.Buffer safe to read while a command writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// start runs the command tree in the background with stdin fed through a
// pipe. The returned channel yields the result of Execute.
func start(t *testing.T, ctx context.Context, args ...string) (*io.PipeWriter, *syncBuffer, *syncBuffer, <-chan error) {
	t.Helper()
	stdin, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(stdin)
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()
	return w, stdout, stderr, done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("command did not return")
		return nil
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEmit_RendersFormat(t *testing.T) {
	clearEnv(t)
	out, _, err := run(t, "", "emit", "-f", "{$level}-{$type}-{$message}", "-l", "fatal", "-t", "network", "boom")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if out != "ERROR-NETWORK-boom\n" {
		t.Fatalf("output = %q, want %q", out, "ERROR-NETWORK-boom\n")
	}
}

func TestEmit_JoinsArguments(t *testing.T) {
	clearEnv(t)
	out, _, err := run(t, "", "emit", "--format", "{$message}", "connection", "reset")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if out != "connection reset\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestEmit_ConfigIgnoresType(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "helog.yaml")
	if err := os.WriteFile(path, []byte("format: \"{$type} {$message}\"\nignore_types: [network]\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, _, err := run(t, "", "--config", path, "emit", "-t", "network", "hidden")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if out != "" {
		t.Fatalf("ignored type should not be written, got %q", out)
	}

	out, _, err = run(t, "", "--config", path, "emit", "-t", "load", "shown")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if out != "LOAD shown\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestEmit_ColorAlways(t *testing.T) {
	clearEnv(t)
	out, _, err := run(t, "", "--color", "always", "emit", "-f", "{$level}", "-l", "warn", "x")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(out, "\033[") || !strings.Contains(out, "WARNING") {
		t.Fatalf("expected colored label, got %q", out)
	}
}

func TestEmit_Errors(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"bad level", []string{"emit", "-l", "loud", "x"}, "unknown log level"},
		{"bad type", []string{"emit", "-t", "audio", "x"}, "unknown log type"},
		{"bad color", []string{"--color", "sometimes", "emit", "x"}, "invalid --color"},
		{"no message", []string{"emit"}, "requires at least 1 arg"},
		{"missing config", []string{"--config", "/nonexistent/helog.yaml", "emit", "x"}, "read config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, "", tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestPipe_OneRecordPerLine(t *testing.T) {
	clearEnv(t)
	out, _, err := run(t, "first\nsecond\n", "pipe", "-f", "{$type}:{$message}", "-t", "parsing")
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if out != "PARSING:first\nPARSING:second\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestPipe_WatchRequiresConfig(t *testing.T) {
	clearEnv(t)
	_, _, err := run(t, "", "pipe", "--watch")
	if err == nil || !strings.Contains(err.Error(), "--watch requires --config") {
		t.Fatalf("error = %v", err)
	}
}

func TestPipe_WithWatch(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "helog.toml")
	if err := os.WriteFile(path, []byte(`format = "{$message}!"`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	out, _, err := run(t, "a\n", "--config", path, "pipe", "--watch")
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if out != "a!\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestPipe_LongLine(t *testing.T) {
	clearEnv(t)
	long := strings.Repeat("x", 70*1024)
	out, _, err := run(t, long+"\nnext\n", "pipe", "-f", "{$message}")
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if out != long+"\nnext\n" {
		t.Fatalf("output has %d bytes, want both lines (%d bytes)", len(out), len(long)+6)
	}
}

func TestPipe_LineEndings(t *testing.T) {
	clearEnv(t)
	out, _, err := run(t, "crlf\r\n\nlast", "pipe", "-f", "<{$message}>")
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if out != "<crlf>\n<>\n<last>\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestPipe_ReturnsOnCancelWhileIdle(t *testing.T) {
	clearEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, stdout, _, done := start(t, ctx, "pipe", "-f", "{$message}")

	if _, err := io.WriteString(w, "before\n"); err != nil {
		t.Fatalf("write stdin: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for stdout.String() != "before\n" {
		if time.Now().After(deadline) {
			t.Fatalf("line not piped, output = %q", stdout.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	// stdin stays open and silent.
	cancel()
	if err := wait(t, done); err != nil {
		t.Fatalf("pipe: %v", err)
	}
}

func TestPipe_WatchKeepsFlagsOnReload(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "helog.yaml")
	if err := os.WriteFile(path, []byte(`format: "file:{$message}"`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	w, stdout, stderr, done := start(t, context.Background(),
		"-v", "--color", "never", "--config", path, "pipe", "-f", "flag:{$message}", "--watch")

	updated := []byte("format: \"file:{$message}\"\ncolorize: true\n")
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(stderr.String(), "config reloaded") {
		if time.Now().After(deadline) {
			t.Fatalf("config was not reloaded, diagnostics:\n%s", stderr.String())
		}
		if err := os.WriteFile(path, updated, 0o644); err != nil {
			t.Fatalf("failed to rewrite config: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	if _, err := io.WriteString(w, "a\n"); err != nil {
		t.Fatalf("write stdin: %v", err)
	}
	_ = w.Close()
	if err := wait(t, done); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if got := stdout.String(); got != "flag:a\n" {
		t.Fatalf("output after reload = %q, want %q", got, "flag:a\n")
	}
}

func TestPipe_WaitsForWatcher(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "helog.toml")
	if err := os.WriteFile(path, []byte(`format = "{$message}"`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, stderr, err := run(t, "a\n", "-v", "--config", path, "pipe", "--watch")
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if !strings.Contains(stderr, "config watcher stopped") {
		t.Fatalf("pipe returned before the watcher stopped, diagnostics:\n%s", stderr)
	}
}

func TestLevels_ListsLabels(t *testing.T) {
	out, _, err := run(t, "", "levels")
	if err != nil {
		t.Fatalf("levels: %v", err)
	}
	for _, want := range []string{"WARNING", "ERROR", "RELEASE", "DOWNLOAD", "PARSING"} {
		if !strings.Contains(out, want) {
			t.Fatalf("levels output missing %s: %q", want, out)
		}
	}
}
