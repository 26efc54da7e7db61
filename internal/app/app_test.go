package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"syscall"
	"testing"

	"go.uber.org/multierr"
)

func TestWriteFailure(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		want  int
		level string
	}{
		{"epipe", fmt.Errorf("write o.fa: %w", syscall.EPIPE), exitOK, "level=WARN"},
		{"closed pipe", io.ErrClosedPipe, exitOK, "level=WARN"},
		{"joined close errors", multierr.Append(errors.New("x"), syscall.EPIPE), exitOK, "level=WARN"},
		{"disk full", errors.New("no space left on device"), exitRuntime, "level=ERROR"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var logs bytes.Buffer
			log := slog.New(slog.NewTextHandler(&logs, nil))
			if got := writeFailure(log, "write failed", c.err); got != c.want {
				t.Fatalf("exit %d, want %d", got, c.want)
			}
			if !strings.Contains(logs.String(), c.level) {
				t.Errorf("log %q lacks %s", logs.String(), c.level)
			}
		})
	}
}

func TestListRegionsBrokenPipe(t *testing.T) {
	pr, pw := io.Pipe()
	_ = pr.Close()
	var stderr bytes.Buffer
	if code := RunContext(context.Background(), []string{"--list-regions"}, pw, &stderr); code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr.String())
	}
}
