package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

type Executor interface {
	Run(ctx context.Context, argv []string) (string, error)
}

type SubprocessExecutor struct{}

// Run executes argv and returns its combined stdout+stderr. A command that
// starts but exits non-zero is a completed run: its output is returned with
// a nil error. Only a failure to launch (or context expiry) is an error.
func (SubprocessExecutor) Run(ctx context.Context, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.String(), nil
		}
		return "", err
	}
	return out.String(), nil
}

// WithTimeout returns a context for one external command. Zero means no
// timeout: the command may block indefinitely.
func WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}
