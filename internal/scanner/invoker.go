package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/nicholasadamou/avscan-api/internal/domain"
)

// ExecInvoker runs the scanning engine as a child process and collects its
// exit status and output streams.
type ExecInvoker struct {
	log        *slog.Logger
	enginePath string
}

func NewExecInvoker(log *slog.Logger, enginePath string) *ExecInvoker {
	return &ExecInvoker{
		log:        log,
		enginePath: enginePath,
	}
}

func (i *ExecInvoker) EnginePath() string {
	return i.enginePath
}

// Invoke executes one scan of path and blocks until the engine terminates or
// ctx expires. A process that could not be started, or was killed by ctx,
// reports exit code -1 with Err filled.
func (i *ExecInvoker) Invoke(ctx context.Context, path string) *domain.Invocation {
	args, err := Args(path)
	if err != nil {
		return &domain.Invocation{ExitCode: -1, Err: err}
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, i.enginePath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	i.log.DebugContext(ctx, "invoking scanner",
		slog.String("engine", i.enginePath),
		slog.String("path", path),
	)

	err = cmd.Run()

	inv := &domain.Invocation{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		inv.ExitCode = 0

	case errors.As(err, &exitErr) && ctx.Err() == nil:
		inv.ExitCode = exitErr.ExitCode()

	case ctx.Err() != nil:
		inv.ExitCode = -1
		inv.Err = fmt.Errorf("scanner terminated: %w", ctx.Err())

	default:
		inv.ExitCode = -1
		inv.Err = err
	}

	return inv
}

// Version asks the engine for its version banner, e.g.
// "ClamAV 1.3.0/27236/...". Used only for the info endpoint; failures are
// the caller's problem to swallow.
func (i *ExecInvoker) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, i.enginePath, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get engine version: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}
