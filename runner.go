package hostbox

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

// DefaultMaxOutputBytes is the output cap DefaultConfig applies to captured
// stdout and stderr (1 MiB each).
const DefaultMaxOutputBytes = 1 * 1024 * 1024

// Runner executes ProcessSpecs. It owns every execution-time concern the
// environments stay away from: spawning, output capture with size limits,
// process-group cleanup on cancellation, and exit-code extraction.
//
// The zero value is a usable Runner with no output cap.
type Runner struct {
	// MaxOutputBytes limits captured stdout and stderr, each.
	// 0 means no limit.
	MaxOutputBytes int

	// Logger receives per-execution debug records. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Run executes spec and blocks until the process exits or ctx is cancelled.
// A non-zero exit status is reported in ExecResult.ExitCode, not as an
// error; errors are reserved for processes that could not be started or
// awaited. On cancellation the child's entire process group is killed.
func (r *Runner) Run(ctx context.Context, spec *ProcessSpec) (*ExecResult, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}

	cmd := spec.Command(ctx)

	var stdout, stderr bytes.Buffer
	var stdoutWriter, stderrWriter io.Writer
	stdoutWriter = &stdout
	stderrWriter = &stderr
	if r.MaxOutputBytes > 0 {
		stdoutWriter = &limitedWriter{buf: &stdout, limit: r.MaxOutputBytes}
		stderrWriter = &limitedWriter{buf: &stderr, limit: r.MaxOutputBytes}
	}
	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	setupProcessGroup(cmd)

	r.logger().Debug("hostbox: running process", "spec", spec.String(), "dir", spec.Dir)

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			err = nil // non-zero exit is not a Go error
		} else {
			return nil, err
		}
	}

	truncated := false
	if r.MaxOutputBytes > 0 {
		if stdout.Len() >= r.MaxOutputBytes || stderr.Len() >= r.MaxOutputBytes {
			truncated = true
		}
	}

	return &ExecResult{
		ExitCode:  exitCode,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Duration:  duration,
		Truncated: truncated,
	}, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// limitedWriter wraps a bytes.Buffer and stops writing after limit bytes.
type limitedWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard but report success
	}
	if len(p) <= remaining {
		return w.buf.Write(p)
	}
	// Write only what fits, but report full length to avoid io.ErrShortWrite.
	_, err := w.buf.Write(p[:remaining])
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
