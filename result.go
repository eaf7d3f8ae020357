package hostbox

import "time"

// ExecResult holds the outcome of executing a ProcessSpec.
type ExecResult struct {
	// ExitCode is the process exit code. 0 typically indicates success;
	// -1 means the process was terminated by a signal.
	ExitCode int

	// Stdout contains the captured standard output of the process.
	Stdout string

	// Stderr contains the captured standard error of the process.
	Stderr string

	// Duration is the wall-clock time the process took to execute.
	Duration time.Duration

	// Truncated indicates whether the output was truncated due to size limits.
	Truncated bool
}

// Success reports whether the process exited with code 0.
func (r *ExecResult) Success() bool { return r.ExitCode == 0 }
