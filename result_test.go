package hostbox

import (
	"testing"
	"time"
)

func TestExecResultZeroValue(t *testing.T) {
	var r ExecResult
	if r.ExitCode != 0 {
		t.Errorf("ExitCode zero value: got %d, want 0", r.ExitCode)
	}
	if r.Stdout != "" {
		t.Errorf("Stdout zero value: got %q, want empty", r.Stdout)
	}
	if r.Stderr != "" {
		t.Errorf("Stderr zero value: got %q, want empty", r.Stderr)
	}
	if r.Duration != 0 {
		t.Errorf("Duration zero value: got %v, want 0", r.Duration)
	}
	if r.Truncated {
		t.Error("Truncated zero value: got true, want false")
	}
	if !r.Success() {
		t.Error("zero value Success(): got false, want true")
	}
}

func TestExecResultPopulated(t *testing.T) {
	r := ExecResult{
		ExitCode:  2,
		Stdout:    "hello",
		Stderr:    "warning",
		Duration:  5 * time.Second,
		Truncated: true,
	}

	if r.ExitCode != 2 {
		t.Errorf("ExitCode: got %d, want 2", r.ExitCode)
	}
	if r.Stdout != "hello" {
		t.Errorf("Stdout: got %q, want %q", r.Stdout, "hello")
	}
	if r.Stderr != "warning" {
		t.Errorf("Stderr: got %q, want %q", r.Stderr, "warning")
	}
	if r.Duration != 5*time.Second {
		t.Errorf("Duration: got %v, want %v", r.Duration, 5*time.Second)
	}
	if !r.Truncated {
		t.Error("Truncated: got false, want true")
	}
	if r.Success() {
		t.Error("Success() with exit code 2: got true, want false")
	}
}

func TestExecResultSuccessSignalTermination(t *testing.T) {
	r := ExecResult{ExitCode: -1}
	if r.Success() {
		t.Error("Success() with exit code -1: got true, want false")
	}
}
