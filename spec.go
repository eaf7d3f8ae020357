package hostbox

import (
	"context"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ProcessSpec is an unexecuted description of a command: the interpreter to
// invoke, its argument vector, the working directory, and the complete child
// environment table. Environments build a fresh ProcessSpec on every call
// and retain no reference to it; the caller owns the value exclusively.
//
// A ProcessSpec holds no OS resources. Spawning it, enforcing timeouts,
// cancelling it, and capturing its output are the caller's concerns; see
// Runner.
type ProcessSpec struct {
	// Interpreter is the program to invoke: "sh" on POSIX-family hosts or
	// the COMSPEC command processor on Windows-family hosts.
	Interpreter string

	// Args are the arguments passed to the interpreter, excluding the
	// program name itself.
	Args []string

	// Dir is the child's working directory, used verbatim. The caller is
	// responsible for supplying an existing directory.
	Dir string

	// Env is the complete child environment table in "KEY=value" form.
	Env []string
}

// Command materializes the spec into an *exec.Cmd bound to ctx. Each call
// returns a new independent command; the spec itself is left untouched.
func (s *ProcessSpec) Command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, s.Interpreter, s.Args...)
	cmd.Dir = s.Dir
	cmd.Env = append([]string(nil), s.Env...)
	return cmd
}

// String renders the interpreter and arguments in shell-quoted form for
// logging and diagnostics. The environment table is never included; it may
// contain credentials.
func (s *ProcessSpec) String() string {
	parts := make([]string, 0, len(s.Args)+1)
	parts = append(parts, s.Interpreter)
	for _, a := range s.Args {
		q, err := syntax.Quote(a, syntax.LangPOSIX)
		if err != nil {
			// Quote fails only on input no shell word can represent
			// (null bytes); keep the raw text in that case.
			q = a
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}
