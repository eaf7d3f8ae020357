package hostbox

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/zeroclaw-labs/hostbox/internal/pathutil"
)

// DefaultMaxCommandLength caps the command text accepted by a strict
// environment (128 KiB).
const DefaultMaxCommandLength = 128 * 1024

// StrictConfig parameterizes a StrictEnvironment.
type StrictConfig struct {
	// Enabled wraps the selected variant in a StrictEnvironment when the
	// environment is built from a Config.
	Enabled bool `toml:"enabled"`

	// MaxCommandLength caps command text length in bytes.
	// 0 means DefaultMaxCommandLength.
	MaxCommandLength int `toml:"max_command_length"`

	// ValidateSyntax additionally parses the command as POSIX shell and
	// rejects text the interpreter could not parse. Leave off when the
	// wrapped environment targets a Windows command processor.
	ValidateSyntax bool `toml:"validate_syntax"`
}

// StrictEnvironment wraps another Environment and validates command text
// before delegating construction. Identity, capability flags, and storage
// resolution pass through to the wrapped environment.
//
// Validation rejects empty commands, text over the configured size cap,
// null bytes, and (optionally) text that does not parse as POSIX shell.
// Rejections are returned as *InvalidCommandError, which wraps
// ErrInvalidCommand.
type StrictEnvironment struct {
	inner       Environment
	maxLen      int
	checkSyntax bool
}

// NewStrictEnvironment wraps inner with command-text validation.
func NewStrictEnvironment(inner Environment, cfg StrictConfig) *StrictEnvironment {
	maxLen := cfg.MaxCommandLength
	if maxLen <= 0 {
		maxLen = DefaultMaxCommandLength
	}
	return &StrictEnvironment{
		inner:       inner,
		maxLen:      maxLen,
		checkSyntax: cfg.ValidateSyntax,
	}
}

// Name returns the wrapped environment's name with a "+strict" suffix.
func (e *StrictEnvironment) Name() string { return e.inner.Name() + "+strict" }

// HasShellAccess delegates to the wrapped environment.
func (e *StrictEnvironment) HasShellAccess() bool { return e.inner.HasShellAccess() }

// HasFilesystemAccess delegates to the wrapped environment.
func (e *StrictEnvironment) HasFilesystemAccess() bool { return e.inner.HasFilesystemAccess() }

// SupportsLongRunning delegates to the wrapped environment.
func (e *StrictEnvironment) SupportsLongRunning() bool { return e.inner.SupportsLongRunning() }

// MemoryBudget delegates to the wrapped environment.
func (e *StrictEnvironment) MemoryBudget() int64 { return e.inner.MemoryBudget() }

// StoragePath delegates to the wrapped environment.
func (e *StrictEnvironment) StoragePath() string { return e.inner.StoragePath() }

// BuildShellCommand validates command and, on success, delegates
// construction to the wrapped environment.
func (e *StrictEnvironment) BuildShellCommand(command, workdir string) (*ProcessSpec, error) {
	if err := e.validate(command); err != nil {
		return nil, err
	}
	return e.inner.BuildShellCommand(command, workdir)
}

func (e *StrictEnvironment) validate(command string) error {
	if command == "" {
		return &InvalidCommandError{Command: command, Reason: "command must not be empty"}
	}
	if len(command) > e.maxLen {
		return &InvalidCommandError{
			Command: command,
			Reason:  fmt.Sprintf("command length %d exceeds limit %d", len(command), e.maxLen),
		}
	}
	if pathutil.ContainsNullByte(command) {
		return &InvalidCommandError{Command: command, Reason: "command must not contain null bytes"}
	}
	if e.checkSyntax {
		// A fresh parser per call: syntax.Parser is not safe for
		// concurrent use.
		if _, err := syntax.NewParser().Parse(strings.NewReader(command), ""); err != nil {
			return &InvalidCommandError{
				Command: command,
				Reason:  fmt.Sprintf("shell syntax: %v", err),
			}
		}
	}
	return nil
}
