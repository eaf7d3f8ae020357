package hostbox

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the hostbox package.
var (
	// ErrShellUnavailable indicates the active environment does not permit
	// shell execution.
	ErrShellUnavailable = errors.New("hostbox: shell execution not permitted in this environment")

	// ErrInvalidCommand indicates the command text was rejected before a
	// process description was constructed.
	ErrInvalidCommand = errors.New("hostbox: invalid command")

	// ErrConfigInvalid indicates the provided configuration failed validation.
	ErrConfigInvalid = errors.New("hostbox: invalid configuration")

	// ErrConfigNotFound indicates no configuration file exists at the given path.
	ErrConfigNotFound = errors.New("hostbox: config file not found")

	// ErrConfigExists indicates a configuration file already exists at the given path.
	ErrConfigExists = errors.New("hostbox: config file already exists")

	// ErrNilSpec indicates a nil *ProcessSpec was passed to a Runner.
	ErrNilSpec = errors.New("hostbox: spec must not be nil")
)

// InvalidCommandError is returned when command text is rejected by a
// validating environment before construction. It wraps ErrInvalidCommand so
// that errors.Is(err, ErrInvalidCommand) still works.
type InvalidCommandError struct {
	// Command is the command string that was rejected.
	Command string
	// Reason explains why the command was rejected.
	Reason string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidCommand.Error(), e.Reason)
}

func (e *InvalidCommandError) Unwrap() error {
	return ErrInvalidCommand
}
