package hostbox

import (
	"log/slog"
	"os"
	"sync"
)

// RestrictedEnvironment is the Environment for locked-down targets where the
// agent may not execute anything: no shell, no direct filesystem access, no
// long-running processes. It gives callers that branch on capability flags a
// real deny-everything target, and it is the one shipped variant whose
// BuildShellCommand returns an error.
type RestrictedEnvironment struct {
	agentName string
	logger    *slog.Logger

	storageOverride string
	userHomeDir     func() (string, error)

	storageOnce sync.Once
	storagePath string

	budget int64
}

// NewRestrictedEnvironment creates the restricted Environment. The memory
// budget defaults to 0 (unbounded) and is typically set with
// WithMemoryBudget to mirror the target device's constraint.
func NewRestrictedEnvironment(opts ...Option) *RestrictedEnvironment {
	o := defaultEnvOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &RestrictedEnvironment{
		agentName:       o.agentName,
		logger:          loggerOrDefault(o.logger),
		storageOverride: o.storageDir,
		userHomeDir:     os.UserHomeDir,
		budget:          o.memoryBudget,
	}
}

// Name returns "restricted".
func (e *RestrictedEnvironment) Name() string { return "restricted" }

// HasShellAccess reports false: restricted targets never run shell commands.
func (e *RestrictedEnvironment) HasShellAccess() bool { return false }

// HasFilesystemAccess reports false.
func (e *RestrictedEnvironment) HasFilesystemAccess() bool { return false }

// SupportsLongRunning reports false.
func (e *RestrictedEnvironment) SupportsLongRunning() bool { return false }

// MemoryBudget returns the configured budget in bytes, 0 when unset.
func (e *RestrictedEnvironment) MemoryBudget() int64 { return e.budget }

// StoragePath resolves like every other variant. Even when filesystem
// access is denied the path stays meaningful: a mediating layer persists
// state there on the agent's behalf.
func (e *RestrictedEnvironment) StoragePath() string {
	e.storageOnce.Do(func() {
		e.storagePath = resolveStoragePath(e.agentName, e.storageOverride, e.userHomeDir, e.logger)
	})
	return e.storagePath
}

// BuildShellCommand always fails with ErrShellUnavailable.
func (e *RestrictedEnvironment) BuildShellCommand(command, workdir string) (*ProcessSpec, error) {
	return nil, ErrShellUnavailable
}
