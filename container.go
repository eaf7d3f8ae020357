package hostbox

import (
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/zeroclaw-labs/hostbox/internal/cgroup"
)

// ContainerEnvironment is the Environment for agents running inside a
// container. The container boundary is the isolation layer: shell,
// filesystem, and long-running processes are all permitted within it, and
// the memory budget is the container's cgroup limit when one is imposed.
//
// Shell invocation construction is shared with the native host; the two
// variants differ only in identity and in how the memory budget is derived.
type ContainerEnvironment struct {
	agentName string
	goos      string
	environ   []string
	logger    *slog.Logger

	storageOverride string
	userHomeDir     func() (string, error)

	storageOnce sync.Once
	storagePath string

	budget int64
}

// NewContainerEnvironment creates the containerized Environment. The memory
// budget is read once from the cgroup controller (v2, then v1); when no
// limit is imposed, or outside Linux, the budget is 0 (unbounded).
func NewContainerEnvironment(opts ...Option) *ContainerEnvironment {
	o := defaultEnvOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := loggerOrDefault(o.logger)
	budget := cgroup.MemoryLimit()
	if budget > 0 {
		logger.Debug("hostbox: container memory budget detected", "bytes", budget)
	}
	return &ContainerEnvironment{
		agentName:       o.agentName,
		goos:            runtime.GOOS,
		environ:         o.environ,
		logger:          logger,
		storageOverride: o.storageDir,
		userHomeDir:     os.UserHomeDir,
		budget:          budget,
	}
}

// Name returns "container".
func (e *ContainerEnvironment) Name() string { return "container" }

// HasShellAccess reports true: the container boundary does the isolating.
func (e *ContainerEnvironment) HasShellAccess() bool { return true }

// HasFilesystemAccess reports true for the container's own filesystem.
func (e *ContainerEnvironment) HasFilesystemAccess() bool { return true }

// SupportsLongRunning reports true: containers outlive individual commands.
func (e *ContainerEnvironment) SupportsLongRunning() bool { return true }

// MemoryBudget returns the cgroup memory limit in bytes read at
// construction, or 0 when the container is unconstrained.
func (e *ContainerEnvironment) MemoryBudget() int64 { return e.budget }

// StoragePath resolves like the native host. Minimal images often have no
// resolvable home directory, in which case the relative ".<agent-name>"
// fallback applies; mounted state volumes are wired via WithStorageDir.
func (e *ContainerEnvironment) StoragePath() string {
	e.storageOnce.Do(func() {
		e.storagePath = resolveStoragePath(e.agentName, e.storageOverride, e.userHomeDir, e.logger)
	})
	return e.storagePath
}

// BuildShellCommand constructs a ProcessSpec exactly as the native host
// does. It never fails in containers.
func (e *ContainerEnvironment) BuildShellCommand(command, workdir string) (*ProcessSpec, error) {
	return buildShellSpec(e.goos, e.environ, command, workdir), nil
}
