package hostbox

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/zeroclaw-labs/hostbox/internal/envutil"
)

// DefaultAgentName is the agent name used when none is configured. The
// storage directory is derived from it ("~/.zeroclaw").
const DefaultAgentName = "zeroclaw"

const (
	// posixShell is the interpreter used on non-Windows hosts, resolved
	// through PATH at execution time.
	posixShell = "sh"

	// windowsShellFallback is the command processor used when COMSPEC is
	// unset.
	windowsShellFallback = "cmd.exe"

	// comspecKey names the Windows environment variable that points at
	// the command processor.
	comspecKey = "COMSPEC"
)

// NativeEnvironment is the Environment for a host with full OS access:
// desktops, servers, and edge devices where the agent owns its process and
// may spawn whatever it needs. Shell, filesystem, and long-running processes
// are all permitted and the memory budget is unbounded.
//
// The parent environment table is captured once at construction and
// propagated in full to every child process, so PATH, temp-directory
// variables, and credentials present at startup reach downstream tools.
type NativeEnvironment struct {
	agentName string
	goos      string
	environ   []string
	logger    *slog.Logger

	storageOverride string
	userHomeDir     func() (string, error) // swapped in tests

	storageOnce sync.Once
	storagePath string
}

// NewNativeEnvironment creates the native-host Environment.
func NewNativeEnvironment(opts ...Option) *NativeEnvironment {
	o := defaultEnvOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &NativeEnvironment{
		agentName:       o.agentName,
		goos:            runtime.GOOS,
		environ:         o.environ,
		logger:          loggerOrDefault(o.logger),
		storageOverride: o.storageDir,
		userHomeDir:     os.UserHomeDir,
	}
}

// Name returns "native".
func (e *NativeEnvironment) Name() string { return "native" }

// HasShellAccess reports true: native hosts run shell commands directly.
func (e *NativeEnvironment) HasShellAccess() bool { return true }

// HasFilesystemAccess reports true: native hosts own their filesystem.
func (e *NativeEnvironment) HasFilesystemAccess() bool { return true }

// SupportsLongRunning reports true: native hosts keep background processes.
func (e *NativeEnvironment) SupportsLongRunning() bool { return true }

// MemoryBudget returns 0: native hosts are unconstrained.
func (e *NativeEnvironment) MemoryBudget() int64 { return 0 }

// StoragePath returns "<home>/.<agent-name>", falling back to the relative
// ".<agent-name>" when the home directory cannot be determined. The path is
// resolved once and reused for the lifetime of the environment; it is never
// created here.
func (e *NativeEnvironment) StoragePath() string {
	e.storageOnce.Do(func() {
		e.storagePath = resolveStoragePath(e.agentName, e.storageOverride, e.userHomeDir, e.logger)
	})
	return e.storagePath
}

// BuildShellCommand constructs a ProcessSpec that runs command through the
// host shell in workdir. It never fails on native hosts.
func (e *NativeEnvironment) BuildShellCommand(command, workdir string) (*ProcessSpec, error) {
	return buildShellSpec(e.goos, e.environ, command, workdir), nil
}

// buildShellSpec is the platform-conditional construction step shared by all
// shell-capable environments. It is a pure function of its inputs: no global
// environment reads, no filesystem access, no validation of workdir.
//
// On Windows-family hosts the interpreter is the COMSPEC command processor
// (default cmd.exe) invoked with "/d /s /c". /d disables AutoRun commands
// from the registry, /s preserves the command's quoting, /c runs the command
// and exits. Everywhere else the interpreter is "sh -c".
func buildShellSpec(goos string, environ []string, command, workdir string) *ProcessSpec {
	var interpreter string
	var args []string
	if goos == "windows" {
		interpreter, _ = envutil.Get(environ, comspecKey)
		if interpreter == "" {
			interpreter = windowsShellFallback
		}
		args = []string{"/d", "/s", "/c", command}
	} else {
		interpreter = posixShell
		args = []string{"-c", command}
	}
	return &ProcessSpec{
		Interpreter: interpreter,
		Args:        args,
		Dir:         workdir,
		Env:         envutil.Clone(environ),
	}
}

// resolveStoragePath derives the persistent-state root for an agent. It is
// total: an explicit override wins, then "<home>/.<name>", then the relative
// ".<name>" when no home directory can be determined.
func resolveStoragePath(agentName, override string, userHomeDir func() (string, error), logger *slog.Logger) string {
	if override != "" {
		return override
	}
	dir := "." + agentName
	home, err := userHomeDir()
	if err != nil || home == "" {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("hostbox: home directory unavailable, using relative storage path",
			"path", dir, "err", err)
		return dir
	}
	return filepath.Join(home, dir)
}
