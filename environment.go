package hostbox

import (
	"context"
	"fmt"
)

// Environment is the capability contract between agent logic and the host it
// runs on. One implementation exists per deployment target; agent code must
// branch on the capability queries, never on Name, so that new targets can
// be added without touching callers.
//
// Implementations must be safe for concurrent use by multiple goroutines:
// capability queries are pure per-instance values, StoragePath is resolved
// at most once, and BuildShellCommand allocates fresh unshared data on every
// call.
type Environment interface {
	// Name returns a stable short token identifying the variant, such as
	// "native" or "container". For logging and diagnostics only.
	Name() string

	// HasShellAccess reports whether the environment permits running
	// shell commands.
	HasShellAccess() bool

	// HasFilesystemAccess reports whether the environment permits direct
	// filesystem access.
	HasFilesystemAccess() bool

	// SupportsLongRunning reports whether the environment permits
	// long-running background processes.
	SupportsLongRunning() bool

	// MemoryBudget returns the memory available to the agent in bytes.
	// 0 means unbounded.
	MemoryBudget() int64

	// StoragePath returns the root directory for persisted agent state.
	// It never fails: when the host's user directory cannot be determined
	// it falls back to a relative well-known directory. The directory is
	// not created; that is the caller's responsibility.
	StoragePath() string

	// BuildShellCommand constructs an unexecuted ProcessSpec that runs
	// command through the environment's shell in workdir. No process is
	// spawned and workdir is not validated at this layer.
	//
	// Construction is fallible so that validating environments can reject
	// command text; the native and container environments never return an
	// error.
	BuildShellCommand(command, workdir string) (*ProcessSpec, error)
}

// New creates the Environment described by cfg. The configuration is
// validated before the environment is created.
//
// The implementation is selected by cfg.Variant; when cfg.Strict.Enabled is
// set, the environment is wrapped so command text is validated before
// construction.
func New(cfg *Config) (Environment, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config must not be nil", ErrConfigInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []Option{WithAgentName(cfg.AgentName)}
	if cfg.StorageDir != "" {
		opts = append(opts, WithStorageDir(cfg.StorageDir))
	}
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger))
	}

	var env Environment
	switch cfg.Variant {
	case VariantNative:
		env = NewNativeEnvironment(opts...)
	case VariantContainer:
		env = NewContainerEnvironment(opts...)
	case VariantRestricted:
		opts = append(opts, WithMemoryBudget(cfg.MemoryBudget))
		env = NewRestrictedEnvironment(opts...)
	default:
		// Validate has already vetted the variant; this is unreachable
		// unless new variants are added without extending the switch.
		return nil, fmt.Errorf("%w: Variant: unknown variant %q", ErrConfigInvalid, cfg.Variant)
	}

	if cfg.Strict.Enabled {
		env = NewStrictEnvironment(env, cfg.Strict)
	}
	return env, nil
}

// Run is a convenience function that gates on shell capability, builds the
// invocation through env, and executes it with a Runner configured from
// DefaultConfig.
func Run(ctx context.Context, env Environment, command, workdir string) (*ExecResult, error) {
	if !env.HasShellAccess() {
		return nil, ErrShellUnavailable
	}
	spec, err := env.BuildShellCommand(command, workdir)
	if err != nil {
		return nil, err
	}
	r := &Runner{MaxOutputBytes: DefaultMaxOutputBytes}
	return r.Run(ctx, spec)
}
