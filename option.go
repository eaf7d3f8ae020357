package hostbox

import (
	"log/slog"
	"os"

	"github.com/zeroclaw-labs/hostbox/internal/envutil"
)

// Option configures the construction of an Environment.
type Option func(*envOptions)

// envOptions holds construction-time settings applied via Option functions.
type envOptions struct {
	agentName    string
	environ      []string
	storageDir   string
	memoryBudget int64
	logger       *slog.Logger
}

// defaultEnvOptions captures the ambient state every environment starts
// from: the default agent name and a snapshot of the parent environment
// table.
func defaultEnvOptions() *envOptions {
	return &envOptions{
		agentName: DefaultAgentName,
		environ:   envutil.Clone(os.Environ()),
	}
}

// WithAgentName sets the agent name used to derive the storage directory
// ("<home>/.<name>"). Empty names are ignored and the default is kept.
func WithAgentName(name string) Option {
	return func(o *envOptions) {
		if name != "" {
			o.agentName = name
		}
	}
}

// WithEnviron replaces the environment table captured at construction.
// Each entry must be in "KEY=value" form. The slice is copied to prevent
// aliasing. By default the parent process's environment is captured;
// replacing it is mainly useful in tests.
func WithEnviron(environ []string) Option {
	cpy := envutil.Clone(environ)
	return func(o *envOptions) {
		o.environ = cpy
	}
}

// WithEnv sets or replaces a single variable in the captured environment
// table, so it reaches every child process the environment describes.
func WithEnv(key, value string) Option {
	return func(o *envOptions) {
		o.environ = envutil.Set(o.environ, key, value)
	}
}

// WithoutEnv removes a variable from the captured environment table, so it
// is not propagated to child processes.
func WithoutEnv(key string) Option {
	return func(o *envOptions) {
		o.environ = envutil.Unset(o.environ, key)
	}
}

// WithStorageDir overrides storage-path resolution entirely. Deployments
// with a mandated state directory (mounted volumes, systemd StateDirectory)
// set this instead of relying on home-directory lookup.
func WithStorageDir(dir string) Option {
	return func(o *envOptions) {
		o.storageDir = dir
	}
}

// WithMemoryBudget sets the memory budget in bytes reported by a restricted
// environment. 0 means unbounded. Native and container environments derive
// their budget from the deployment target and ignore this option.
func WithMemoryBudget(n int64) Option {
	return func(o *envOptions) {
		if n > 0 {
			o.memoryBudget = n
		}
	}
}

// WithLogger sets the structured logger used for operational messages such
// as storage fallbacks and budget detection. If unset, slog.Default() is
// used.
func WithLogger(l *slog.Logger) Option {
	return func(o *envOptions) {
		o.logger = l
	}
}

// loggerOrDefault resolves the configured logger once at construction time.
func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
