package hostbox

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/zeroclaw-labs/hostbox/internal/pathutil"
)

// Variant identifies which Environment implementation a Config selects.
type Variant string

const (
	// VariantNative is a host with full OS access.
	VariantNative Variant = "native"

	// VariantContainer is a containerized host; the container boundary is
	// the isolation layer and the cgroup limit is the memory budget.
	VariantContainer Variant = "container"

	// VariantRestricted denies shell, filesystem, and long-running
	// processes.
	VariantRestricted Variant = "restricted"
)

// ConfigFileName is the conventional name of the agent configuration file
// underneath the storage root.
const ConfigFileName = "config.toml"

// configFileMode is the permission used when writing config files.
const configFileMode fs.FileMode = 0o644

// RunnerConfig bounds process execution performed by a Runner.
type RunnerConfig struct {
	// MaxOutputBytes limits captured stdout and stderr, each.
	// 0 means no limit. DefaultConfig sets DefaultMaxOutputBytes.
	MaxOutputBytes int `toml:"max_output_bytes"`
}

// GatewayConfig parameterizes the embedded dashboard server.
type GatewayConfig struct {
	// Addr is the TCP listen address. Empty disables the dashboard.
	Addr string `toml:"addr"`

	// MaxConns caps concurrent client connections. 0 means unlimited.
	MaxConns int `toml:"max_conns"`
}

// Config holds the complete configuration for constructing an Environment
// and its collaborators.
type Config struct {
	// Variant selects the Environment implementation.
	Variant Variant `toml:"variant"`

	// AgentName is the name the storage directory is derived from.
	// If empty, DefaultAgentName is used.
	AgentName string `toml:"agent_name"`

	// StorageDir overrides storage-path resolution entirely when set.
	StorageDir string `toml:"storage_dir"`

	// MemoryBudget is the budget in bytes reported by a restricted
	// environment. 0 means unbounded. Ignored by other variants.
	MemoryBudget int64 `toml:"memory_budget"`

	// Strict enables command-text validation on top of the selected
	// variant.
	Strict StrictConfig `toml:"strict"`

	// Runner bounds process execution.
	Runner RunnerConfig `toml:"runner"`

	// Gateway parameterizes the dashboard server.
	Gateway GatewayConfig `toml:"gateway"`

	// Logger is the structured logger for operational messages such as
	// storage fallbacks and budget detection. If nil, slog.Default() is
	// used. Never serialized.
	Logger *slog.Logger `toml:"-"`
}

// DefaultConfig returns a Config suitable for most hosts: the native
// variant, the default agent name, strict validation off, a 1 MiB output
// cap, and a loopback dashboard address.
func DefaultConfig() *Config {
	return &Config{
		Variant:   VariantNative,
		AgentName: DefaultAgentName,
		Runner: RunnerConfig{
			MaxOutputBytes: DefaultMaxOutputBytes,
		},
		Gateway: GatewayConfig{
			Addr:     "127.0.0.1:8385",
			MaxConns: 64,
		},
	}
}

// ContainerConfig returns a Config for containerized deployments.
func ContainerConfig() *Config {
	cfg := DefaultConfig()
	cfg.Variant = VariantContainer
	return cfg
}

// RestrictedConfig returns a Config for locked-down targets, with strict
// command validation enabled.
func RestrictedConfig() *Config {
	cfg := DefaultConfig()
	cfg.Variant = VariantRestricted
	cfg.Strict.Enabled = true
	return cfg
}

// Validate checks the configuration for errors and returns a descriptive
// error if any field is invalid. The returned error wraps ErrConfigInvalid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Variant {
	case VariantNative, VariantContainer, VariantRestricted:
	case "":
		errs = append(errs, "Variant: must not be empty")
	default:
		errs = append(errs, fmt.Sprintf("Variant: unknown variant %q", c.Variant))
	}

	if strings.ContainsAny(c.AgentName, `/\`) {
		errs = append(errs, fmt.Sprintf("AgentName: %q must not contain path separators", c.AgentName))
	}
	if pathutil.ContainsNullByte(c.AgentName) {
		errs = append(errs, "AgentName: must not contain null bytes")
	}
	if pathutil.ContainsNullByte(c.StorageDir) {
		errs = append(errs, "StorageDir: must not contain null bytes")
	}
	if c.MemoryBudget < 0 {
		errs = append(errs, "MemoryBudget: must be >= 0")
	}
	if c.Strict.MaxCommandLength < 0 {
		errs = append(errs, "Strict.MaxCommandLength: must be >= 0")
	}
	if c.Runner.MaxOutputBytes < 0 {
		errs = append(errs, "Runner.MaxOutputBytes: must be >= 0")
	}
	if c.Gateway.MaxConns < 0 {
		errs = append(errs, "Gateway.MaxConns: must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(errs, "; "))
	}
	return nil
}

// LoadConfig reads a TOML configuration file. Keys absent from the file keep
// their DefaultConfig values. The result is validated before it is returned.
// Returns ErrConfigNotFound when no file exists at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrConfigInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig validates cfg and writes it to path as TOML. Parent directories
// must already exist. When overwrite is false and a file is already present,
// ErrConfigExists is returned.
func SaveConfig(path string, cfg *Config, overwrite bool) error {
	if cfg == nil {
		return fmt.Errorf("%w: config must not be nil", ErrConfigInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, configFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
