// Package hostbox abstracts the execution environment of an autonomous agent.
//
// It defines a single capability contract (Environment) that lets agent code
// ask what the current deployment target permits before acting: running
// shell commands, touching the filesystem, keeping long-running processes
// alive, how much memory is available, and where persistent state lives.
// One implementation exists per target (native host, container, restricted
// device); callers branch on the capability queries, never on the variant
// name, so new targets slot in without touching agent logic.
//
// Environments never execute anything. BuildShellCommand returns an
// unexecuted ProcessSpec; spawning it, enforcing timeouts, and capturing
// output belong to the caller. A Runner covering those execution-time
// concerns is included.
//
// Key features:
//   - Capability negotiation (shell, filesystem, long-running, memory budget)
//   - Cross-platform shell invocation construction (COMSPEC, sh -c)
//   - Storage-path resolution with a never-fails fallback
//   - Optional strict command validation (size caps, shell syntax)
//   - TOML configuration with per-target presets
//
// Basic usage:
//
//	env, err := hostbox.New(hostbox.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if env.HasShellAccess() {
//	    result, err := hostbox.Run(ctx, env, "echo hello", ".")
//	    ...
//	}
package hostbox
