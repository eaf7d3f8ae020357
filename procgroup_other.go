//go:build !unix && !windows

package hostbox

import "os/exec"

// setupProcessGroup is a no-op on platforms without process groups; the
// context's default kill behavior applies.
func setupProcessGroup(cmd *exec.Cmd) {}
