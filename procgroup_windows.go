//go:build windows

package hostbox

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

// processGroupWaitDelay is the time to wait for the child to exit after
// Kill before giving up on pipe reads.
const processGroupWaitDelay = 3 * time.Second

// setupProcessGroup places the child in a new process group so console
// control events do not propagate to it, and sets up a Cancel function that
// kills the child when the associated context is cancelled. Grandchildren
// are not tracked on Windows; WaitDelay bounds how long their pipes can hold
// up Wait.
func setupProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP

	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return os.ErrProcessDone
		}
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = processGroupWaitDelay
}
