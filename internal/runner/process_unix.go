//go:build unix

package runner

import (
	"errors"
	"os/exec"
	"syscall"
)

// setProcGroup puts the child in its own process group so Stop can take out
// the whole tree, not just the immediate child.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcGroup kills the entire process group of the command. A process
// that already exited is not an error.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
