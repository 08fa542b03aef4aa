//go:build windows

package process

import (
	"os"
	"os/exec"
	"time"
)

const DefaultGrace = 200 * time.Millisecond

// KillGroup kills the process itself; Windows has no process groups to
// signal, so children may survive.
func KillGroup(pid int, grace time.Duration) error {
	if pid <= 0 {
		return nil
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Kill()
}

func Isolate(cmd *exec.Cmd) { _ = cmd }
