//go:build !windows

// Package process stops command sources together with everything they
// spawned.
package process

import (
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// DefaultGrace is how long a group gets between SIGTERM and SIGKILL.
const DefaultGrace = 200 * time.Millisecond

// KillGroup sends SIGTERM to the process group led by pid, then SIGKILL if
// the group is still alive after grace. A group that is already gone is not
// an error.
func KillGroup(pid int, grace time.Duration) error {
	if pid <= 0 {
		return nil
	}
	if grace <= 0 {
		grace = DefaultGrace
	}
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		return ignoreGone(err)
	}
	if err := syscall.Kill(-pgid, syscall.SIGTERM); err != nil {
		return ignoreGone(err)
	}

	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if errors.Is(syscall.Kill(-pgid, 0), syscall.ESRCH) {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	// EPERM shows up when the group empties between the probe and the kill.
	err = syscall.Kill(-pgid, syscall.SIGKILL)
	if err != nil && !errors.Is(err, syscall.EPERM) {
		return ignoreGone(err)
	}
	return nil
}

// Isolate puts cmd in its own process group. Commands started through a pty
// already lead their own session and must not call it.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

func ignoreGone(err error) error {
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
