//go:build !windows

package process

import (
	"errors"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

func startGroup(t *testing.T, script string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command("sh", "-c", script)
	Isolate(cmd)
	if err := cmd.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	return cmd
}

func TestKillGroupTerminates(t *testing.T) {
	cmd := startGroup(t, "sleep 60")
	pid := cmd.Process.Pid

	if err := KillGroup(pid, 100*time.Millisecond); err != nil {
		if errors.Is(err, syscall.EPERM) {
			t.Skip("signals restricted in this environment")
		}
		t.Fatalf("KillGroup: %v", err)
	}
	_ = cmd.Wait()
	if err := syscall.Kill(pid, 0); !errors.Is(err, syscall.ESRCH) {
		t.Fatalf("process still running after kill")
	}
}

func TestKillGroupEscalates(t *testing.T) {
	cmd := startGroup(t, "trap '' TERM; sleep 60")

	start := time.Now()
	if err := KillGroup(cmd.Process.Pid, 50*time.Millisecond); err != nil {
		if errors.Is(err, syscall.EPERM) {
			t.Skip("signals restricted in this environment")
		}
		t.Fatalf("KillGroup: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("returned before the grace period: %v", elapsed)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("process survived SIGKILL")
	}
}

func TestKillGroupGoneIsNotAnError(t *testing.T) {
	cmd := exec.Command("true")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := KillGroup(cmd.Process.Pid, 0); err != nil {
		t.Fatalf("expected nil for exited process, got %v", err)
	}
	if err := KillGroup(0, 0); err != nil {
		t.Fatalf("expected nil for pid 0, got %v", err)
	}
}

func TestIsolateSetsGroup(t *testing.T) {
	cmd := exec.Command("true")
	Isolate(cmd)
	if cmd.SysProcAttr == nil || !cmd.SysProcAttr.Setpgid {
		t.Fatalf("expected Setpgid")
	}
}
