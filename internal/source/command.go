package source

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"

	"github.com/andyrewlee/marquee/internal/logging"
	"github.com/andyrewlee/marquee/internal/process"
)

// commandCols is wide enough that the child does not wrap its own output.
const commandCols = 512

// Command runs a shell command under a pty and exposes its most recent
// output lines, colours included.
type Command struct {
	command string
	dir     string
	keep    int

	mu     sync.Mutex
	lines  []string
	ptmx   *os.File
	cmd    *exec.Cmd
	closed bool
}

// NewCommand prepares command to run in dir. keep is the number of trailing
// lines shown; values below one keep a single line.
func NewCommand(command, dir string, keep int) *Command {
	if keep < 1 {
		keep = 1
	}
	return &Command{command: command, dir: dir, keep: keep}
}

func (c *Command) Load() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "\n"), nil
}

// Run starts the command and emits on every completed line. It returns when
// the command exits or ctx is cancelled.
func (c *Command) Run(ctx context.Context, emit func(string)) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", c.command)
	cmd.Dir = c.dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	// The pty makes the shell a session leader, so its group holds every
	// descendant.
	cmd.Cancel = func() error { return process.KillGroup(cmd.Process.Pid, process.DefaultGrace) }

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: commandCols})
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil
	}
	c.ptmx, c.cmd = ptmx, cmd
	c.mu.Unlock()
	logging.Info("source: started %q (pid %d)", c.command, cmd.Process.Pid)

	scanner := bufio.NewScanner(ptmx)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := clean(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}
		emit(c.push(line))
	}
	scanErr := scanner.Err()
	waitErr := cmd.Wait()

	c.mu.Lock()
	c.ptmx, c.cmd = nil, nil
	c.mu.Unlock()
	_ = ptmx.Close()

	// Reading a pty whose child exited fails with EIO on Linux.
	if scanErr != nil && !errors.Is(scanErr, syscall.EIO) && !errors.Is(scanErr, os.ErrClosed) {
		return scanErr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if waitErr != nil {
		logging.Warn("source: %q exited: %v", c.command, waitErr)
		return waitErr
	}
	return nil
}

func (c *Command) push(line string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
	if len(c.lines) > c.keep {
		c.lines = c.lines[len(c.lines)-c.keep:]
	}
	return strings.Join(c.lines, "\n")
}

func (c *Command) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.cmd != nil && c.cmd.Process != nil {
		if err := process.KillGroup(c.cmd.Process.Pid, process.DefaultGrace); err != nil {
			logging.Warn("source: stopping %q: %v", c.command, err)
		}
	}
	if c.ptmx != nil {
		_ = c.ptmx.Close()
	}
	return nil
}
