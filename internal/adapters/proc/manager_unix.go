//go:build !windows

package proc

import (
	"os/exec"
	"syscall"

	"github.com/success-cli/success/internal/ports"
)

const (
	gracefulSignal = syscall.SIGTERM
	forcefulSignal = syscall.SIGKILL
)

// shell wraps the command so the shell replaces itself with it and
// the recorded pid is the command's own.
func shell(command string) *exec.Cmd {
	return exec.Command("sh", "-c", "exec "+command)
}

// detachedAttrs puts the child into a new session, which also makes
// it the leader of a fresh process group.
func detachedAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

func processGroup(cmd *exec.Cmd) int {
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		return 0
	}
	return pgid
}

// signalGroup signals the whole process group when one is known,
// falling back to the direct child.
func signalGroup(p *ports.SpawnedProcess, sig syscall.Signal) {
	if p.PGID > 0 {
		_ = syscall.Kill(-p.PGID, sig)
		return
	}
	_ = p.Cmd.Process.Signal(sig)
}

// sweepByName kills any leftover process whose command line matches
// the original command string.
func sweepByName(command string) {
	if command == "" {
		return
	}
	_ = exec.Command("pkill", "-f", command).Run()
}
