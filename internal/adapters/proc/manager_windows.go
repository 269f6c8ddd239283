//go:build windows

package proc

import (
	"os/exec"
	"syscall"

	"github.com/success-cli/success/internal/ports"
)

// Windows has no POSIX process groups; termination degrades to
// killing the direct child and there is no name sweep.

const (
	gracefulSignal = syscall.SIGTERM
	forcefulSignal = syscall.SIGKILL
)

func shell(command string) *exec.Cmd {
	return exec.Command("cmd", "/C", command)
}

func detachedAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

func processGroup(cmd *exec.Cmd) int { return 0 }

func signalGroup(p *ports.SpawnedProcess, sig syscall.Signal) {
	_ = p.Cmd.Process.Signal(sig)
}

func sweepByName(command string) {}
