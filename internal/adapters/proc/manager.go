// Package proc manages the lifecycle of goal-linked helper commands.
// Each command runs through the shell in its own process group so
// that teardown can signal the whole tree, not just the shell.
package proc

import (
	"errors"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/success-cli/success/internal/ports"
)

// gracePeriod is how long a process group gets between the graceful
// signal and the forceful one.
const gracePeriod = 150 * time.Millisecond

// Manager implements ports.ProcessManager using os/exec.
type Manager struct {
	logger *log.Logger
}

var _ ports.ProcessManager = (*Manager)(nil)

// New creates a process manager.
func New(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// Spawn launches each command through the shell, detached into its
// own process group. A failed spawn is logged and recorded as a
// handle-less entry; the caller still gets one entry per command.
func (m *Manager) Spawn(commands []string) []*ports.SpawnedProcess {
	procs := make([]*ports.SpawnedProcess, 0, len(commands))
	for _, command := range commands {
		cmd := shellCommand(command)
		if err := cmd.Start(); err != nil {
			m.logger.Printf("failed to spawn %q: %v", command, err)
			procs = append(procs, &ports.SpawnedProcess{Command: command})
			continue
		}
		procs = append(procs, &ports.SpawnedProcess{
			Command: command,
			Cmd:     cmd,
			PGID:    processGroup(cmd),
		})
	}
	return procs
}

// TerminateAll tears down every spawned process group. Termination
// escalates per process: graceful signal to the group, a short grace
// period, forceful kill of the group, kill of the direct child, then
// a reap. A final name-based sweep catches processes that detached
// from their group.
func (m *Manager) TerminateAll(procs []*ports.SpawnedProcess) {
	for _, p := range procs {
		if p.Cmd == nil || p.Cmd.Process == nil {
			// Spawn failed; nothing was started, so nothing to sweep.
			continue
		}
		m.terminate(p)
		// Helpers sometimes re-exec themselves out of the group; sweep
		// by command name as a last resort.
		sweepByName(p.Command)
	}
}

func (m *Manager) terminate(p *ports.SpawnedProcess) {
	signalGroup(p, gracefulSignal)
	time.Sleep(gracePeriod)
	signalGroup(p, forcefulSignal)

	if err := p.Cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		m.logger.Printf("failed to kill %q: %v", p.Command, err)
	}
	_ = p.Cmd.Wait()
}

// shellCommand builds the exec.Cmd for one helper command.
func shellCommand(command string) *exec.Cmd {
	cmd := shell(command)
	cmd.SysProcAttr = detachedAttrs()
	return cmd
}
