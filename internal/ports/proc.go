package ports

import "os/exec"

// SpawnedProcess tracks one helper command launched for a running
// timer. Cmd is nil when the spawn failed; teardown skips those.
type SpawnedProcess struct {
	// Command is the original shell command string.
	Command string

	// Cmd is the started process handle, nil on spawn failure.
	Cmd *exec.Cmd

	// PGID is the process group id the command was isolated into, or
	// 0 when group isolation was unavailable.
	PGID int
}

// ProcessManager spawns goal-linked helper commands and guarantees
// their termination. This is a driven port (implemented by adapters).
type ProcessManager interface {
	// Spawn launches each shell command detached in its own process
	// group. Spawn failures are non-fatal: the returned slice always
	// has one entry per command, handle-less entries marking failures.
	Spawn(commands []string) []*SpawnedProcess

	// TerminateAll tears down every spawned process group: graceful
	// signal, short grace period, forceful kill, then a best-effort
	// name sweep for processes that escaped the group.
	TerminateAll(procs []*SpawnedProcess)
}

// Notifier surfaces session completion to the desktop. This is a
// driven port (implemented by adapters); a nil Notifier is valid and
// means notifications are off.
type Notifier interface {
	Notify(title, message string) error
}
