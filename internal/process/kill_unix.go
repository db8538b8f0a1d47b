//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes the headless browser's renderer and GPU children down with it.
func KillProcessGroup(pid int) {
	// Best effort: the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
