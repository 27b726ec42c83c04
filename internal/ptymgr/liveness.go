package ptymgr

import (
	"github.com/shirou/gopsutil/v4/process"
)

// processAlive corroborates PTY-level liveness with a process-table lookup,
// generalizing the teacher's utils/process/info.go gopsutil usage: a PTY can
// report EOF (and so flip ManagedSession.alive false) before the OS has
// actually reaped the child, so CleanupDead only declares a session dead
// once both signals agree.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	if err != nil {
		return false
	}
	return running
}
