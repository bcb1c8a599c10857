//go:build unix

package procpriority

import (
	"os"

	"golang.org/x/sys/unix"
)

// Set raises or lowers the current process's nice value to approximate
// level. Requires elevated privileges to go below the default nice value
// on most systems; errors are the caller's to decide whether to ignore.
func Set(level Level) error {
	pid := os.Getpid()
	n := 0
	switch level {
	case Realtime:
		n = -19
	case High:
		n = -10
	case Normal:
		n = 0
	case Idle:
		n = 15
	}
	return unix.Setpriority(unix.PRIO_PROCESS, pid, n)
}
