//go:build windows

package procpriority

import "golang.org/x/sys/windows"

// Set raises or lowers the current process's Windows priority class to
// approximate level.
func Set(level Level) error {
	h := windows.CurrentProcess()
	n := uint32(windows.NORMAL_PRIORITY_CLASS)
	switch level {
	case Realtime:
		n = windows.REALTIME_PRIORITY_CLASS
	case High:
		n = windows.HIGH_PRIORITY_CLASS
	case Normal:
		n = windows.NORMAL_PRIORITY_CLASS
	case Idle:
		n = windows.IDLE_PRIORITY_CLASS
	}
	return windows.SetPriorityClass(h, n)
}
