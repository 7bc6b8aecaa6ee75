//go:build !linux

package status

import "syscall"

// sigqueueBlock falls back to a plain signal on non-Linux targets:
// rt_sigqueueinfo is a Linux syscall, and the BSD-family X11 hosts don't
// expose an equivalent through x/sys/unix.
func sigqueueBlock(pid, n int) {
	_ = syscall.Kill(pid, syscall.Signal(34+n))
}
