//go:build linux

package status

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// siQueue is SI_QUEUE: this signal was queued by sigqueue(3)/rt_sigqueueinfo(2).
const siQueue = -1

// rtSiginfo mirrors the kernel's siginfo_t layout for the rt_sigqueueinfo
// union member on linux/amd64: three 32-bit fields, one word of
// alignment padding, then si_pid/si_uid/si_value, padded out to the
// kernel's fixed 128-byte siginfo_t.
type rtSiginfo struct {
	signo, errno, code int32
	_                  int32
	pid                int32
	uid                uint32
	value              int64
	_                  [128 - 32]byte
}

// sigqueueBlock sends SIGRTMIN+n to pid via the rt_sigqueueinfo syscall,
// the dwmblocks convention for telling one status block to refresh after
// a click.
func sigqueueBlock(pid, n int) {
	sig := unix.SIGRTMIN() + n
	info := rtSiginfo{
		signo: int32(sig),
		code:  siQueue,
		pid:   int32(os.Getpid()),
		uid:   uint32(os.Getuid()),
	}
	unix.Syscall(unix.SYS_RT_SIGQUEUEINFO, uintptr(pid), uintptr(sig), uintptr(unsafe.Pointer(&info)))
}
