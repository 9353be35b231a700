//go:build linux

package core

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux engine: the real kernel futex. FUTEX_*_PRIVATE restricts matching to
// this process, which is all we ever need.
//
// golang.org/x/sys/unix does not export the futex(2) operation constants
// (only the syscall number), so the values from linux/futex.h are given here.
const (
	futexWaitOp      = 0
	futexWakeOp      = 1
	futexPrivateFlag = 128
)

func futexWake(addr *uint32, n uint32) {
	if n > wakeAllCount {
		n = wakeAllCount
	}
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWakeOp|futexPrivateFlag),
		uintptr(n),
		0, 0, 0)
}

func futexWait(addr *uint32, val uint32, timeout time.Duration) {
	var tsp *unix.Timespec
	if timeout >= 0 {
		ts := unix.NsecToTimespec(timeout.Nanoseconds())
		tsp = &ts
	}
	// EAGAIN (stale val), EINTR and ETIMEDOUT are all just "come back and
	// re-check the word" to our callers; WaitFor enforces its own deadline.
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitOp|futexPrivateFlag),
		uintptr(val),
		uintptr(unsafe.Pointer(tsp)),
		0, 0)
}
