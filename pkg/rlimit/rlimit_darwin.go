package rlimit

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// Darwin caps the per-process file limit below the hard rlimit, so
// consult the kernel for the real ceiling.
func maxRlimit() (syscall.Rlimit, error) {
	var rlimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rlimit); err != nil {
		return rlimit, fmt.Errorf("getrlimit: %w", err)
	}
	kernMax, err := unix.SysctlUint32("kern.maxfilesperproc")
	if err != nil {
		return rlimit, fmt.Errorf("sysctl: %w", err)
	}
	rlimit.Cur = rlimit.Max
	if uint64(kernMax) < rlimit.Cur {
		rlimit.Cur = uint64(kernMax)
	}
	return rlimit, nil
}
