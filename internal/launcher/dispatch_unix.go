//go:build !windows

package launcher

import "syscall"

func platformShell() (string, string) {
	return "/bin/sh", "-c"
}

// detachAttr starts the child in its own session so it is not torn
// down with the launcher's process group.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
