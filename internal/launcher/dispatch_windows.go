//go:build windows

package launcher

import "syscall"

const (
	createNewProcessGroup = 0x00000200
	detachedProcess       = 0x00000008
)

func platformShell() (string, string) {
	return "cmd", "/C"
}

// detachAttr starts the child detached from the launcher's console so
// it keeps running after the launcher exits.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNewProcessGroup | detachedProcess}
}
