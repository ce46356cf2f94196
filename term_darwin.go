package main

import (
	"syscall"
	"unsafe"
)

// getTerminalWidth returns the width of the terminal in columns
func getTerminalWidth() int {
	type winsize struct {
		Row    uint16
		Col    uint16
		Xpixel uint16
		Ypixel uint16
	}

	ws := &winsize{}
	_, _, _ = syscall.Syscall(syscall.SYS_IOCTL,
		uintptr(syscall.Stdin),
		uintptr(syscall.TIOCGWINSZ),
		uintptr(unsafe.Pointer(ws)))

	if ws.Col == 0 {
		// If we can't get terminal size, return a reasonable default
		return 80 // Standard terminal width
	}
	return int(ws.Col)
}
