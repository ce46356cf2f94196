package main

// getTerminalWidth returns the width of the terminal in columns
func getTerminalWidth() int {
	// Windows doesn't support the same syscall interface
	// Return a reasonable default
	return 80
}
