package terminal

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// IsTerminal reports whether f is connected to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// envSize reads $COLUMNS and $LINES, defaulting each to the classic 80x24
func envSize() (int, int) {
	w, h := fallbackWidth, fallbackHeight
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		w = v
	}
	if v, err := strconv.Atoi(os.Getenv("LINES")); err == nil && v > 0 {
		h = v
	}
	return w, h
}
