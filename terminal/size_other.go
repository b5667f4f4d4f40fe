//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import (
	"os"

	"golang.org/x/term"
)

// QuerySize returns the window size of the terminal behind f.
// Falls back to $COLUMNS/$LINES, then 80x24, when f is not a terminal.
func QuerySize(f *os.File) (int, int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err == nil && w > 0 && h > 0 {
		return w, h
	}
	return envSize()
}

func resetTerminalMode() {}
