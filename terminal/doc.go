// Package terminal draws cell frames on a terminal and restores it afterwards.
//
// Features:
//   - Raw ANSI backend with cell-level diffing against the previous frame
//   - tcell screen backend for terminals where raw sequences misbehave
//   - 256-color and true color output, or no color at all
//   - Window size detection via TIOCGWINSZ with environment fallback
//   - Best-effort emergency reset for crash paths
//
// The ANSI backend emits the sequences directly and never enters raw mode:
// the cursor is hidden on Init and shown again on Fini, leaving the last
// frame on screen.
package terminal
