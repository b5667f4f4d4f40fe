package terminal

import (
	"io"
	"os"
	"sync"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << 0
	AttrDim  Attr = 1 << 1
)

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Attrs Attr
}

// Terminal is a surface frames are flushed to
type Terminal interface {
	// Init hides the cursor and clears the screen
	Init() error

	// Fini parks the cursor below the last frame and shows it. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions; valid before Init
	Size() (width, height int)

	// Flush draws a frame at the top-left corner
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int) error
}

// ansiTerminal implements Terminal by writing escape sequences to an io.Writer
type ansiTerminal struct {
	out    io.Writer
	size   func() (int, int)
	output *outputBuffer

	mu          sync.Mutex
	initialized bool
	finalized   bool
	frameHeight int
}

// New creates an ANSI terminal on stdout
func New(colorMode ColorMode) Terminal {
	return NewWriter(os.Stdout, colorMode, func() (int, int) {
		return QuerySize(os.Stdout)
	})
}

// NewWriter creates an ANSI terminal writing to w; size reports the window dimensions
func NewWriter(w io.Writer, colorMode ColorMode, size func() (int, int)) Terminal {
	return &ansiTerminal{
		out:    w,
		size:   size,
		output: newOutputBuffer(w, colorMode),
	}
}

// Init hides the cursor and clears the screen
func (t *ansiTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	w := t.output.writer
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	w.Write(csiClear)
	w.Write(csiHome)
	if err := w.Flush(); err != nil {
		return err
	}

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *ansiTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	w.Write(csiSGR0)
	// Leave the last frame visible and continue below it
	writeCursorPos(w, 0, t.frameHeight)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)
	w.Flush()

	t.finalized = true
}

// Size returns current terminal dimensions
func (t *ansiTerminal) Size() (int, int) {
	return t.size()
}

// Flush writes cells, emitting only those that changed since the last frame
func (t *ansiTerminal) Flush(cells []Cell, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return nil
	}
	t.frameHeight = height
	return t.output.flush(cells, width, height)
}

// EmergencyReset restores cursor visibility and attributes after a crash
// Best-effort: errors are ignored
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// tcell leaves the tty in raw mode if it dies before Fini
	resetTerminalMode()
}

