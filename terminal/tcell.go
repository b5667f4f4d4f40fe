package terminal

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcellTerminal implements Terminal on a tcell screen.
// tcell owns raw mode, so Ctrl-C arrives as a key event rather than SIGINT;
// quit keys are forwarded to onQuit.
type tcellTerminal struct {
	screen    tcell.Screen
	colorMode ColorMode
	onQuit    func()

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a tcell-backed terminal on the controlling tty.
// onQuit is called from the event goroutine on Ctrl-C, Esc or 'q'.
func NewTcell(colorMode ColorMode, onQuit func()) (Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return NewTcellScreen(s, colorMode, onQuit), nil
}

// NewTcellScreen wraps an existing screen, such as tcell.NewSimulationScreen in tests
func NewTcellScreen(s tcell.Screen, colorMode ColorMode, onQuit func()) Terminal {
	if onQuit == nil {
		onQuit = func() {}
	}
	return &tcellTerminal{
		screen:    s,
		colorMode: colorMode,
		onQuit:    onQuit,
	}
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.screen.Show()
	t.initialized = true

	go t.pollLoop()
	return nil
}

// pollLoop forwards quit keys until the screen is finalized
func (t *tcellTerminal) pollLoop() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if isQuitKey(ev) {
				t.onQuit()
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return r == 'c' || r == 'C'
		}
		return r == 'q'
	}
	return false
}

func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.Fini()
	t.finalized = true
}

func (t *tcellTerminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return QuerySize(os.Stdout)
	}
	return t.screen.Size()
}

func (t *tcellTerminal) Flush(cells []Cell, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	if len(cells) < width*height {
		return nil
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := cells[y*width+x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, t.style(c))
		}
	}
	t.screen.Show()
	return nil
}

// style converts cell color and attributes for the configured color mode
func (t *tcellTerminal) style(c Cell) tcell.Style {
	st := tcell.StyleDefault
	switch t.colorMode {
	case ColorModeTrueColor:
		st = st.Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B)))
	case ColorMode256:
		st = st.Foreground(tcell.PaletteColor(int(RGBTo256(c.Fg))))
	}
	if c.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	return st
}
