package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSize(w, h int) func() (int, int) {
	return func() (int, int) { return w, h }
}

func textCells(lines ...string) ([]Cell, int, int) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	cells := make([]Cell, width*len(lines))
	for y, l := range lines {
		for x, r := range []rune(l) {
			cells[y*width+x] = Cell{Rune: r, Fg: RGB{200, 200, 200}}
		}
	}
	return cells, width, len(lines)
}

func TestANSIInitAndFini(t *testing.T) {
	var buf bytes.Buffer
	term := NewWriter(&buf, ColorModeNone, fixedSize(80, 24))

	require.NoError(t, term.Init())
	out := buf.String()
	assert.Contains(t, out, "\x1b[?25l", "cursor hidden")
	assert.Contains(t, out, "\x1b[2J", "screen cleared")
	assert.Contains(t, out, "\x1b[H", "cursor homed")

	// Second Init is a no-op
	n := buf.Len()
	require.NoError(t, term.Init())
	assert.Equal(t, n, buf.Len())

	cells, w, h := textCells("╭──╮", "│@ │", "╰──╯")
	require.NoError(t, term.Flush(cells, w, h))

	buf.Reset()
	term.Fini()
	out = buf.String()
	// Cursor parks on the line after a 3-row frame
	assert.Contains(t, out, "\x1b[4;1H")
	assert.True(t, strings.HasSuffix(out, "\x1b[?25h"), "cursor shown last: %q", out)

	buf.Reset()
	term.Fini()
	assert.Zero(t, buf.Len(), "Fini is idempotent")
}

func TestANSIFlushDiffs(t *testing.T) {
	var buf bytes.Buffer
	term := NewWriter(&buf, ColorModeNone, fixedSize(80, 24))
	require.NoError(t, term.Init())
	buf.Reset()

	cells, w, h := textCells("ab", "cd")
	require.NoError(t, term.Flush(cells, w, h))
	first := buf.String()
	for _, r := range "abcd" {
		assert.Contains(t, first, string(r))
	}

	// Identical frame writes nothing
	buf.Reset()
	require.NoError(t, term.Flush(cells, w, h))
	assert.Zero(t, buf.Len())

	// Only the changed cell is rewritten
	cells[3].Rune = 'X'
	buf.Reset()
	require.NoError(t, term.Flush(cells, w, h))
	out := buf.String()
	assert.Contains(t, out, "X")
	assert.NotContains(t, out, "a")
	assert.Contains(t, out, "\x1b[2;2H")
}

func TestANSIColorModes(t *testing.T) {
	cells, w, h := textCells("#")

	var none bytes.Buffer
	term := NewWriter(&none, ColorModeNone, fixedSize(80, 24))
	require.NoError(t, term.Flush(cells, w, h))
	assert.NotContains(t, none.String(), "38;")

	var c256 bytes.Buffer
	term = NewWriter(&c256, ColorMode256, fixedSize(80, 24))
	require.NoError(t, term.Flush(cells, w, h))
	assert.Contains(t, c256.String(), "\x1b[38;5;")

	var tc bytes.Buffer
	term = NewWriter(&tc, ColorModeTrueColor, fixedSize(80, 24))
	require.NoError(t, term.Flush(cells, w, h))
	assert.Contains(t, tc.String(), "\x1b[38;2;200;200;200m")
}

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		in   RGB
		want uint8
	}{
		{RGB{0, 0, 0}, 16},
		{RGB{255, 255, 255}, 231},
		{RGB{255, 0, 0}, 196},
		{RGB{0, 0, 255}, 21},
		{RGB{128, 128, 128}, 244},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RGBTo256(tt.in), "%v", tt.in)
	}
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{
		"256":       ColorMode256,
		"truecolor": ColorModeTrueColor,
		"24bit":     ColorModeTrueColor,
		"none":      ColorModeNone,
	} {
		got, err := ParseColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseColorMode("sepia")
	assert.Error(t, err)

	t.Setenv("NO_COLOR", "1")
	got, err := ParseColorMode("auto")
	require.NoError(t, err)
	assert.Equal(t, ColorModeNone, got)
}

func TestQuerySizeFallsBackToEnv(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer f.Close()

	t.Setenv("COLUMNS", "100")
	t.Setenv("LINES", "40")
	w, h := QuerySize(f)
	assert.Equal(t, 100, w)
	assert.Equal(t, 40, h)
	assert.False(t, IsTerminal(f))

	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "junk")
	w, h = QuerySize(f)
	assert.Equal(t, fallbackWidth, w)
	assert.Equal(t, fallbackHeight, h)
}

func TestTcellFlush(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTcellScreen(sim, ColorModeTrueColor, nil)
	require.NoError(t, term.Init())
	defer term.Fini()

	sim.SetSize(20, 10)
	w, h := term.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)

	cells, cw, ch := textCells("╭─╮", "│╳│", "╰─╯")
	cells[4].Attrs = AttrBold
	require.NoError(t, term.Flush(cells, cw, ch))

	mainc, _, style, _ := sim.GetContent(1, 1)
	assert.Equal(t, '╳', mainc)
	fg, _, attrs := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 200, 200), fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	mainc, _, _, _ = sim.GetContent(0, 2)
	assert.Equal(t, '╰', mainc)
}

func TestTcellQuitKeys(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	quit := make(chan struct{}, 4)
	term := NewTcellScreen(sim, ColorModeNone, func() { quit <- struct{}{} })
	require.NoError(t, term.Init())
	defer term.Fini()

	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("Esc did not trigger quit")
	}

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("'q' did not trigger quit")
	}
}
