package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Archer4499/raytracer/engine"
	"github.com/Archer4499/raytracer/ray"
	"github.com/Archer4499/raytracer/terminal"
)

// interactive treats stdout as a terminal so runs go through the fake backend
func interactive() (io.Writer, bool) { return nil, false }

func TestMain(m *testing.M) {
	plainOutput = interactive
	os.Exit(m.Run())
}

type fakeTerminal struct {
	width, height int
	inits, finis  int
	flushes       int
	lastW, lastH  int
	onQuit        func()
	quitAfter     int // call onQuit on this flush; zero never
}

func (f *fakeTerminal) Init() error {
	f.inits++
	return nil
}

func (f *fakeTerminal) Fini()            { f.finis++ }
func (f *fakeTerminal) Size() (int, int) { return f.width, f.height }

func (f *fakeTerminal) Flush(_ []terminal.Cell, width, height int) error {
	f.flushes++
	f.lastW, f.lastH = width, height
	if f.quitAfter > 0 && f.flushes == f.quitAfter && f.onQuit != nil {
		f.onQuit()
	}
	return nil
}

func factoryFor(term *fakeTerminal) terminalFactory {
	return func(_ string, _ terminal.ColorMode, onQuit func()) (terminal.Terminal, error) {
		term.onQuit = onQuit
		return term, nil
	}
}

func TestParseArgsDefaults(t *testing.T) {
	opts, err := parseArgs(nil)
	require.NoError(t, err)

	assert.Zero(t, opts.config.Rows)
	assert.Zero(t, opts.config.Cols)
	assert.Equal(t, ray.LinesOnly, opts.config.Mode)
	assert.Equal(t, 8, opts.config.MaxBounces)
	assert.Equal(t, 20, opts.config.Shots)
	assert.Equal(t, 5, opts.config.Sources)
	assert.Equal(t, 100*time.Millisecond, opts.config.ShotDelay)
	assert.Equal(t, ray.FramePerStep, opts.config.Frames)
	assert.Nil(t, opts.config.Light)
	assert.False(t, opts.config.Clear)
	assert.Equal(t, backendANSI, opts.backend)
	assert.False(t, opts.sound)
}

func TestParseArgsFlagsAndSize(t *testing.T) {
	opts, err := parseArgs([]string{
		"-mode", "mixed", "-bounces", "3", "-shots", "7", "-sources", "2",
		"-light", "1,4", "-obstacles", "5", "-solid-stops", "-step=false",
		"-shot-delay", "0", "-seed", "99", "-backend", "tcell", "-color", "none",
		"-layout", "maze", "-wall-density", "0.5", "-clear", "-ascii", "15", "40",
	})
	require.NoError(t, err)

	cfg := opts.config
	assert.Equal(t, 15, cfg.Rows)
	assert.Equal(t, 40, cfg.Cols)
	assert.Equal(t, ray.Mixed, cfg.Mode)
	assert.Equal(t, 3, cfg.MaxBounces)
	assert.Equal(t, 7, cfg.Shots)
	assert.Equal(t, 2, cfg.Sources)
	require.NotNil(t, cfg.Light)
	assert.Equal(t, ray.Point{Row: 1, Col: 4}, *cfg.Light)
	assert.Equal(t, 5, cfg.Obstacles)
	assert.Equal(t, engine.LayoutMaze, cfg.Layout)
	assert.InDelta(t, 0.5, cfg.WallDensity, 1e-9)
	assert.True(t, cfg.SolidStops)
	assert.True(t, cfg.Clear)
	assert.Equal(t, ray.FramePerSegment, cfg.Frames)
	assert.Zero(t, cfg.ShotDelay)
	assert.EqualValues(t, 99, cfg.Seed)
	assert.Equal(t, backendTcell, opts.backend)
	assert.Equal(t, terminal.ColorModeNone, opts.colorMode)
	assert.True(t, opts.ascii)
}

func TestParseArgsInvalid(t *testing.T) {
	tests := map[string][]string{
		"one argument":     {"10"},
		"three arguments":  {"1", "2", "3"},
		"non-integer rows": {"ten", "20"},
		"non-integer cols": {"10", "2.5"},
		"zero rows":        {"0", "20"},
		"negative":         {"-5", "20"},
		"unknown flag":     {"-frobnicate"},
		"bad mode":         {"-mode", "waves"},
		"bad light":        {"-light", "middle"},
		"bad layout":       {"-layout", "spiral"},
		"bad backend":      {"-backend", "curses"},
		"bad color":        {"-color", "sepia"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseArgs(args)
			assert.ErrorIs(t, err, errInvalidArguments)
		})
	}
}

func TestRunInvalidArgumentsExit2(t *testing.T) {
	var stderr bytes.Buffer
	term := &fakeTerminal{width: 80, height: 24}

	code := run([]string{"12"}, &stderr, factoryFor(term))

	assert.Equal(t, exitInvalidArgs, code)
	assert.Contains(t, stderr.String(), "Usage: raytracer")
	assert.Zero(t, term.inits, "terminal untouched on bad arguments")
}

func TestRunHelpExit0(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"-h"}, &stderr, factoryFor(&fakeTerminal{}))

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr.String(), "-bounces")
}

func TestRunTerminalTooSmallExit1(t *testing.T) {
	var stderr bytes.Buffer
	term := &fakeTerminal{width: 40, height: 20}

	code := run([]string{"18", "30"}, &stderr, factoryFor(term))

	assert.Equal(t, exitRuntime, code)
	assert.Contains(t, stderr.String(), errTerminalTooSmall.Error())
	assert.Zero(t, term.inits)
}

func TestRunLightOutOfBoundsExit1(t *testing.T) {
	var stderr bytes.Buffer
	term := &fakeTerminal{width: 80, height: 24}

	code := run([]string{"-light", "9,9", "5", "5"}, &stderr, factoryFor(term))

	assert.Equal(t, exitRuntime, code)
	assert.Contains(t, stderr.String(), ray.ErrOutOfBounds.Error())
}

func TestRunCompletesExit0(t *testing.T) {
	var stderr bytes.Buffer
	term := &fakeTerminal{width: 30, height: 12}

	code := run([]string{"-shots", "3", "-sources", "2", "-shot-delay", "0", "-seed", "7", "5", "9"},
		&stderr, factoryFor(term))

	assert.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, 1, term.inits)
	assert.Equal(t, 1, term.finis)
	assert.Greater(t, term.flushes, 0)
	assert.Equal(t, 11, term.lastW)
	assert.Equal(t, 7, term.lastH)
}

func TestRunAutoSize(t *testing.T) {
	var stderr bytes.Buffer
	term := &fakeTerminal{width: 20, height: 10}

	code := run([]string{"-shots", "1", "-sources", "1", "-shot-delay", "0", "-seed", "3"},
		&stderr, factoryFor(term))

	require.Equal(t, exitOK, code, stderr.String())
	// grid is terminal minus margin, frame adds the border
	assert.Equal(t, 20-sizeMargin+2, term.lastW)
	assert.Equal(t, 10-sizeMargin+2, term.lastH)
}

func TestRunTooManyObstaclesExit2(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"-obstacles", "100", "5", "5"}, &stderr, factoryFor(&fakeTerminal{width: 80, height: 24}))

	assert.Equal(t, exitInvalidArgs, code)
}

func TestRunInvalidConfigBeforeSizeCheck(t *testing.T) {
	var stderr bytes.Buffer
	term := &fakeTerminal{width: 4, height: 4}

	code := run([]string{"-obstacles", "100", "5", "5"}, &stderr, factoryFor(term))

	assert.Equal(t, exitInvalidArgs, code)
	assert.Contains(t, stderr.String(), engine.ErrInvalidConfig.Error())
	assert.NotContains(t, stderr.String(), errTerminalTooSmall.Error())
}

func TestRunPlainOutput(t *testing.T) {
	var stderr, stdout bytes.Buffer
	plainOutput = func() (io.Writer, bool) { return &stdout, true }
	t.Cleanup(func() { plainOutput = interactive })

	// The terminal is never opened, so its tiny size does not matter
	term := &fakeTerminal{width: 4, height: 4}
	code := run([]string{"-shots", "3", "-sources", "2", "-seed", "7", "-ascii", "5", "9"},
		&stderr, factoryFor(term))

	require.Equal(t, exitOK, code, stderr.String())
	assert.Zero(t, term.inits)
	assert.Zero(t, term.flushes)

	out := stdout.String()
	assert.NotContains(t, out, "\x1b", "no escape sequences in plain output")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "+---------+", lines[0])
	assert.Equal(t, "+---------+", lines[6])
	assert.Equal(t, 1, strings.Count(out, "@"))
}

func TestRunQuitKeyExit0(t *testing.T) {
	var stderr bytes.Buffer
	term := &fakeTerminal{width: 30, height: 12, quitAfter: 1}

	code := run([]string{"-shot-delay", "1h", "-seed", "5", "5", "9"}, &stderr, factoryFor(term))

	assert.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, 1, term.finis, "terminal restored after quit")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitOK, exitCode(fmt.Errorf("shot: %w", context.Canceled)))
	assert.Equal(t, exitInvalidArgs, exitCode(fmt.Errorf("x: %w", errInvalidArguments)))
	assert.Equal(t, exitInvalidArgs, exitCode(fmt.Errorf("x: %w", engine.ErrInvalidConfig)))
	assert.Equal(t, exitRuntime, exitCode(errTerminalTooSmall))
	assert.Equal(t, exitRuntime, exitCode(ray.ErrOutOfBounds))
	assert.Equal(t, exitRuntime, exitCode(errors.New("boom")))
}

func TestFitGrid(t *testing.T) {
	cfg := engine.DefaultConfig()
	require.NoError(t, fitGrid(&cfg, 80, 24))
	assert.Equal(t, 21, cfg.Rows)
	assert.Equal(t, 77, cfg.Cols)

	cfg = engine.DefaultConfig()
	assert.ErrorIs(t, fitGrid(&cfg, 3, 24), errTerminalTooSmall)

	cfg = engine.DefaultConfig()
	cfg.Rows, cfg.Cols = 21, 77
	assert.NoError(t, fitGrid(&cfg, 80, 24))
	cfg.Cols = 78
	assert.ErrorIs(t, fitGrid(&cfg, 80, 24), errTerminalTooSmall)
	cfg.Cols, cfg.Rows = 77, 22
	assert.ErrorIs(t, fitGrid(&cfg, 80, 24), errTerminalTooSmall)
}
