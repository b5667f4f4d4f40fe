package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/Archer4499/raytracer/audio"
	"github.com/Archer4499/raytracer/engine"
	"github.com/Archer4499/raytracer/ray"
	"github.com/Archer4499/raytracer/render"
	"github.com/Archer4499/raytracer/terminal"
)

// Exit codes
const (
	exitOK          = 0
	exitRuntime     = 1
	exitInvalidArgs = 2
)

// sizeMargin is the space kept free around the grid: two border cells plus the prompt line
const sizeMargin = 3

var (
	errInvalidArguments = errors.New("invalid arguments")
	errTerminalTooSmall = errors.New("terminal too small")
)

// terminalFactory opens the selected backend; onQuit is called on a quit key
type terminalFactory func(backend string, colorMode terminal.ColorMode, onQuit func()) (terminal.Terminal, error)

func openTerminal(backend string, colorMode terminal.ColorMode, onQuit func()) (terminal.Terminal, error) {
	switch backend {
	case backendTcell:
		return terminal.NewTcell(colorMode, onQuit)
	default:
		return terminal.New(colorMode), nil
	}
}

// plainOutput reports where the finished grid goes when stdout is not a terminal
var plainOutput = func() (io.Writer, bool) {
	return os.Stdout, !terminal.IsTerminal(os.Stdout)
}

func main() {
	// Panic Recovery: restore the terminal even if tracing crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRAYTRACER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(exitRuntime)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stderr, openTerminal))
}

// run executes one animation and returns the process exit code
func run(args []string, stderr io.Writer, open terminalFactory) int {
	opts, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stderr)
			return exitOK
		}
		fmt.Fprintf(stderr, "%v\n", err)
		printUsage(stderr)
		return exitInvalidArgs
	}

	logFile := setupLogging(opts.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	err = animate(opts, open)
	if code := exitCode(err); code != exitOK {
		log.Printf("exit %d: %v", code, err)
		fmt.Fprintf(stderr, "%v\n", err)
		return code
	}
	return exitOK
}

// exitCode maps a run error to the process status; an interrupt is a clean exit
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitOK
	case errors.Is(err, errInvalidArguments), errors.Is(err, engine.ErrInvalidConfig):
		return exitInvalidArgs
	}
	return exitRuntime
}

// animate owns the terminal for the run; Fini always runs before returning
func animate(opts options, open terminalFactory) error {
	cfg := opts.config
	// Explicit sizes can be validated before the terminal is consulted
	if cfg.Rows != 0 || cfg.Cols != 0 {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	glyphs := render.SelectGlyphs(opts.ascii, nil)
	if out, plain := plainOutput(); plain {
		return animateText(ctx, cfg, out, glyphs, opts.sound)
	}

	term, err := open(opts.backend, opts.colorMode, cancel)
	if err != nil {
		return err
	}

	width, height := term.Size()
	if err := fitGrid(&cfg, width, height); err != nil {
		return err
	}

	renderer := render.NewRenderer(term, glyphs, cfg.FrameDelay)

	observers, closeAudio := openAudio(opts.sound)
	defer closeAudio()

	driver, err := engine.NewDriver(cfg, renderer, observers...)
	if err != nil {
		return err
	}

	log.Printf("terminal %dx%d backend=%s color=%s glyphs=%s", width, height, opts.backend, opts.colorMode, glyphs.Name)

	if err := term.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer term.Fini()

	err = driver.Run(ctx)
	log.Printf("drew %d frames, final frame:\n%s", renderer.Frames(), render.String(driver.Grid(), renderer.Glyphs()))
	return err
}

// animateText runs without pacing or escape sequences and prints only the
// finished grid. An unset grid size comes from $COLUMNS and $LINES.
func animateText(ctx context.Context, cfg engine.Config, out io.Writer, glyphs *render.GlyphSet, sound bool) error {
	if cfg.Rows == 0 && cfg.Cols == 0 {
		width, height := terminal.QuerySize(os.Stdout)
		if err := fitGrid(&cfg, width, height); err != nil {
			return err
		}
	}
	cfg.FrameDelay, cfg.ShotDelay = 0, 0

	sink := render.NewTextSink(out, glyphs)

	observers, closeAudio := openAudio(sound)
	defer closeAudio()

	driver, err := engine.NewDriver(cfg, sink, observers...)
	if err != nil {
		return err
	}
	log.Printf("stdout is not a terminal, printing the final frame only")

	runErr := driver.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	log.Printf("traced %d frames, final frame:\n%s", sink.Frames(), render.String(driver.Grid(), glyphs))
	if err := sink.Final(driver.Grid()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return runErr
}

// openAudio starts the cue player when enabled. A missing audio device is
// logged and the run continues silently.
func openAudio(enabled bool) ([]ray.Observer, func()) {
	if !enabled {
		return nil, func() {}
	}
	player := audio.NewPlayer(nil)
	if err := player.Initialize(); err != nil {
		log.Printf("audio unavailable: %v (continuing without sound)", err)
		return nil, func() {}
	}
	return []ray.Observer{player}, player.Cleanup
}

// fitGrid sizes an unset grid to the terminal and checks that the grid fits
func fitGrid(cfg *engine.Config, width, height int) error {
	if cfg.Rows == 0 && cfg.Cols == 0 {
		cfg.Rows, cfg.Cols = height-sizeMargin, width-sizeMargin
		if cfg.Rows <= 0 || cfg.Cols <= 0 {
			return fmt.Errorf("%w: %dx%d", errTerminalTooSmall, width, height)
		}
		return nil
	}
	if cfg.Cols+sizeMargin > width || cfg.Rows+sizeMargin > height {
		return fmt.Errorf("%w: grid %dx%d needs %dx%d, have %dx%d", errTerminalTooSmall,
			cfg.Rows, cfg.Cols, cfg.Cols+sizeMargin, cfg.Rows+sizeMargin, width, height)
	}
	return nil
}
