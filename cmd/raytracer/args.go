package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/Archer4499/raytracer/engine"
	"github.com/Archer4499/raytracer/ray"
	"github.com/Archer4499/raytracer/terminal"
)

const (
	backendANSI  = "ansi"
	backendTcell = "tcell"
)

// options is the parsed command line
type options struct {
	config    engine.Config
	backend   string
	colorMode terminal.ColorMode
	ascii     bool
	sound     bool
	debug     bool
}

// flagValues holds raw flag destinations before validation
type flagValues struct {
	mode       string
	light      string
	layout     string
	color      string
	backend    string
	step       bool
	solidStops bool
	ascii      bool
	sound      bool
	debug      bool
}

func newFlagSet(cfg *engine.Config, fv *flagValues) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVar(&fv.mode, "mode", cfg.Mode.String(), "Cell merge mode: lines, blocks, mixed")
	fs.IntVar(&cfg.MaxBounces, "bounces", cfg.MaxBounces, "Bounce budget per shot")
	fs.IntVar(&cfg.Shots, "shots", cfg.Shots, "Shots per light position")
	fs.IntVar(&cfg.Sources, "sources", cfg.Sources, "Number of light positions")
	fs.StringVar(&fv.light, "light", "", "First light position as row,col (default random)")
	fs.StringVar(&fv.layout, "layout", cfg.Layout.String(), "Obstacle layout: scatter, maze")
	fs.IntVar(&cfg.Obstacles, "obstacles", cfg.Obstacles, "Opaque cells for the scatter layout")
	fs.Float64Var(&cfg.WallDensity, "wall-density", cfg.WallDensity, "Share of maze walls kept for the maze layout")
	fs.BoolVar(&cfg.Clear, "clear", cfg.Clear, "Wipe trails before each new light position")
	fs.BoolVar(&fv.solidStops, "solid-stops", cfg.SolidStops, "Saturated blocks stop rays")
	fs.BoolVar(&fv.step, "step", cfg.Frames == ray.FramePerStep, "Draw after every step (false: after every bounce)")
	fs.DurationVar(&cfg.FrameDelay, "frame-delay", cfg.FrameDelay, "Pause after each frame")
	fs.DurationVar(&cfg.ShotDelay, "shot-delay", cfg.ShotDelay, "Pause after each shot")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 seeds from the clock)")
	fs.StringVar(&fv.backend, "backend", backendANSI, "Terminal backend: ansi, tcell")
	fs.StringVar(&fv.color, "color", "auto", "Color mode: auto, none, 256, truecolor")
	fs.BoolVar(&fv.ascii, "ascii", false, "Use ASCII glyphs")
	fs.BoolVar(&fv.sound, "sound", false, "Play bounce and collision cues")
	fs.BoolVar(&fv.debug, "debug", false, "Write a debug log under logs/")
	return fs
}

// parseArgs reads flags then either no positional arguments or "rows columns"
func parseArgs(args []string) (options, error) {
	opts := options{config: engine.DefaultConfig()}
	var fv flagValues

	fs := newFlagSet(&opts.config, &fv)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, err
		}
		return opts, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 2:
		rows, err := positiveInt("rows", rest[0])
		if err != nil {
			return opts, err
		}
		cols, err := positiveInt("columns", rest[1])
		if err != nil {
			return opts, err
		}
		opts.config.Rows, opts.config.Cols = rows, cols
	default:
		return opts, fmt.Errorf("%w: want 0 or 2 arguments, got %d", errInvalidArguments, len(rest))
	}

	mode, err := ray.ParseMode(fv.mode)
	if err != nil {
		return opts, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	opts.config.Mode = mode

	if opts.config.Layout, err = engine.ParseLayout(fv.layout); err != nil {
		return opts, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	opts.config.SolidStops = fv.solidStops
	if fv.step {
		opts.config.Frames = ray.FramePerStep
	} else {
		opts.config.Frames = ray.FramePerSegment
	}

	if fv.light != "" {
		p, err := engine.ParsePoint(fv.light)
		if err != nil {
			return opts, fmt.Errorf("%w: -light: %v", errInvalidArguments, err)
		}
		opts.config.Light = &p
	}

	switch fv.backend {
	case backendANSI, backendTcell:
		opts.backend = fv.backend
	default:
		return opts, fmt.Errorf("%w: unknown backend %q", errInvalidArguments, fv.backend)
	}

	if opts.colorMode, err = terminal.ParseColorMode(fv.color); err != nil {
		return opts, fmt.Errorf("%w: %v", errInvalidArguments, err)
	}

	opts.ascii = fv.ascii
	opts.sound = fv.sound
	opts.debug = fv.debug
	return opts, nil
}

func positiveInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", errInvalidArguments, name, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", errInvalidArguments, name, n)
	}
	return n, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: raytracer [flags] [rows columns]\n\n")
	fmt.Fprintf(w, "Without rows and columns the grid fills the terminal.\n\nFlags:\n")

	cfg := engine.DefaultConfig()
	fs := newFlagSet(&cfg, &flagValues{})
	fs.SetOutput(w)
	fs.PrintDefaults()
}
