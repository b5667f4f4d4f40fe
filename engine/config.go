package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Archer4499/raytracer/ray"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one run
type Config struct {
	Rows, Cols int

	Mode       ray.Mode
	MaxBounces int
	SolidStops bool
	Frames     ray.FramePolicy

	Shots   int        // shots per light position
	Sources int        // light relocation rounds
	Light   *ray.Point // first light position; nil picks one at random
	Seed    int64      // zero seeds from the clock
	Clear   bool       // wipe trails before every round after the first

	Layout      Layout
	Obstacles   int     // opaque cells for LayoutScatter
	WallDensity float64 // share of maze walls kept for LayoutMaze

	FrameDelay time.Duration
	ShotDelay  time.Duration
}

// DefaultConfig returns the standard run: five light positions of twenty shots
func DefaultConfig() Config {
	return Config{
		Mode:       ray.LinesOnly,
		MaxBounces: 8,
		Frames:     ray.FramePerStep,
		Shots:      20,
		Sources:    5,
		ShotDelay:  100 * time.Millisecond,

		Layout:      LayoutScatter,
		WallDensity: 0.35,
	}
}

// Validate checks ranges; grid dimensions must already be set
func (c *Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	case c.MaxBounces < 0:
		return fmt.Errorf("%w: bounces %d", ErrInvalidConfig, c.MaxBounces)
	case c.Shots < 0:
		return fmt.Errorf("%w: shots %d", ErrInvalidConfig, c.Shots)
	case c.Sources < 0:
		return fmt.Errorf("%w: sources %d", ErrInvalidConfig, c.Sources)
	case c.Obstacles < 0 || c.Obstacles >= c.Rows*c.Cols:
		return fmt.Errorf("%w: %d obstacles on %d cells", ErrInvalidConfig, c.Obstacles, c.Rows*c.Cols)
	case c.WallDensity < 0 || c.WallDensity > 1:
		return fmt.Errorf("%w: wall density %g", ErrInvalidConfig, c.WallDensity)
	case c.FrameDelay < 0 || c.ShotDelay < 0:
		return fmt.Errorf("%w: negative delay", ErrInvalidConfig)
	}
	if c.Mode > ray.Mixed {
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, c.Mode)
	}
	if c.Layout > LayoutMaze {
		return fmt.Errorf("%w: layout %d", ErrInvalidConfig, c.Layout)
	}
	return nil
}

// Tracer returns the tracer settings for this run
func (c *Config) Tracer() ray.TracerConfig {
	return ray.TracerConfig{
		Mode:       c.Mode,
		MaxBounces: c.MaxBounces,
		Frames:     c.Frames,
		SolidStops: c.SolidStops,
	}
}

// ParsePoint parses "row,col". Bounds are checked when the light is placed.
func ParsePoint(s string) (ray.Point, error) {
	rs, cs, ok := strings.Cut(s, ",")
	if !ok {
		return ray.Point{}, fmt.Errorf("point %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return ray.Point{}, fmt.Errorf("point %q: row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return ray.Point{}, fmt.Errorf("point %q: col: %w", s, err)
	}
	return ray.Point{Row: row, Col: col}, nil
}
