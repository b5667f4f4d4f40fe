package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Archer4499/raytracer/ray"
	"github.com/Archer4499/raytracer/render"
)

// Stats accumulates shot outcomes over a run
type Stats struct {
	Rounds    int
	Shots     int
	Blocked   int
	Exhausted int
	Bounces   int
	Steps     int
}

func (s *Stats) record(res ray.ShotResult) {
	s.Shots++
	s.Bounces += res.Bounces
	s.Steps += res.Steps
	switch res.State {
	case ray.Blocked:
		s.Blocked++
	case ray.BudgetExhausted:
		s.Exhausted++
	}
}

// Driver owns the grid and runs relocation rounds of shots against it
type Driver struct {
	cfg       Config
	grid      *ray.Grid
	rng       *rand.Rand
	tracer    *ray.Tracer
	sink      ray.FrameSink
	observers observers
	sleep     func(context.Context, time.Duration) error
	stats     Stats
}

// NewDriver validates cfg and builds the grid. sink may be nil.
// A configured light outside the grid returns ray.ErrOutOfBounds.
func NewDriver(cfg Config, sink ray.FrameSink, obs ...ray.Observer) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := ray.NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	if cfg.Light != nil {
		if err := grid.RelocateLight(*cfg.Light); err != nil {
			return nil, fmt.Errorf("light: %w", err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	d := &Driver{
		cfg:       cfg,
		grid:      grid,
		rng:       rng,
		tracer:    ray.NewTracer(grid, rng, cfg.Tracer()),
		sink:      sink,
		observers: observers{logObserver{}},
		sleep:     render.Sleep,
	}
	for _, o := range obs {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
	d.tracer.SetSink(sink)
	d.tracer.SetObserver(d.observers)

	log.Printf("run: grid %dx%d mode=%s bounces=%d shots=%d sources=%d layout=%s clear=%t seed=%d",
		cfg.Rows, cfg.Cols, cfg.Mode, cfg.MaxBounces, cfg.Shots, cfg.Sources, cfg.Layout, cfg.Clear, seed)
	return d, nil
}

// Grid returns the driven grid
func (d *Driver) Grid() *ray.Grid { return d.grid }

// Stats returns the outcomes recorded so far
func (d *Driver) Stats() Stats { return d.stats }

// Run places obstacles then fires Shots shots from each of Sources light
// positions. The first round uses the configured light when one is set.
// Returns ctx.Err() when cancelled.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.placeObstacles(); err != nil {
		return err
	}

	for round := 0; round < d.cfg.Sources; round++ {
		if round > 0 && d.cfg.Clear {
			d.grid.Reset()
		}
		if round > 0 || d.cfg.Light == nil {
			if err := d.relocate(); err != nil {
				return err
			}
		}
		d.stats.Rounds++
		log.Printf("round %d: light at (%d,%d)", round+1, d.grid.Light().Row, d.grid.Light().Col)

		if err := d.frame(ctx); err != nil {
			return err
		}

		for i := 0; i < d.cfg.Shots; i++ {
			if err := d.Shoot(ctx); err != nil {
				return err
			}
			if err := d.sleep(ctx, d.cfg.ShotDelay); err != nil {
				return err
			}
		}
	}

	log.Printf("run complete: %+v passages=%d intersections=%d blocks=%d",
		d.stats,
		d.grid.Count(ray.KindPassage),
		d.grid.Count(ray.KindIntersection),
		d.grid.Count(ray.KindBlock))
	return nil
}

// Shoot fires one shot in a random direction from the current light
func (d *Driver) Shoot(ctx context.Context) error {
	d.observers.shot()
	res, err := d.tracer.Shot(ctx)
	if err != nil {
		return err
	}
	d.stats.record(res)
	log.Printf("shot %d: %s from (%d,%d) %s after %d bounces, %d steps",
		d.stats.Shots, res.Direction, res.Start.Row, res.Start.Col, res.State, res.Bounces, res.Steps)
	return nil
}

// relocate moves the light to a uniformly random cell that is not an obstacle
func (d *Driver) relocate() error {
	for {
		p := d.randomPoint()
		if d.grid.Get(p).Kind == ray.KindOpaque {
			continue
		}
		return d.grid.RelocateLight(p)
	}
}

// placeObstacles lays out opaque cells per cfg.Layout, never over the light
func (d *Driver) placeObstacles() error {
	switch d.cfg.Layout {
	case LayoutMaze:
		for _, p := range mazeWalls(d.grid.Rows(), d.grid.Cols(), d.cfg.WallDensity, d.rng) {
			if err := d.grid.PlaceOpaque(p); err != nil {
				return fmt.Errorf("maze: %w", err)
			}
		}
	default:
		placed := d.grid.Count(ray.KindOpaque)
		for placed < d.cfg.Obstacles {
			p := d.randomPoint()
			if c := d.grid.Get(p); c.Kind == ray.KindOpaque || c.Kind == ray.KindLightSource {
				continue
			}
			if err := d.grid.PlaceOpaque(p); err != nil {
				return fmt.Errorf("obstacle: %w", err)
			}
			placed++
		}
	}
	if n := d.grid.Count(ray.KindOpaque); n > 0 {
		log.Printf("layout %s: %d obstacles", d.cfg.Layout, n)
	}
	return nil
}

func (d *Driver) randomPoint() ray.Point {
	return ray.Point{Row: d.rng.Intn(d.grid.Rows()), Col: d.rng.Intn(d.grid.Cols())}
}

func (d *Driver) frame(ctx context.Context) error {
	if d.sink == nil {
		return nil
	}
	return d.sink.Frame(ctx, d.grid)
}
