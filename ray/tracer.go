package ray

import (
	"context"
	"fmt"
)

// Rand is the randomness source for direction choice; *rand.Rand satisfies it
type Rand interface {
	Intn(n int) int
}

// FrameSink draws the grid. Returning an error aborts the shot.
type FrameSink interface {
	Frame(ctx context.Context, g *Grid) error
}

// Observer receives tracer events. Calls happen synchronously on the tracing goroutine.
type Observer interface {
	Wrote(at Point, prev, next Cell)
	Bounced(at Point, from, to Direction)
	Blocked(at Point, c Cell)
}

// NopObserver ignores every event; embed it to implement only some callbacks
type NopObserver struct{}

func (NopObserver) Wrote(Point, Cell, Cell)             {}
func (NopObserver) Bounced(Point, Direction, Direction) {}
func (NopObserver) Blocked(Point, Cell)                 {}

// FramePolicy controls how often the tracer yields frames
type FramePolicy uint8

const (
	FramePerStep    FramePolicy = iota // after every cell write
	FramePerSegment                    // after every boundary bounce
	FrameNone                          // never
)

// State is the per-shot state machine position
type State uint8

const (
	Traveling State = iota
	AtBoundary
	Blocked
	BudgetExhausted
)

func (s State) String() string {
	switch s {
	case Traveling:
		return "traveling"
	case AtBoundary:
		return "at-boundary"
	case Blocked:
		return "blocked"
	case BudgetExhausted:
		return "budget-exhausted"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// TracerConfig holds per-run tracing parameters
type TracerConfig struct {
	Mode       Mode
	MaxBounces int
	Frames     FramePolicy

	// SolidStops makes fully formed blocks halt rays like obstacles do
	SolidStops bool
}

// ShotResult summarises one traversal from the light source
type ShotResult struct {
	Start     Point
	Direction Direction // initial direction
	State     State     // Blocked or BudgetExhausted once the shot ends
	End       Point     // collision cell when Blocked
	Bounces   int
	Steps     int // cells written
}

// Tracer fires shots from the grid's light source, mutating the grid in place
type Tracer struct {
	grid     *Grid
	rng      Rand
	cfg      TracerConfig
	sink     FrameSink
	observer Observer
}

// NewTracer creates a tracer over grid. rng must not be nil.
func NewTracer(grid *Grid, rng Rand, cfg TracerConfig) *Tracer {
	return &Tracer{
		grid:     grid,
		rng:      rng,
		cfg:      cfg,
		observer: NopObserver{},
	}
}

// SetSink installs the frame sink; nil disables drawing
func (t *Tracer) SetSink(s FrameSink) {
	t.sink = s
}

// SetObserver installs an event observer; nil restores the no-op observer
func (t *Tracer) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	t.observer = o
}

// Shot fires one ray in a uniformly random direction
func (t *Tracer) Shot(ctx context.Context) (ShotResult, error) {
	d := Direction(t.rng.Intn(DirectionCount))
	return t.ShotFrom(ctx, d)
}

// ShotFrom fires one ray in direction d and runs it until it is blocked
// or has used its bounce budget
func (t *Tracer) ShotFrom(ctx context.Context, d Direction) (ShotResult, error) {
	res := ShotResult{
		Start:     t.grid.Light(),
		Direction: d,
		State:     Traveling,
	}
	if !d.Valid() {
		return res, fmt.Errorf("shot direction %s: %w", d, ErrNoReflection)
	}

	pos := res.Start
	for res.Bounces < t.cfg.MaxBounces {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		// The light source cell is never written by its own ray
		pos = pos.Add(d)
		for t.grid.InBounds(pos) {
			cur := t.grid.Get(pos)
			next, ok := Encode(cur, d, t.cfg.Mode)
			if ok && t.cfg.SolidStops && cur.Solid() {
				ok = false
			}
			if !ok {
				res.State = Blocked
				res.End = pos
				t.observer.Blocked(pos, cur)
				if t.cfg.Frames == FramePerSegment {
					if err := t.frame(ctx); err != nil {
						return res, err
					}
				}
				return res, nil
			}

			t.grid.Set(pos, next)
			res.Steps++
			t.observer.Wrote(pos, cur, next)
			pos = pos.Add(d)

			if t.cfg.Frames == FramePerStep {
				if err := t.frame(ctx); err != nil {
					return res, err
				}
			}
		}

		res.State = AtBoundary
		next, err := t.bounce(pos, d)
		if err != nil {
			return res, err
		}
		res.Bounces++
		t.observer.Bounced(pos, d, next)
		d = next
		res.State = Traveling

		if t.cfg.Frames == FramePerSegment {
			if err := t.frame(ctx); err != nil {
				return res, err
			}
		}
	}

	res.State = BudgetExhausted
	return res, nil
}

// bounce reflects d off whichever boundaries pos has crossed; a corner exit reflects on both axes
func (t *Tracer) bounce(pos Point, d Direction) (Direction, error) {
	var err error
	if pos.Row < 0 || pos.Row >= t.grid.rows {
		if d, err = d.BounceVertical(); err != nil {
			return d, fmt.Errorf("ray leaving at (%d,%d): %w", pos.Row, pos.Col, err)
		}
	}
	if pos.Col < 0 || pos.Col >= t.grid.cols {
		if d, err = d.BounceHorizontal(); err != nil {
			return d, fmt.Errorf("ray leaving at (%d,%d): %w", pos.Row, pos.Col, err)
		}
	}
	return d, nil
}

func (t *Tracer) frame(ctx context.Context) error {
	if t.sink == nil {
		return nil
	}
	return t.sink.Frame(ctx, t.grid)
}
