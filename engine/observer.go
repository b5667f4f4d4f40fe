package engine

import (
	"log"

	"github.com/Archer4499/raytracer/ray"
)

// ShotListener is an optional observer extension notified as each shot starts
type ShotListener interface {
	Shot()
}

// observers fans tracer events out in registration order
type observers []ray.Observer

func (o observers) Wrote(at ray.Point, prev, next ray.Cell) {
	for _, obs := range o {
		obs.Wrote(at, prev, next)
	}
}

func (o observers) Bounced(at ray.Point, from, to ray.Direction) {
	for _, obs := range o {
		obs.Bounced(at, from, to)
	}
}

func (o observers) Blocked(at ray.Point, c ray.Cell) {
	for _, obs := range o {
		obs.Blocked(at, c)
	}
}

func (o observers) shot() {
	for _, obs := range o {
		if l, ok := obs.(ShotListener); ok {
			l.Shot()
		}
	}
}

// logObserver writes bounce and collision events to the debug log
type logObserver struct {
	ray.NopObserver
}

func (logObserver) Bounced(at ray.Point, from, to ray.Direction) {
	log.Printf("bounce at (%d,%d): %s -> %s", at.Row, at.Col, from, to)
}

func (logObserver) Blocked(at ray.Point, c ray.Cell) {
	log.Printf("blocked at (%d,%d) by %s", at.Row, at.Col, c)
}
