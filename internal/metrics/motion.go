package metrics

import (
	"math"

	"github.com/san-kum/particlesim/internal/dynamo"
)

// MaxSpeed records the fastest particle seen during the run.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(x dynamo.Snapshot, t float64) {
	for _, p := range x {
		m.max = math.Max(m.max, p.Speed())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// WallContact is the mean fraction of particles sitting exactly on a
// world edge, i.e. clamped by the last reflection.
type WallContact struct {
	name          string
	width, height float64
	fraction      float64
	samples       int
}

func NewWallContact(width, height float64) *WallContact {
	return &WallContact{
		name:   "wall_contact",
		width:  width,
		height: height,
	}
}

func (w *WallContact) Name() string { return w.name }

func (w *WallContact) Observe(x dynamo.Snapshot, t float64) {
	w.samples++
	if len(x) == 0 {
		return
	}
	touching := 0
	for _, p := range x {
		if p.X == 0 || p.X == w.width || p.Y == 0 || p.Y == w.height {
			touching++
		}
	}
	w.fraction += float64(touching) / float64(len(x))
}

func (w *WallContact) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return w.fraction / float64(w.samples)
}

func (w *WallContact) Reset() {
	w.fraction = 0
	w.samples = 0
}
