package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/particlesim/internal/dynamo"
)

const (
	Epsilon   = 1.0  // well depth
	Sigma     = 10.0 // zero-crossing distance
	Softening = 0.01 // added to r² so coincident particles stay finite

	WorldWidth  = 800.0
	WorldHeight = 600.0
	Restitution = 0.5

	DefaultDt             = 0.05
	DefaultSurfaceTension = 10.0
	DefaultMass           = 1.0

	initialSpeed = 10.0
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Mass   float64
}

// Simulation is a population of point masses under a pairwise
// Lennard-Jones force inside a fixed 800x600 box.
type Simulation struct {
	particles      []Particle
	dt             float64
	surfaceTension float64
	steps          int
	observers      []dynamo.Observer
}

type Option func(*options)

type options struct {
	rng       *rand.Rand
	observers []dynamo.Observer
}

// WithSeed makes initial placement reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithObserver registers a sink for the per-step particle 0 diagnostic.
func WithObserver(obs dynamo.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(1))
	}
	return o
}

// New places count particles uniformly in [0,width)x[0,height) with
// velocity components in [-5,5). width and height are not retained.
func New(count int, width, height float64, opts ...Option) *Simulation {
	o := buildOptions(opts)
	if count < 0 {
		count = 0
	}

	particles := make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		particles = append(particles, Particle{
			X:    o.rng.Float64() * width,
			Y:    o.rng.Float64() * height,
			VX:   (o.rng.Float64() - 0.5) * initialSpeed,
			VY:   (o.rng.Float64() - 0.5) * initialSpeed,
			Mass: DefaultMass,
		})
	}

	return &Simulation{
		particles:      particles,
		dt:             DefaultDt,
		surfaceTension: DefaultSurfaceTension,
		observers:      o.observers,
	}
}

// FromParticles builds a simulation from an explicit starting state.
func FromParticles(ps dynamo.Snapshot, opts ...Option) *Simulation {
	o := buildOptions(opts)
	particles := make([]Particle, len(ps))
	for i, p := range ps {
		particles[i] = Particle{X: p.X, Y: p.Y, VX: p.VX, VY: p.VY, Mass: p.Mass}
	}
	return &Simulation{
		particles:      particles,
		dt:             DefaultDt,
		surfaceTension: DefaultSurfaceTension,
		observers:      o.observers,
	}
}

func (s *Simulation) AddObserver(obs dynamo.Observer) { s.observers = append(s.observers, obs) }

// Step advances every particle by dt. Velocities are updated in place
// during the i<j scan, so later pairs see earlier pairs' kicks.
func (s *Simulation) Step() {
	n := len(s.particles)
	dt := s.dt
	ps := s.particles

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := ps[j].X - ps[i].X
			dy := ps[j].Y - ps[i].Y
			fs := forceScalar(dx*dx + dy*dy + Softening)

			fx := fs * dx
			fy := fs * dy

			ps[i].VX += fx * dt / ps[i].Mass
			ps[i].VY += fy * dt / ps[i].Mass
			ps[j].VX -= fx * dt / ps[j].Mass
			ps[j].VY -= fy * dt / ps[j].Mass
		}
	}

	for i := range ps {
		p := &ps[i]
		p.X += p.VX * dt
		p.Y += p.VY * dt

		if p.X < 0 {
			p.X = 0
			p.VX *= -Restitution
		}
		if p.X > WorldWidth {
			p.X = WorldWidth
			p.VX *= -Restitution
		}
		if p.Y < 0 {
			p.Y = 0
			p.VY *= -Restitution
		}
		if p.Y > WorldHeight {
			p.Y = WorldHeight
			p.VY *= -Restitution
		}
	}

	s.steps++

	if n == 0 || len(s.observers) == 0 {
		return
	}
	first := ps[0]
	d := dynamo.Diagnostic{Step: s.steps, X: first.X, Y: first.Y, VX: first.VX, VY: first.VY}
	for _, obs := range s.observers {
		obs.OnStep(d)
	}
}

// forceScalar returns 48ε((σ/r)^12 - 0.5(σ/r)^6)/r² for a softened r².
func forceScalar(distSq float64) float64 {
	sr := Sigma / math.Sqrt(distSq)
	sr6 := powi(sr, 6)
	sr12 := powi(sr, 12)
	return 48 * Epsilon * (sr12 - 0.5*sr6) / distSq
}

// powi is integer exponentiation by squaring.
func powi(base float64, exp int) float64 {
	result := 1.0
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func (s *Simulation) Particles() dynamo.Snapshot {
	out := make(dynamo.Snapshot, len(s.particles))
	for i, p := range s.particles {
		out[i] = dynamo.Particle{X: p.X, Y: p.Y, VX: p.VX, VY: p.VY, Mass: p.Mass}
	}
	return out
}

func (s *Simulation) Len() int                     { return len(s.particles) }
func (s *Simulation) Steps() int                   { return s.steps }
func (s *Simulation) Dt() float64                  { return s.dt }
func (s *Simulation) SetDt(dt float64)             { s.dt = dt }
func (s *Simulation) SurfaceTension() float64      { return s.surfaceTension }
func (s *Simulation) SetSurfaceTension(st float64) { s.surfaceTension = st }

// Energy is kinetic plus Lennard-Jones potential, using the same
// softened separation as the force law.
func (s *Simulation) Energy(x dynamo.Snapshot) float64 {
	return Energy(x)
}

func Energy(x dynamo.Snapshot) float64 {
	ke, pe := 0.0, 0.0
	for i := range x {
		ke += 0.5 * x[i].Mass * (x[i].VX*x[i].VX + x[i].VY*x[i].VY)
		for j := i + 1; j < len(x); j++ {
			dx := x[j].X - x[i].X
			dy := x[j].Y - x[i].Y
			sr := Sigma / math.Sqrt(dx*dx+dy*dy+Softening)
			pe += 4 * Epsilon * (powi(sr, 12) - powi(sr, 6))
		}
	}
	return ke + pe
}

func KineticEnergy(x dynamo.Snapshot) float64 {
	ke := 0.0
	for _, p := range x {
		ke += 0.5 * p.Mass * (p.VX*p.VX + p.VY*p.VY)
	}
	return ke
}

func Momentum(x dynamo.Snapshot) (px, py float64) {
	for _, p := range x {
		px += p.Mass * p.VX
		py += p.Mass * p.VY
	}
	return
}

func (s *Simulation) GetParams() map[string]float64 {
	return map[string]float64{"dt": s.dt, "surface_tension": s.surfaceTension}
}

func (s *Simulation) SetParam(name string, v float64) error {
	switch name {
	case "dt":
		s.dt = v
	case "surface_tension":
		s.surfaceTension = v
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
