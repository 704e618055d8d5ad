package dynamo

import (
	"fmt"
	"math"
)

// Particle is the transferable view of a single point mass.
type Particle struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	VX   float64 `json:"vx" yaml:"vx"`
	VY   float64 `json:"vy" yaml:"vy"`
	Mass float64 `json:"mass" yaml:"mass"`
}

func (p Particle) Speed() float64 {
	return math.Sqrt(p.VX*p.VX + p.VY*p.VY)
}

// Snapshot is a copy of the particle population in index order.
type Snapshot []Particle

func (s Snapshot) Clone() Snapshot {
	c := make(Snapshot, len(s))
	copy(c, s)
	return c
}

func (s Snapshot) Len() int { return len(s) }

func (s Snapshot) IsValid() bool {
	for _, p := range s {
		for _, v := range [...]float64{p.X, p.Y, p.VX, p.VY, p.Mass} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Diagnostic carries the per-step record for particle 0.
type Diagnostic struct {
	Step int
	X    float64
	Y    float64
	VX   float64
	VY   float64
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Particle 0 - Position: (%.2f, %.2f), Velocity: (%.2f, %.2f)", d.X, d.Y, d.VX, d.VY)
}

type Observer interface {
	OnStep(d Diagnostic)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(d Diagnostic)

func (f ObserverFunc) OnStep(d Diagnostic) { f(d) }

type System interface {
	Step()
	Particles() Snapshot
	Dt() float64
	SetDt(dt float64)
	SurfaceTension() float64
	SetSurfaceTension(st float64)
}

type Hamiltonian interface {
	Energy(s Snapshot) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Metric interface {
	Name() string
	Observe(s Snapshot, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Steps         int
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         1000,
		RecordEvery:   10,
		ValidateState: true,
	}
}

type Result struct {
	Frames      []Snapshot
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
