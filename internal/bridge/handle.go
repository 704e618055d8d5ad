package bridge

import (
	"io"
	"log"

	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/physics"
)

// Handle is the surface an embedding host drives: construct, step, read
// particles, tweak the two parameters. The per-step diagnostic line goes
// to the host writer.
type Handle struct {
	sim    *physics.Simulation
	logger *log.Logger
}

func NewHandle(count int, width, height float64, seed int64, host io.Writer) *Handle {
	if host == nil {
		host = io.Discard
	}
	h := &Handle{logger: log.New(host, "", 0)}
	h.sim = physics.New(count, width, height,
		physics.WithSeed(seed),
		physics.WithObserver(dynamo.ObserverFunc(h.logDiagnostic)),
	)
	return h
}

func (h *Handle) logDiagnostic(d dynamo.Diagnostic) {
	h.logger.Println(d.String())
}

func (h *Handle) Step() { h.sim.Step() }

// GetParticles returns the JSON snapshot, or null when it cannot be
// represented.
func (h *Handle) GetParticles() []byte { return EncodeOrNull(h.sim.Particles()) }

func (h *Handle) SetDt(dt float64)             { h.sim.SetDt(dt) }
func (h *Handle) SetSurfaceTension(st float64) { h.sim.SetSurfaceTension(st) }

func (h *Handle) Simulation() *physics.Simulation { return h.sim }
