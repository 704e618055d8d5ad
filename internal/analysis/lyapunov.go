package analysis

import (
	"math"

	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/physics"
)

// DivergenceRate estimates the largest Lyapunov exponent of the particle
// system starting from x0 using the trajectory separation method.
//
// Algorithm:
// 1. Run a reference system and a copy with particle 0 shifted in x
// 2. Measure their phase space separation after each step
// 3. λ ≈ mean(ln(|δ(t)|/|δ(0)|)) / dt, renormalizing when |δ| > 1
func DivergenceRate(x0 dynamo.Snapshot, dt, perturbation float64, steps int) float64 {
	if len(x0) == 0 || perturbation <= 0 || steps <= 0 || dt <= 0 {
		return 0
	}

	ref := physics.FromParticles(x0)
	ref.SetDt(dt)

	shifted := x0.Clone()
	shifted[0].X += perturbation
	pert := physics.FromParticles(shifted)
	pert.SetDt(dt)

	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		ref.Step()
		pert.Step()

		a, b := ref.Particles(), pert.Particles()
		sep := Separation(a, b)

		if sep > 0 {
			sumLog += math.Log(sep / perturbation)
			count++
		}

		// Renormalize to keep the perturbation in the linear regime
		if sep > 1.0 {
			scale := perturbation / sep
			for j := range b {
				b[j].X = a[j].X + (b[j].X-a[j].X)*scale
				b[j].Y = a[j].Y + (b[j].Y-a[j].Y)*scale
				b[j].VX = a[j].VX + (b[j].VX-a[j].VX)*scale
				b[j].VY = a[j].VY + (b[j].VY-a[j].VY)*scale
			}
			pert = physics.FromParticles(b)
			pert.SetDt(dt)
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

// Separation is the Euclidean distance between two snapshots in the
// combined position and velocity space.
func Separation(a, b dynamo.Snapshot) float64 {
	n := min(len(a), len(b))
	sum := 0.0
	for i := 0; i < n; i++ {
		dx := b[i].X - a[i].X
		dy := b[i].Y - a[i].Y
		dvx := b[i].VX - a[i].VX
		dvy := b[i].VY - a[i].VY
		sum += dx*dx + dy*dy + dvx*dvx + dvy*dvy
	}
	return math.Sqrt(sum)
}
