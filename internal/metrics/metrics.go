package metrics

import (
	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/physics"
)

// Default returns the metric set attached to headless runs.
func Default(sys dynamo.Hamiltonian) []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(sys),
		NewMaxSpeed(),
		NewWallContact(physics.WorldWidth, physics.WorldHeight),
	}
}
