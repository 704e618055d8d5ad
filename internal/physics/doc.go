// Package physics implements the Lennard-Jones particle kernel.
//
// A [Simulation] owns a fixed population of point masses and advances
// them one dt per [Simulation.Step]:
//
//   - pairwise 12-6 force over every unordered pair (i<j), applied to
//     velocities in place as the scan proceeds
//   - explicit Euler position update
//   - damped reflection against the fixed 800x600 world
//
// The kernel performs no I/O. The per-step diagnostic for particle 0 is
// handed to any [dynamo.Observer] registered with [WithObserver].
//
//	s := physics.New(100, 800, 600, physics.WithSeed(42))
//	s.Step()
//	snapshot := s.Particles()
//
// Simulation implements [dynamo.System], [dynamo.Hamiltonian] and
// [dynamo.Configurable].
package physics
