// Package dynamo provides the driver primitives shared by the particle
// kernel and its adapters.
//
// The package defines the data that crosses the kernel boundary and the
// scheduler that advances a system:
//
//   - [Particle], [Snapshot]: transferable particle state
//   - [Diagnostic], [Observer]: per-step record for particle 0
//   - [System]: a steppable particle population with dt/surface tension
//   - [Metric]: aggregate observations over a run
//   - [Simulator]: external scheduler that steps a System
//
// # Example
//
//	s := physics.New(100, 800, 600, physics.WithSeed(42))
//	result, _ := dynamo.New(s).Run(ctx, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Systems are NOT thread-safe. Exactly one Step may be outstanding at a
// time; the Simulator is the single writer for the system it drives.
package dynamo
