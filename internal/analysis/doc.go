// Package analysis provides tools for characterizing a particle run.
//
//   - [DivergenceRate]: largest Lyapunov exponent estimate from two
//     nearby particle systems
//   - [GeneratePhasePortrait]: one particle's trajectory in a chosen
//     pair of coordinates
//   - [RadialDistribution]: pair correlation g(r) of a snapshot
//   - [SpeedHistogram]: distribution of particle speeds
//   - [PowerSpectrum]: magnitude spectrum of a sampled series
//
// # Chaos Detection
//
// A positive divergence rate means nearby initial states separate
// exponentially:
//
//	lambda := analysis.DivergenceRate(snapshot, dt, 1e-6, 2000)
//	if lambda > 0 {
//	    // trajectories are chaotic
//	}
package analysis
