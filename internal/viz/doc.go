// Package viz renders a running particle simulation in the terminal.
//
// The [Model] is a Bubble Tea program: particles are drawn on a braille
// [Canvas] scaled to the 800x600 world, next to a stats panel with the
// particle 0 diagnostic and an energy history chart.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Tab   - Select parameter
//	Up/K  - Scale selected parameter by 1.05
//	Down/J- Scale selected parameter by 0.95
//	[ ]   - Step back/forward through recorded frames
//	T     - Cycle color themes
//	?     - Show help
package viz
