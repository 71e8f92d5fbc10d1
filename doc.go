// Package nbody is a Barnes-Hut N-body gravitational simulation.
//
// A cloud of bodies is evolved tick by tick: each step rebuilds a 2^D-ary
// spatial tree over the current positions, evaluates per-body acceleration
// against that tree under a multipole acceptance criterion, and integrates
// position and velocity with a kick-drift-kick scheme. The tree is rebuilt
// fresh every step and never retained between steps.
//
// Packages are organized by concern:
//
//	vector/    — the Vec constraint parameterizing every other package over
//	             a concrete 2D or 3D point type
//	body/      — body state and the store holding a simulation's bodies
//	bounds/    — bounding-cube computation over a body cloud
//	tree/      — the Barnes-Hut spatial tree and its builder
//	force/     — acceleration evaluation under the opening-angle criterion
//	integrate/ — the leapfrog-style position/velocity update
//	scheduler/ — fork-join and chunked-parallel-for primitives shared by
//	             bounds, tree, force and integrate
//	snapshot/  — tree-to-rectangle projection for external rendering
//	simconfig/ — validated, file- and flag-overridable run configuration
//	initcond/  — initial-condition generators (uniform cloud, two
//	             approaching squares, a rotating disk, colliding galaxies)
//	telemetry/ — Prometheus counters/gauges for the running simulation
//	sim/       — per-tick orchestration and the non-blocking snapshot mailbox
//	cmd/nbody/ — the CLI entry point
package nbody
