// Package engine implements the Philbrick analog computer kernel.
//
// The kernel models a patch-programmable analog computer: components
// exchange scalar signals through named ports, wired together by patch
// cables, and advanced synchronously in fixed time steps.
//
// ARCHITECTURE:
//
// Single-Writer Tick Loop:
// The kernel is strictly single-threaded. A simulation is a bounded,
// deterministic loop of ticks driven by the caller. This ensures:
// - Predictable component evaluation order (registration order)
// - Reproducible runs for a given circuit and step count
// - Simple reasoning about signal causality
//
// The canonical per-tick protocol is:
//
//	patchbay.Propagate() // move last tick's outputs across patch edges
//	machine.Step()       // every component recomputes from current inputs
//
// Propagate copies values produced by the previous tick's Step calls;
// Step then consumes current input-port values and rewrites outputs.
// Calling Step without an intervening Propagate leaves cross-component
// wiring stale by one tick. This is intentional: it keeps component
// evaluation order-independent within a tick. A chain of N series
// stages therefore needs at least N propagate/step cycles after an
// input change before the final output settles; that latency is part
// of the machine's contract, not a defect.
//
// The Machine's component list and the PatchBay's edge list are mutated
// only during circuit construction. No internal locking is provided;
// single-writer discipline is the caller's responsibility.
package engine
