// Package engine provides the core domain types and rules for the space
// sync engine.
//
// The engine package implements:
//   - SpaceSnapshot, the immutable per-space descriptor (dimensions and
//     statically-placed elements) shared read-only by every session in a
//     room
//   - Movement validation: a pure accept/reject decision over the space
//     bounds and the single-step movement rule
//   - Spawn placement: a deterministic scan for a free cell when a
//     session joins a space
//
// Everything in this package is side-effect free and safe to call from
// any goroutine without locking. State ownership and serialization live
// in the room package; the engine only answers questions.
//
// Usage:
//
//	w, h, err := engine.ParseDimensions("100x200")
//	if err != nil {
//		log.Fatal(err)
//	}
//	snap := engine.NewSpaceSnapshot("space-1", w, h, elements)
//
//	if err := engine.ValidateMove(snap, from, to); err != nil {
//		// movement-rejected
//	}
package engine
