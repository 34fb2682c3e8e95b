// Package game implements the core room state machine for Masquerade, a
// social-deduction party game for 4-10 players.
//
// The main type is Room, which owns all mutable state for one game room:
// the player roster, the current phase, alliance assignments, dance
// pairings, votes and tiebreak progress. Every external command maps to a
// method on Room that validates the caller and phase, mutates state, and
// returns. Rooms never touch the transport; callers are expected to
// project and broadcast state after each successful mutation (see
// Room.SnapshotFor).
//
// # Deterministic Testing
//
// All randomness flows through the *rand.Rand injected at construction,
// so seeded tests can assert exact shuffle and tiebreak outcomes:
//
//	r := game.NewRoom("TEST1", pool, randutil.New(42), logger)
//
// # Concurrency
//
// A Room is not safe for concurrent use. The server layer serializes
// commands per room so that each mutation (including its broadcast) runs
// to completion before the next is dispatched, which is the only
// consistency model the resolution logic assumes.
package game
