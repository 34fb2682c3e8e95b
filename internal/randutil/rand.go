// Package randutil derives the deterministic rng each room plays with.
// Every shuffle, deal and tiebreak coin flip in a room flows from one
// *rand.Rand built here, so a fixed base seed replays whole games.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. rand/v2's
// PCG wants two well-spread 64-bit words; mix spreads low-entropy seeds
// (small integers, wall-clock nanos) across the whole word.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForRoom derives the rng for the seq-th room created from a base seed.
// Consecutive rooms get uncorrelated streams; replaying the same creation
// order under the same base reproduces every room's game exactly.
func ForRoom(base, seq int64) *rand.Rand {
	return New(base + seq)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
