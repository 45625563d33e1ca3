// Package randutil derives reproducible random sources from int64 seeds.
package randutil

import (
	"encoding/binary"
	"io"
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// rand/v2's PCG wants two 64-bit words, both derived from the seed here so
// every caller gets the same sequence for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Resolve picks the seed for a run: the explicit one when given, otherwise
// the clock's current time. It returns the seed so it can be logged and
// replayed.
func Resolve(seed *int64, clock quartz.Clock) (int64, *rand.Rand) {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = clock.Now().UnixNano()
	}
	return s, New(s)
}

// Derive returns the seed for the n-th independent stream of a run.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

// Entropy returns a deterministic byte stream for seed, for consumers that
// want an io.Reader such as id generators.
func Entropy(seed int64) io.Reader {
	var key [32]byte
	u := uint64(seed)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], mix(u+uint64(i)*goldenRatio64))
	}
	return rand.NewChaCha8(key)
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
