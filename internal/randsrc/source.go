// Package randsrc provides per-worker uniform integer generators.
//
// Every Source owns its own PCG state, so workers never contend on a shared
// generator. Seeds mix OS entropy, the current clock reading and a caller
// supplied hint, which keeps sources built at the same instant (or with the
// same hint) uncorrelated. Sequences are not reproducible across runs.
package randsrc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ErrInvalidRange is returned when the lower bound exceeds the upper bound.
var ErrInvalidRange = errors.New("randsrc: low must not exceed high")

// goldenGamma is the 64-bit golden ratio increment used by SplitMix64.
const goldenGamma = 0x9e3779b97f4a7c15

// Source produces uniformly distributed integers. A Source is not safe for
// concurrent use; each worker builds its own.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded from OS entropy, the clock and seedHint.
func New(seedHint uint64) *Source {
	var buf [16]byte
	fillEntropy(buf[:])
	now := uint64(time.Now().UnixNano())
	e0 := binary.LittleEndian.Uint64(buf[:8])
	e1 := binary.LittleEndian.Uint64(buf[8:])

	seed1 := mix(e0 ^ now ^ mix(seedHint+goldenGamma))
	seed2 := mix(e1 ^ (now ^ 0x9e3779b9) ^ seedHint)
	return NewSeeded(seed1, seed2)
}

// NewSeeded returns a deterministic Source. Intended for tests.
func NewSeeded(seed1, seed2 uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// IntN returns a uniformly distributed value in the closed range [low, high].
func (s *Source) IntN(low, high int) (int, error) {
	if low > high {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, low, high)
	}
	return s.draw(low, high), nil
}

// MustIntN is like IntN but panics on an invalid range. Callers use it once
// the bounds have been validated.
func (s *Source) MustIntN(low, high int) int {
	v, err := s.IntN(low, high)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *Source) draw(low, high int) int {
	// Width of the range minus one, computed in unsigned space so that
	// [math.MinInt, math.MaxInt] does not overflow.
	span := uint64(high) - uint64(low)
	if span == ^uint64(0) {
		return int(s.rng.Uint64())
	}
	return int(uint64(low) + s.rng.Uint64N(span+1))
}

// mix is the SplitMix64 finalizer.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
