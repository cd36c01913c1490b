// Package rng implements the seeded generator every game draws from.
//
// A game owns its generator as a plain value; nothing here is global, so two
// grids never share a stream and a saved state restores bit for bit.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
)

const golden = 0x9e3779b97f4a7c15

// SplitMix64 is a 64-bit state generator with an avalanche finalizer.
type SplitMix64 struct {
	state uint64
}

func New(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// State returns the raw running state.
func (s *SplitMix64) State() uint64 {
	return s.state
}

func (s *SplitMix64) Uint64() uint64 {
	s.state += golden
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a float in [0, 1) built from the top 53 bits of a draw.
func (s *SplitMix64) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// IntN returns an int in [0, bound). Draws landing in the incomplete last
// bucket of the uint64 range are rejected so every result is equally likely.
// Bounds of one or less return 0 without drawing.
func (s *SplitMix64) IntN(bound int) int {
	if bound <= 1 {
		return 0
	}
	n := uint64(bound)
	for {
		x := s.Uint64()
		r := x % n
		if x-r <= math.MaxUint64-(n-1) {
			return int(r)
		}
	}
}

// Range returns a float in [lo, hi).
func (s *SplitMix64) Range(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// [SplitMix64] implements [encoding.BinaryMarshaler]
func (s *SplitMix64) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, s.state), nil
}

func (s *SplitMix64) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return fmt.Errorf("rng: invalid state length %d", len(data))
	}
	s.state = binary.BigEndian.Uint64(data)
	return nil
}

// SeedFromString maps free-form seed text onto a 64-bit seed.
func SeedFromString(text string) uint64 {
	h := sha256.Sum256([]byte(text))
	return binary.LittleEndian.Uint64(h[:8])
}
