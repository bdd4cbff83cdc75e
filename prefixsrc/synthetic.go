// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package prefixsrc

import (
	"math/rand/v2"

	"github.com/branemyr/lulea"
)

// Synthetic is a pseudorandom but reproducible Source, grounded on the
// teacher's internal/golden random-prefix generator. It exists so
// property tests and cmd/luleabench can exercise a build at BGP-table
// scale (spec.md scenario S6) without a real table dump on disk.
type Synthetic struct {
	byLength [33][]lulea.Prefix
	total    int
}

// lengthDistribution approximates the shape of a real BGP table: heavy on
// /24 and /16, a scattering of shorter aggregates, never a bare /0 (the
// default route below is injected directly as its two /1 halves).
var lengthDistribution = []int{8, 12, 16, 16, 20, 24, 24, 24, 24, 28}

// GenerateSynthetic produces a default route plus n further prefixes from a
// PRNG seeded deterministically from seed, so repeated calls with the same
// arguments produce byte-identical output.
func GenerateSynthetic(seed uint64, n int) *Synthetic {
	prng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	s := &Synthetic{}

	s.addOne(lulea.Prefix{Start: 0, Length: 1, NextHop: 0})
	s.addOne(lulea.Prefix{Start: 0x8000_0000, Length: 1, NextHop: 0})

	for i := 0; i < n; i++ {
		length := lengthDistribution[prng.IntN(len(lengthDistribution))]
		s.addOne(lulea.Prefix{
			Start:   randomStart(prng, length),
			Length:  uint8(length),
			NextHop: uint32(i + 1),
		})
	}

	return s
}

func randomStart(prng *rand.Rand, length int) uint32 {
	addr := uint32(prng.Uint64())
	mask := ^uint32(0)
	if length < 32 {
		mask <<= uint(32 - length)
	}
	return addr & mask
}

func (s *Synthetic) addOne(p lulea.Prefix) {
	s.byLength[p.Length] = append(s.byLength[p.Length], p)
	s.total++
}

func (s *Synthetic) ByLength(length int) []lulea.Prefix {
	if length < 0 || length > 32 {
		return nil
	}
	return s.byLength[length]
}

func (s *Synthetic) Total() int { return s.total }
