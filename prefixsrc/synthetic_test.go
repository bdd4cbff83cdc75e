// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package prefixsrc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSyntheticIsDeterministic(t *testing.T) {
	a := GenerateSynthetic(42, 500)
	b := GenerateSynthetic(42, 500)

	require.Equal(t, a.Total(), b.Total())
	for length := 1; length <= 32; length++ {
		require.Equal(t, a.ByLength(length), b.ByLength(length))
	}
}

func TestGenerateSyntheticDifferentSeedsDiverge(t *testing.T) {
	a := GenerateSynthetic(1, 500)
	b := GenerateSynthetic(2, 500)

	require.NotEqual(t, a.ByLength(24), b.ByLength(24), "different seeds should not produce identical /24 sets")
}

func TestGenerateSyntheticIncludesDefaultRoute(t *testing.T) {
	s := GenerateSynthetic(7, 10)
	ones := s.ByLength(1)
	require.Len(t, ones, 2)
}

func TestGenerateSyntheticPrefixesAreMasked(t *testing.T) {
	s := GenerateSynthetic(99, 2000)
	for length := 1; length <= 32; length++ {
		for _, p := range s.ByLength(length) {
			mask := ^uint32(0)
			if length < 32 {
				mask <<= uint(32 - length)
			}
			require.Equal(t, p.Start&mask, p.Start, "prefix of length %d must have low bits clear", length)
		}
	}
}
