// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

// Package prefixsrc supplies the lulea package with staged IPv4 prefixes:
// the external collaborator spec.md leaves unspecified beyond its
// interface. Two implementations are provided: ReadTableDump, a minimal
// text-form stand-in for parsing a real BGP MRT/TABLE_DUMP_V2 file, and
// GenerateSynthetic, a pseudorandom generator for benchmarking and
// property tests at BGP-table scale.
package prefixsrc

import "github.com/branemyr/lulea"

// Source exposes a staged set of prefixes grouped by length, ready to be
// driven into a lulea.Builder. A conforming Source never reports a length
// of 0: a /0 route is split into the covering 0.0.0.0/1 and 128.0.0.0/1
// halves before it is exposed, so callers never need their own special
// case for it.
type Source interface {
	// ByLength returns the prefixes of the given length, 0..32. Length 0
	// always returns nil.
	ByLength(length int) []lulea.Prefix
	// Total returns the number of prefixes across all lengths.
	Total() int
}

// LoadInto drains every prefix in src into b, longest length first,
// matching the pipeline order spec.md §4.1 requires of the radix stage.
func LoadInto(b *lulea.Builder, src Source) error {
	for length := 32; length >= 1; length-- {
		for _, p := range src.ByLength(length) {
			if err := b.Insert(p); err != nil {
				return err
			}
		}
	}
	return nil
}
