// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package lulea

import "github.com/pkg/errors"

// Sentinel errors for the build-time error taxonomy. All are fatal: a build
// that returns one of these has produced no usable CompiledTrie. Lookup
// never returns an error; a missing route is reported as a boolean, not an
// error (see Lookup).
var (
	// ErrAllocationExhausted is returned when the arena runs out of capacity
	// mid-build. Grounded on original_source/lulea_trie.c, which calloc's a
	// fixed block and has no recovery path if it runs out.
	ErrAllocationExhausted = errors.New("lulea: arena allocation exhausted")

	// ErrMalformedInput is returned for a prefix length outside 0..32, or a
	// /0 prefix handed directly to the radix stage instead of being
	// pre-split into two /1 insertions by the prefix source.
	ErrMalformedInput = errors.New("lulea: malformed prefix input")

	// ErrInvariantViolation is returned when level 3 encounters a bucket
	// holding more than one leaf: the radix stage should have already
	// resolved every overlap by the time the compiler reaches the last
	// stride.
	ErrInvariantViolation = errors.New("lulea: invariant violation")
)
