// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

// Package lulea compiles a set of IPv4 prefixes into a compressed,
// pointer-tagged three-level trie using the Luleå algorithm, and answers
// longest-prefix-match lookups against it in at most three levels, each
// reading one codeword and at most one pointer.
//
// A Builder stages prefixes into a binary radix tree (package
// internal/radix), which normalizes overlapping prefixes into a disjoint
// cover of the address space. Build then walks that tree, bucketing leaves
// by successive 16/8/8-bit strides of the address and encoding each bucket
// group as a 64-bit codeword (package internal/codeword) backed by a
// contiguous byte arena (package internal/arena). The result, a
// CompiledTrie and its NextHopTable, is read-only and safe for concurrent
// Lookup calls.
//
// Package prefixsrc supplies prefixes from a BGP table dump or a synthetic
// generator; cmd/luleabench drives a build and an interactive or
// benchmarked lookup loop against it.
package lulea
