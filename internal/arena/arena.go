// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

// Package arena implements the bump-allocated byte buffer that backs a
// compiled Luleå trie: a single contiguous []byte, chunks referenced by
// their byte offset from the base, never resized, never moved.
//
// Grounded on original_source/lulea_trie.c's BuildLuleaTrie, which calloc's
// a fixed 16 MiB block up front and advances pchCurrentPos through it.
package arena

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// DefaultSize is the default arena capacity: spec.md §7/§9 document 16 MiB
// as sufficient for a full 2020-era BGP IPv4 table.
const DefaultSize = 16 * 1024 * 1024

// ErrExhausted is returned (wrapped with call-site context) when a bump
// allocation would exceed the arena's fixed capacity.
var ErrExhausted = errors.New("arena: allocation exhausted")

// Arena is a fixed-capacity bump allocator. The zero value is not usable;
// construct with New.
type Arena struct {
	buf  []byte
	bump uint32
}

// New allocates an arena of the given capacity in bytes.
func New(size int) *Arena {
	return &Arena{buf: make([]byte, size)}
}

// Offset returns the current bump cursor: the byte offset at which the next
// allocation will begin.
func (a *Arena) Offset() uint32 {
	return a.bump
}

// Alloc bumps the cursor forward by n bytes and returns the byte offset of
// the start of that region. The region is zero-filled (make([]byte, ...)
// starts zeroed and Alloc never reuses bytes).
func (a *Arena) Alloc(n int) (uint32, error) {
	if a.bump+uint32(n) > uint32(len(a.buf)) || n < 0 {
		return 0, errors.Wrapf(ErrExhausted, "need %d bytes at offset %d, capacity %d", n, a.bump, len(a.buf))
	}
	off := a.bump
	a.bump += uint32(n)
	return off, nil
}

// Bytes returns the live prefix of the arena, up to the bump cursor. The
// arena must not be mutated through this slice after Bytes is read by a
// lookup, but nothing in this package prevents that; CompiledTrie exposes
// this read-only once construction finishes (spec.md §5).
func (a *Arena) Bytes() []byte {
	return a.buf[:a.bump]
}

// PutUint64 writes v at byte offset off, little-endian, matching the host
// byte order the C reference assumed when it cast char* to struct pointers.
func (a *Arena) PutUint64(off uint32, v uint64) {
	binary.LittleEndian.PutUint64(a.buf[off:], v)
}

// Uint64 reads a uint64 at byte offset off.
func (a *Arena) Uint64(off uint32) uint64 {
	return binary.LittleEndian.Uint64(a.buf[off:])
}

// PutUint32 writes v at byte offset off, little-endian.
func (a *Arena) PutUint32(off uint32, v uint32) {
	binary.LittleEndian.PutUint32(a.buf[off:], v)
}

// Uint32 reads a uint32 at byte offset off.
func (a *Arena) Uint32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(a.buf[off:])
}
