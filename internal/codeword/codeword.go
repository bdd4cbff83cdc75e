// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

// Package codeword implements the bit-level primitives of the Luleå
// three-level encoding: the 64-bit codeword, the tagged 32-bit pointer, and
// the 16-bit bucket-group bitmask with its rank operation. These are small
// typed wrappers per spec.md §9's "Pointer tagging" design note, grounded on
// original_source/lulea_trie.h's CODEWORD/CODEWORD_NEXTHOP/POINTERTYPE_NEXTLEVEL
// bit layout.
package codeword

// Codeword summarizes one bucket group: either a direct next-hop index, or a
// 16-bit bitmask plus an offset into the chunk's pointer array.
type Codeword uint64

// codewordNextHop is bit 63 of the codeword: CODEWORD_NEXTHOP in the C
// source. When set, the low 32 bits of the codeword hold a next-hop index
// directly and the codeword carries no bitmask/pointer.
const codewordNextHop = uint64(1) << 63

// NextHopCodeword builds a codeword that directly encodes next-hop index nh.
func NextHopCodeword(nh uint32) Codeword {
	return Codeword(codewordNextHop | uint64(nh))
}

// BitmaskCodeword builds a codeword whose bucket group has more than one
// occupied bucket: mask is the 16-bit occupancy bitmask and pointerOffset is
// the index of the group's first pointer within the chunk's pointer array.
func BitmaskCodeword(mask Mask16, pointerOffset uint32) Codeword {
	return Codeword(uint64(mask)<<32 | uint64(pointerOffset))
}

// IsNextHop reports whether this codeword encodes a direct next-hop index.
func (c Codeword) IsNextHop() bool {
	return uint64(c)&codewordNextHop != 0
}

// NextHop returns the directly encoded next-hop index. Only meaningful when
// IsNextHop is true.
func (c Codeword) NextHop() uint32 {
	return uint32(uint64(c) & 0xFFFF_FFFF)
}

// Mask returns the bucket-group occupancy bitmask. Only meaningful when
// IsNextHop is false.
func (c Codeword) Mask() Mask16 {
	return Mask16(uint64(c) >> 32 & 0xFFFF)
}

// PointerOffset returns the offset of this group's first pointer within the
// chunk's pointer array. Only meaningful when IsNextHop is false.
func (c Codeword) PointerOffset() uint32 {
	return uint32(uint64(c) & 0xFFFF_FFFF)
}

// Pointer32 is a tagged 32-bit slot in a chunk's pointer array: either a
// next-hop index (top bit clear) or a byte offset of a child chunk header
// into the arena (top bit set). POINTERTYPE_NEXTLEVEL in the C source.
type Pointer32 uint32

// pointerNextLevel is the tag bit, 1<<31.
const pointerNextLevel = uint32(1) << 31

// NextHopPointer builds a pointer that resolves directly to next-hop index nh.
func NextHopPointer(nh uint32) Pointer32 {
	return Pointer32(nh &^ pointerNextLevel)
}

// ChildPointer builds a pointer to a child chunk at byte offset off in the
// arena.
func ChildPointer(off uint32) Pointer32 {
	return Pointer32(pointerNextLevel | (off &^ pointerNextLevel))
}

// IsChild reports whether this pointer refers to a child chunk rather than
// a next-hop index directly.
func (p Pointer32) IsChild() bool {
	return uint32(p)&pointerNextLevel != 0
}

// NextHop returns the directly encoded next-hop index. Only meaningful when
// IsChild is false.
func (p Pointer32) NextHop() uint32 {
	return uint32(p) &^ pointerNextLevel
}

// ChildOffset returns the byte offset of the child chunk in the arena. Only
// meaningful when IsChild is true.
func (p Pointer32) ChildOffset() uint32 {
	return uint32(p) &^ pointerNextLevel
}
