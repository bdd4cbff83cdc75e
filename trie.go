// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package lulea

import (
	"github.com/branemyr/lulea/internal/arena"
	"github.com/branemyr/lulea/internal/codeword"
)

// CompiledTrie is the read-only, three-level codeword/bitmap/pointer
// structure produced by Builder.Build. It is backed by a single contiguous
// arena and safe for concurrent use by any number of Lookup callers, since
// nothing in this package mutates it after Build returns.
type CompiledTrie struct {
	arena *arena.Arena
}

// Size reports the number of bytes the compiled structure occupies in its
// backing arena.
func (t *CompiledTrie) Size() int {
	return len(t.arena.Bytes())
}

func (t *CompiledTrie) codewordAt(chunkOffset, idx uint32) codeword.Codeword {
	return codeword.Codeword(t.arena.Uint64(chunkOffset + idx*8))
}

func (t *CompiledTrie) pointerAt(chunkOffset, numCodewords, slot uint32) codeword.Pointer32 {
	return codeword.Pointer32(t.arena.Uint32(chunkOffset + numCodewords*8 + slot*4))
}

// resolveLevel decodes one level of the trie. cwIndex selects the bucket
// group's codeword; bucketInGroup (0..15) selects the leaf's bucket within
// that group. It returns either a resolved next-hop index (isChild false)
// or the arena offset of a child chunk to descend into (isChild true).
func (t *CompiledTrie) resolveLevel(chunkOffset, numCodewords, cwIndex uint32, bucketInGroup uint) (nextHop, childOffset uint32, isChild bool) {
	cw := t.codewordAt(chunkOffset, cwIndex)
	if cw.IsNextHop() {
		return cw.NextHop(), 0, false
	}

	rank := cw.Mask().Rank0(bucketInGroup)
	ptr := t.pointerAt(chunkOffset, numCodewords, cw.PointerOffset()+uint32(rank))
	if ptr.IsChild() {
		return 0, ptr.ChildOffset(), true
	}
	return ptr.NextHop(), 0, false
}

// resolve runs the full three-level decode of addr (host byte order),
// mirroring LuleaTrieLookup in the original source. ok is false only in the
// build-invariant-violation case of a level-3 pointer claiming to point to a
// further level; an address no input prefix covers resolves to a leaf
// carrying NoNextHop, which Lookup reports as a miss.
func (t *CompiledTrie) resolve(addr uint32) (nextHop uint32, ok bool) {
	nh, childOffset, isChild := t.resolveLevel(0, level1Codewords, addr>>20, uint(addr>>16)&0xF)
	if !isChild {
		return nh, true
	}

	nh, childOffset, isChild = t.resolveLevel(childOffset, chunkCodewords, (addr>>12)&0xF, uint(addr>>8)&0xF)
	if !isChild {
		return nh, true
	}

	nh, _, isChild = t.resolveLevel(childOffset, chunkCodewords, (addr>>4)&0xF, uint(addr)&0xF)
	if isChild {
		return 0, false
	}
	return nh, true
}
