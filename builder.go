// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package lulea

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/branemyr/lulea/internal/arena"
	"github.com/branemyr/lulea/internal/codeword"
	"github.com/branemyr/lulea/internal/radix"
)

// level1Codewords and chunkCodewords fix the three strides of the Luleå
// encoding: 16 bits at level 1 (4096 groups of 16 buckets = 65536 buckets),
// then 8 bits at level 2 and level 3 (16 groups of 16 buckets = 256 buckets
// each).
const (
	level1Codewords = 4096
	chunkCodewords  = 16
)

// Builder accumulates prefixes and compiles them into a CompiledTrie and its
// NextHopTable. The zero value is not usable; construct with NewBuilder.
type Builder struct {
	arena   *arena.Arena
	tree    *radix.Tree
	log     *logrus.Entry
	pending []Prefix
}

// Option configures a Builder constructed by NewBuilder.
type Option func(*Builder)

// WithArenaSize overrides the default arena.DefaultSize capacity. Use this
// for tables expected to exceed a full 2020-era BGP dump.
func WithArenaSize(size int) Option {
	return func(b *Builder) { b.arena = arena.New(size) }
}

// WithLogger attaches a logger for build-time progress reporting. Defaults
// to a bare entry on the standard logrus logger.
func WithLogger(log *logrus.Entry) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder returns a Builder ready to accept prefixes via Insert.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		arena: arena.New(arena.DefaultSize),
		tree:  radix.NewTree(),
		log:   logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Insert stages one prefix for the next Build. Prefixes may be inserted in
// any order; Build sorts them longest-first before driving them into the
// radix tree, per the ordering contract of internal/radix.
//
// A /0 prefix is rejected: callers wanting "match everything" semantics
// must pre-split it into two /1 prefixes over the same next hop, the way
// package prefixsrc does, rather than relying on this package to special-
// case it the way read_bgp.c did (and double-inserted as a result).
func (b *Builder) Insert(p Prefix) error {
	if p.Length > 32 {
		return errors.Wrapf(ErrMalformedInput, "prefix length %d out of range 0..32", p.Length)
	}
	if p.Length == 0 {
		return errors.Wrap(ErrMalformedInput, "/0 prefix must be pre-split into two /1 prefixes")
	}
	b.pending = append(b.pending, p)
	return nil
}

// compileLeaf is one disjoint radix leaf as seen by the Luleå compiler: its
// canonical bucket address and the index it was assigned into the
// NextHopTable being built. It deliberately does not carry the caller's
// original next-hop identifier; that lives only in the NextHopTable.
type compileLeaf struct {
	start   uint32
	nextHop uint32
}

// buildTask is a deferred level-2 or level-3 chunk construction, queued so
// that the parent chunk's pointer array is written contiguously before any
// child chunk is emitted into the arena (spec.md §4.3.3).
type buildTask struct {
	parentOffset       uint32
	parentNumCodewords uint32
	pointerSlot        uint32
	leaves             []compileLeaf
	level              int
}

// Build drains all staged prefixes into the radix tree, assigns next-hop
// indices, and compiles the three-level codeword/bitmap/pointer structure
// into the builder's arena. The Builder is left in a usable state for
// inspection but should not be reused for a second Build.
func (b *Builder) Build() (*CompiledTrie, NextHopTable, error) {
	// The compiled structure's left-sharing codeword (spec.md §4.3.2) can
	// only express "covered by the nearest route to the left"; it has no
	// way to represent a gap that starts and ends without any leaf at all.
	// A lowest-priority synthetic default, split by the radix stage around
	// every real route exactly like a caller-supplied default would be,
	// gives every such gap its own leaf and NoNextHop value so a lookup
	// past the edge of the real routes reports a miss instead of silently
	// inheriting whatever route happens to lie to its left. Appended after
	// all real inserts so a caller-supplied /1 pair of its own wins the
	// same radix slot (stable sort preserves insertion order among equal
	// lengths, and the first of two same-length inserts at a slot claims
	// it).
	pending := append(append([]Prefix(nil), b.pending...),
		Prefix{Start: 0, Length: 1, NextHop: NoNextHop},
		Prefix{Start: 0x8000_0000, Length: 1, NextHop: NoNextHop},
	)
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Length > pending[j].Length
	})
	for _, p := range pending {
		b.tree.Insert(p.Start, int(p.Length), p.NextHop)
	}

	leaves := radix.Collect(b.tree.Root())
	b.log.WithField("leaves", len(leaves)).Debug("radix stage complete")

	table := make(NextHopTable, len(leaves))
	compiled := make([]compileLeaf, len(leaves))
	for i, l := range leaves {
		table[i] = RouteRecord{Start: l.Start, Size: l.Size, NextHop: l.NextHop}
		compiled[i] = compileLeaf{start: l.Start, nextHop: uint32(i)}
	}

	if _, err := b.arena.Alloc(level1Codewords * 8); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocationExhausted, err)
	}

	var queue []buildTask
	enqueue := func(level int, leaves []compileLeaf, parentOffset, parentNumCodewords, pointerSlot uint32) {
		queue = append(queue, buildTask{
			parentOffset:       parentOffset,
			parentNumCodewords: parentNumCodewords,
			pointerSlot:        pointerSlot,
			leaves:             leaves,
			level:              level,
		})
	}

	if err := b.encodeChunk(0, level1Codewords, 1, compiled, enqueue); err != nil {
		return nil, nil, err
	}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		childOffset, err := b.arena.Alloc(chunkCodewords * 8)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrAllocationExhausted, err)
		}

		patchOffset := t.parentOffset + t.parentNumCodewords*8 + t.pointerSlot*4
		b.arena.PutUint32(patchOffset, uint32(codeword.ChildPointer(childOffset)))

		b.log.WithFields(logrus.Fields{
			"level":  t.level,
			"offset": childOffset,
			"leaves": len(t.leaves),
		}).Trace("building chunk")

		if err := b.encodeChunk(childOffset, chunkCodewords, t.level, t.leaves, enqueue); err != nil {
			return nil, nil, err
		}
	}

	return &CompiledTrie{arena: b.arena}, table, nil
}

// encodeChunk implements stage 2 (and the stage-3 task scheduling) for one
// chunk: it buckets leaves by the stride appropriate to level, then walks
// the numCodewords bucket groups left to right, writing one codeword per
// group and, for groups with more than one occupied bucket, the group's
// pointers.
func (b *Builder) encodeChunk(chunkOffset, numCodewords uint32, level int, leaves []compileLeaf, enqueue func(level int, leaves []compileLeaf, parentOffset, parentNumCodewords, pointerSlot uint32)) error {
	buckets := bucketLeaves(leaves, level, numCodewords*16)

	var lastNextHop uint32
	var pointerCursor uint32

	for g := uint32(0); g < numCodewords; g++ {
		group := buckets[g*16 : g*16+16]

		nonEmpty := 0
		firstOccupied := -1
		for j, bucket := range group {
			if len(bucket) > 0 {
				nonEmpty++
				if firstOccupied < 0 {
					firstOccupied = j
				}
			}
		}

		cwOffset := chunkOffset + g*8

		switch nonEmpty {
		case 0:
			b.arena.PutUint64(cwOffset, uint64(codeword.NextHopCodeword(lastNextHop)))

		case 1:
			nh := group[firstOccupied][0].nextHop
			b.arena.PutUint64(cwOffset, uint64(codeword.NextHopCodeword(nh)))
			lastNextHop = nh

		default:
			var mask codeword.Mask16
			groupPointerBase := pointerCursor

			for j, bucket := range group {
				if len(bucket) == 0 {
					continue
				}
				mask.Set(uint(j))

				ptrOffset, err := b.arena.Alloc(4)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrAllocationExhausted, err)
				}
				slot := pointerCursor
				pointerCursor++

				switch {
				case len(bucket) == 1:
					b.arena.PutUint32(ptrOffset, uint32(codeword.NextHopPointer(bucket[0].nextHop)))
				case level == 3:
					return errors.Wrapf(ErrInvariantViolation, "level 3 bucket %d holds %d leaves", g*16+uint32(j), len(bucket))
				default:
					b.arena.PutUint32(ptrOffset, uint32(codeword.ChildPointer(0)))
					enqueue(level+1, bucket, chunkOffset, numCodewords, slot)
				}
			}

			b.arena.PutUint64(cwOffset, uint64(codeword.BitmaskCodeword(mask, groupPointerBase)))
		}
	}

	return nil
}

// bucketLeaves partitions leaves into totalBuckets ordered slices, each
// holding the leaves whose canonical bucket index at this level matches the
// slice's position. Leaves arrive in ascending-address order (radix.Collect
// visits left children before right), which bucketLeaves preserves, so the
// first element of a bucket's slice is always its lowest address.
func bucketLeaves(leaves []compileLeaf, level int, totalBuckets uint32) [][]compileLeaf {
	buckets := make([][]compileLeaf, totalBuckets)
	for _, l := range leaves {
		idx := bucketIndex(l.start, level)
		buckets[idx] = append(buckets[idx], l)
	}
	return buckets
}

// bucketIndex computes the bucket a leaf's start address falls into at the
// given level: the top 16 bits at level 1, the next 8 bits at level 2, the
// low 8 bits at level 3.
func bucketIndex(start uint32, level int) uint32 {
	switch level {
	case 1:
		return start >> 16
	case 2:
		return (start >> 8) & 0xFF
	default:
		return start & 0xFF
	}
}
