// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package radix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ipv4(a, b, c, d byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
}

func insertCIDR(t *Tree, start uint32, length int, nh uint32) {
	t.Insert(start, length, nh)
}

// S1: a pre-split /0 (two /1 halves) matches every address with the same
// next hop.
func TestTreeSingleDefault(t *testing.T) {
	tree := NewTree()
	insertCIDR(tree, ipv4(0, 0, 0, 0), 1, 1)
	insertCIDR(tree, ipv4(128, 0, 0, 0), 1, 1)

	for _, addr := range []uint32{0, ipv4(1, 2, 3, 4), ipv4(255, 255, 255, 255)} {
		route, ok := tree.Lookup(addr)
		require.True(t, ok)
		require.Equal(t, uint32(1), route.NextHop)
	}
}

// S2: default route plus one specific /8.
func TestTreeDefaultPlusSpecific(t *testing.T) {
	tree := NewTree()
	insertCIDR(tree, ipv4(10, 0, 0, 0), 8, 100) // longest first
	insertCIDR(tree, ipv4(0, 0, 0, 0), 1, 1)
	insertCIDR(tree, ipv4(128, 0, 0, 0), 1, 1)

	cases := []struct {
		addr uint32
		nh   uint32
	}{
		{ipv4(10, 5, 5, 5), 100},
		{ipv4(11, 0, 0, 1), 1},
		{ipv4(192, 168, 0, 1), 1},
		{ipv4(9, 255, 255, 255), 1},
	}
	for _, c := range cases {
		route, ok := tree.Lookup(c.addr)
		require.True(t, ok)
		require.Equal(t, c.nh, route.NextHop)
	}
}

// S3: two overlapping specifics, /8 and a /16 inside it.
func TestTreeOverlappingSpecifics(t *testing.T) {
	tree := NewTree()
	insertCIDR(tree, ipv4(10, 1, 0, 0), 16, 200) // longest first
	insertCIDR(tree, ipv4(10, 0, 0, 0), 8, 100)

	cases := []struct {
		addr  uint32
		nh    uint32
		found bool
	}{
		{ipv4(10, 1, 0, 0), 200, true},
		{ipv4(10, 1, 255, 255), 200, true},
		{ipv4(10, 0, 0, 1), 100, true},
		{ipv4(10, 2, 0, 0), 100, true},
		{ipv4(11, 0, 0, 0), 0, false},
	}
	for _, c := range cases {
		route, ok := tree.Lookup(c.addr)
		require.Equal(t, c.found, ok)
		if ok {
			require.Equal(t, c.nh, route.NextHop)
		}
	}
}

// Splitting a shorter prefix around a narrower one already installed must
// not lose coverage at the edges of the split.
func TestTreeSplitOnCollision(t *testing.T) {
	tree := NewTree()
	insertCIDR(tree, ipv4(192, 0, 2, 128), 25, 2) // longest first
	insertCIDR(tree, ipv4(192, 0, 2, 0), 24, 1)

	route, ok := tree.Lookup(ipv4(192, 0, 2, 0))
	require.True(t, ok)
	require.Equal(t, uint32(1), route.NextHop)

	route, ok = tree.Lookup(ipv4(192, 0, 2, 127))
	require.True(t, ok)
	require.Equal(t, uint32(1), route.NextHop)

	route, ok = tree.Lookup(ipv4(192, 0, 2, 128))
	require.True(t, ok)
	require.Equal(t, uint32(2), route.NextHop)

	route, ok = tree.Lookup(ipv4(192, 0, 2, 255))
	require.True(t, ok)
	require.Equal(t, uint32(2), route.NextHop)
}

func TestTreeInsertRejectsZeroLength(t *testing.T) {
	tree := NewTree()
	require.Panics(t, func() {
		tree.Insert(0, 0, 1)
	})
}

func TestCollectAssignsIndicesInVisitOrder(t *testing.T) {
	tree := NewTree()
	insertCIDR(tree, ipv4(10, 1, 0, 0), 16, 7)
	insertCIDR(tree, ipv4(10, 0, 0, 0), 8, 3)

	nexthops := Collect(tree.Root())
	require.Len(t, nexthops, 9)

	for i, rec := range nexthops {
		route, ok := tree.Lookup(rec.Start)
		require.True(t, ok)
		require.Equal(t, uint32(i), route.NextHop, "leaf's next-hop field must be overwritten with its table index")
	}
}
