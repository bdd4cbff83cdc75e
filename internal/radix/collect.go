// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package radix

// Collect walks the tree exactly once, assigning a next-hop table index to
// every leaf and overwriting the leaf's NextHop field with that index. The
// traversal order is pre-order; spec.md §4.2 notes order is irrelevant
// except that it fixes the index assignment, and pre-order gives a stable,
// easy-to-reason-about index 0 (the leftmost leaf).
//
// Returns the dense next-hop table in assignment order, ready to be shared
// read-only by every subsequent lookup.
func Collect(root *Node) []Route {
	var nexthops []Route
	collect(root, &nexthops)
	return nexthops
}

func collect(n *Node, nexthops *[]Route) {
	if n == nil {
		return
	}

	if n.Route != nil {
		idx := uint32(len(*nexthops))
		*nexthops = append(*nexthops, *n.Route)
		n.Route.NextHop = idx
		return
	}

	collect(n.Left, nexthops)
	collect(n.Right, nexthops)
}
