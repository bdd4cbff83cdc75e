// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package lulea

// Prefix is one input route: an IPv4 address in host byte order with the
// low 32-length bits clear, a length in 0..32, and a caller-chosen next-hop
// identifier that is opaque to this package.
type Prefix struct {
	Start   uint32
	Length  uint8
	NextHop uint32
}

// RouteRecord is the payload stored once per disjoint radix leaf: the
// sub-range of address space it covers and the caller's next-hop
// identifier for that range. NextHopTable is a dense slice of these,
// indexed by the next-hop index the compiled trie encodes.
type RouteRecord struct {
	Start   uint32
	Size    uint32
	NextHop uint32
}

// NextHopTable is the dense, read-only table a successful Lookup indexes
// into. It is produced once by Builder.Build and shared by every
// subsequent lookup without synchronization.
type NextHopTable []RouteRecord

// NoNextHop is the reserved next-hop identifier meaning "no route",
// matching original_source/routing_table_split.h's NO_NEXT_HOP (there
// UINT32_MAX). Builder.Build uses it to fill the gaps a caller's prefixes
// leave uncovered; Lookup reports a miss for any RouteRecord carrying it.
// Callers should not use it as a real next-hop identifier.
const NoNextHop = ^uint32(0)
