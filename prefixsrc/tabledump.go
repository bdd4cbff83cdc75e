// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package prefixsrc

import (
	"bufio"
	"io"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/branemyr/lulea"
)

// tableDump is a Source populated from a line-oriented text dump: one
// route per line, "prefix nexthop", e.g. "10.0.0.0/8 100". Blank lines and
// lines starting with '#' are skipped. This is a deliberately thin stand-in
// for a real BGP MRT/TABLE_DUMP_V2 reader, which spec.md places out of
// scope for the compiled structure itself.
type tableDump struct {
	byLength [33][]lulea.Prefix
	total    int
}

// ReadTableDump parses r into a Source, splitting any /0 route into its
// two covering /1 halves as it is read.
func ReadTableDump(r io.Reader) (Source, error) {
	td := &tableDump{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Errorf("tabledump: line %d: expected \"prefix nexthop\", got %q", lineNo, line)
		}

		pfx, err := netip.ParsePrefix(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "tabledump: line %d", lineNo)
		}
		if !pfx.Addr().Is4() {
			return nil, errors.Errorf("tabledump: line %d: %s is not IPv4", lineNo, fields[0])
		}

		nh, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "tabledump: line %d: next hop", lineNo)
		}

		td.add(pfx, uint32(nh))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "tabledump: read")
	}

	return td, nil
}

func (td *tableDump) add(pfx netip.Prefix, nh uint32) {
	pfx = pfx.Masked()
	length := pfx.Bits()

	if length == 0 {
		td.addOne(lulea.Prefix{Start: 0, Length: 1, NextHop: nh})
		td.addOne(lulea.Prefix{Start: 0x8000_0000, Length: 1, NextHop: nh})
		return
	}

	td.addOne(lulea.Prefix{Start: addrToUint32(pfx.Addr()), Length: uint8(length), NextHop: nh})
}

func (td *tableDump) addOne(p lulea.Prefix) {
	td.byLength[p.Length] = append(td.byLength[p.Length], p)
	td.total++
}

func (td *tableDump) ByLength(length int) []lulea.Prefix {
	if length < 0 || length > 32 {
		return nil
	}
	return td.byLength[length]
}

func (td *tableDump) Total() int { return td.total }

func addrToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
