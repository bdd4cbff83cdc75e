// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

// Command luleabench builds a CompiledTrie from a BGP table dump (or, with
// -synthetic, a generated table), benchmarks random lookups against it and
// then, with -query, drops into an interactive query loop, mirroring
// original_source/routing_table_split.c's main/Benchmark/QueryTree.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/branemyr/lulea"
	"github.com/branemyr/lulea/prefixsrc"
)

func main() {
	var (
		synthetic   = flag.Bool("synthetic", false, "build from a generated table instead of a BGP dump file")
		syntheticN  = flag.Int("n", 500_000, "number of synthetic prefixes to generate")
		seed        = flag.Uint64("seed", 100, "synthetic generator / benchmark seed")
		benchmarkN  = flag.Int("bench", 100_000, "number of lookups to time")
		interactive = flag.Bool("query", false, "drop into an interactive query loop after building")
	)
	flag.Parse()

	log := logrus.NewEntry(logrus.StandardLogger())

	var src prefixsrc.Source
	switch {
	case *synthetic:
		log.WithField("n", *syntheticN).Info("generating synthetic table")
		src = prefixsrc.GenerateSynthetic(*seed, *syntheticN)
	case flag.NArg() == 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.WithError(err).Fatal("open bgp dump")
		}
		defer f.Close()
		log.WithField("file", flag.Arg(0)).Info("reading bgp dump")
		src, err = prefixsrc.ReadTableDump(f)
		if err != nil {
			log.WithError(err).Fatal("read bgp dump")
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [-synthetic] <bgp dump file>\n", os.Args[0])
		os.Exit(1)
	}
	log.WithField("total", src.Total()).Info("prefixes loaded")

	b := lulea.NewBuilder(lulea.WithLogger(log))
	ts := time.Now()
	if err := prefixsrc.LoadInto(b, src); err != nil {
		log.WithError(err).Fatal("stage prefixes")
	}
	log.WithField("elapsed", time.Since(ts)).Info("staged all prefixes")

	ts = time.Now()
	trie, table, err := b.Build()
	if err != nil {
		log.WithError(err).Fatal("build trie")
	}
	log.WithFields(logrus.Fields{
		"elapsed":    time.Since(ts),
		"next_hops":  len(table),
		"trie_bytes": trie.Size(),
	}).Info("built lulea trie")

	runBenchmark(log, trie, table, *seed, *benchmarkN)

	if *interactive {
		queryLoop(trie, table)
	}
}

// runBenchmark times benchmarkN pseudorandom lookups, the Go analogue of
// Benchmark's LuleaTrieLookup timing loop.
func runBenchmark(log *logrus.Entry, trie *lulea.CompiledTrie, table lulea.NextHopTable, seed uint64, n int) {
	prng := rand.New(rand.NewPCG(seed, seed))
	addrs := make([]uint32, n)
	for i := range addrs {
		addrs[i] = uint32(prng.Uint64())
	}

	ts := time.Now()
	var hits int
	for _, addr := range addrs {
		if _, ok := lulea.Lookup(trie, table, addr); ok {
			hits++
		}
	}
	elapsed := time.Since(ts)

	log.WithFields(logrus.Fields{
		"lookups": n,
		"hits":    hits,
		"elapsed": elapsed,
		"per_op":  elapsed / time.Duration(n),
	}).Info("benchmark complete")
}

// queryLoop reads dotted-quad addresses from stdin until "quit", a blank
// line or EOF,
// mirroring QueryTree's fgets loop.
func queryLoop(trie *lulea.CompiledTrie, table lulea.NextHopTable) {
	fmt.Println("Enter IPv4 to query for route, or \"quit\":")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "" {
			return
		}

		addr, err := netip.ParseAddr(line)
		if err != nil || !addr.Is4() {
			fmt.Println("not a dotted-quad IPv4 address")
			continue
		}

		octets := addr.As4()
		u32 := uint32(octets[0])<<24 | uint32(octets[1])<<16 | uint32(octets[2])<<8 | uint32(octets[3])

		route, ok := lulea.Lookup(trie, table, u32)
		if !ok {
			fmt.Println("Did not find route!")
			continue
		}
		fmt.Printf("Found route of size %d, next hop %d\n", route.Size, route.NextHop)
	}
}
