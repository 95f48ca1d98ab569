// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"sort"
)

// FrequencyMap maps each symbol present in an input to its number of occurrences.
type FrequencyMap map[Symbol]uint64

// CountFrequencies scans input once.  An empty input gives an empty map, which callers must treat as nothing
// to encode rather than passing it to BuildTree.
func CountFrequencies(input []byte) FrequencyMap {
	var counts [totalSymbols]uint64
	for _, b := range input {
		counts[b]++
	}

	freqs := make(FrequencyMap)
	for i, count := range counts {
		if count > 0 {
			freqs[Symbol(i)] = count
		}
	}
	return freqs
}

// Len returns the number of distinct symbols.
func (freqs FrequencyMap) Len() int {
	return len(freqs)
}

// Total returns the sum of all counts, which for a counted input is its length.
func (freqs FrequencyMap) Total() uint64 {
	var total uint64
	for _, count := range freqs {
		total += count
	}
	return total
}

// Symbols returns the symbols in ascending order.
func (freqs FrequencyMap) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(freqs))
	for sym := range freqs {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
