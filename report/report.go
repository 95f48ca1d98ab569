// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

// Package report produces the human- and machine-readable summaries printed alongside a compression: the
// frequency table with each symbol's code, and the compression ratio.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/blanu/huffcodec/huffman"
)

// Entry describes one symbol of a compressed input.
type Entry struct {
	Symbol huffman.Symbol `json:"symbol"`
	Char   string         `json:"char"`
	Count  uint64         `json:"count"`
	Code   string         `json:"code"`
}

// Summary is everything the stats command and endpoint report about one input.
type Summary struct {
	InputBytes     int     `json:"input_bytes"`
	BlockBytes     int     `json:"block_bytes"`
	ContainerBytes int     `json:"container_bytes"`
	EncodedBits    uint64  `json:"encoded_bits"`
	Padding        int     `json:"padding"`
	Ratio          float64 `json:"ratio"`
	Entries        []Entry `json:"entries"`
}

// Frequencies lists every symbol in freqs in ascending order of count, lower symbols first among equal
// counts.  Codes are taken from table when it has one for the symbol.
func Frequencies(freqs huffman.FrequencyMap, table *huffman.CodeTable) []Entry {
	entries := make([]Entry, 0, freqs.Len())
	for _, sym := range freqs.Symbols() {
		entry := Entry{
			Symbol: sym,
			Char:   fmt.Sprintf("%q", byte(sym)),
			Count:  freqs[sym],
		}
		if table != nil {
			if code, ok := table.Code(sym); ok {
				entry.Code = code.String()
			}
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count < entries[j].Count
	})
	return entries
}

// Ratio returns original/compressed, or 0 when compressed is 0.
func Ratio(original, compressed int64) float64 {
	if compressed == 0 {
		return 0
	}
	return float64(original) / float64(compressed)
}

// Summarize compresses input and reports on the result.  The ratio is taken against the container size,
// since that is what gets stored.
func Summarize(input []byte) (*Summary, error) {
	block, table, _, err := huffman.Compress(input)
	if err != nil {
		return nil, err
	}
	container, err := huffman.Marshal(input)
	if err != nil {
		return nil, err
	}
	padding, encodedBits, err := block.Header()
	if err != nil {
		return nil, err
	}

	return &Summary{
		InputBytes:     len(input),
		BlockBytes:     len(block),
		ContainerBytes: len(container),
		EncodedBits:    uint64(encodedBits),
		Padding:        padding,
		Ratio:          Ratio(int64(len(input)), int64(len(container))),
		Entries:        Frequencies(huffman.CountFrequencies(input), table),
	}, nil
}

// WriteFrequencies writes one "symbol - count" line per entry, followed by the code when known.
func WriteFrequencies(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprintln(w, "Frequency Table"); err != nil {
		return err
	}
	for _, e := range entries {
		var err error
		if e.Code != "" {
			_, err = fmt.Fprintf(w, "%s - %d\t%s\n", e.Char, e.Count, e.Code)
		} else {
			_, err = fmt.Fprintf(w, "%s - %d\n", e.Char, e.Count)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteRatio writes the compression ratio to four decimal places.
func WriteRatio(w io.Writer, ratio float64) error {
	_, err := fmt.Fprintf(w, "Compression Ratio: %.4f\n", ratio)
	return err
}
