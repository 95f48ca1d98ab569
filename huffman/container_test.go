// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blanu/huffcodec/huffman"
)

func TestContainerRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(randSeed))
	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("abracadabra"),
		[]byte("Four score and seven years ago our fathers brought forth on this continent"),
		randomInput(r),
	}

	for _, input := range inputs {
		data, err := huffman.Marshal(input)
		require.NoError(t, err)
		require.Equal(t, "HUFC", string(data[:4]))

		out, err := huffman.Unmarshal(data)
		require.NoError(t, err)
		require.Equal(t, len(input), len(out))
		require.True(t, bytes.Equal(input, out))
	}
}

func TestContainerRebuildsSameTable(t *testing.T) {
	input := []byte("abracadabra")
	block, table, _, err := huffman.Compress(input)
	require.NoError(t, err)

	c, err := huffman.NewContainer(input)
	require.NoError(t, err)
	require.Equal(t, block, c.Block)

	rebuilt, err := c.CodeTable()
	require.NoError(t, err)
	require.Equal(t, table.Codes(), rebuilt.Codes())
}

func TestContainerWireLayout(t *testing.T) {
	c, err := huffman.NewContainer([]byte("aaaa"))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	data := buf.Bytes()
	// magic, version, one symbol, 'a', frequency 4, digest, block.
	require.Equal(t, []byte{'H', 'U', 'F', 'C', 1, 1, 'a', 4}, data[:8])
	require.Equal(t, 8+32+2, len(data))
	require.Equal(t, []byte{0x04, 0x00}, data[len(data)-2:])
}

func TestContainerTamper(t *testing.T) {
	data, err := huffman.Marshal([]byte("abracadabra"))
	require.NoError(t, err)

	tampered := append([]byte(nil), data...)
	tampered[len(tampered)-1] ^= 0x01
	_, err = huffman.Unmarshal(tampered)
	require.ErrorIs(t, err, huffman.ErrDigestMismatch)

	badMagic := append([]byte("XUFC"), data[4:]...)
	_, err = huffman.Unmarshal(badMagic)
	require.ErrorIs(t, err, huffman.ErrBadMagic)

	badVersion := append([]byte(nil), data...)
	badVersion[4] = 2
	_, err = huffman.Unmarshal(badVersion)
	require.ErrorIs(t, err, huffman.ErrUnsupportedVersion)

	_, err = huffman.Unmarshal(data[:10])
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF), "got %v", err)

	_, err = huffman.Unmarshal([]byte("HU"))
	require.ErrorIs(t, err, huffman.ErrBadMagic)
}

func TestContainerRewrittenFrequencyTable(t *testing.T) {
	data, err := huffman.Marshal([]byte("abracadabra"))
	require.NoError(t, err)

	// magic, version, count 5, then a:5 b:2 c:1.  Renaming 'c' keeps every count and so every code length.
	require.Equal(t, byte('c'), data[10])
	renamed := append([]byte(nil), data...)
	renamed[10] = 'z'
	out, err := huffman.Unmarshal(renamed)
	require.ErrorIs(t, err, huffman.ErrDigestMismatch)
	require.Nil(t, out)

	recounted := append([]byte(nil), data...)
	recounted[7] = 3
	recounted[9] = 4
	_, err = huffman.Unmarshal(recounted)
	require.ErrorIs(t, err, huffman.ErrDigestMismatch)
}

func TestContainerCorruptFrequencies(t *testing.T) {
	// Duplicate symbol entry.
	data := []byte{'H', 'U', 'F', 'C', 1, 2, 'a', 1, 'a', 1}
	_, err := huffman.Unmarshal(data)
	require.ErrorIs(t, err, huffman.ErrCorruptContainer)

	// Zero frequency.
	data = []byte{'H', 'U', 'F', 'C', 1, 1, 'a', 0}
	_, err = huffman.Unmarshal(data)
	require.ErrorIs(t, err, huffman.ErrCorruptContainer)

	// More symbols than the alphabet has.
	data = []byte{'H', 'U', 'F', 'C', 1, 0x81, 0x02}
	_, err = huffman.Unmarshal(data)
	require.ErrorIs(t, err, huffman.ErrCorruptContainer)
}

func TestContainerFrequencyMismatch(t *testing.T) {
	c, err := huffman.NewContainer([]byte("aaaa"))
	require.NoError(t, err)

	// A lone symbol gets the same code whatever its count, so the block still decodes, to four symbols.
	c.Frequencies['a'] = 5
	_, err = c.Decode()
	require.ErrorIs(t, err, huffman.ErrFrequencyMismatch)
}
