// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"bytes"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrBadMagic           = errors.New("huffman: not a huffman container")
	ErrUnsupportedVersion = errors.New("huffman: unsupported container version")
	ErrCorruptContainer   = errors.New("huffman: corrupt container frequency table")
	ErrDigestMismatch     = errors.New("huffman: container digest mismatch")
	ErrFrequencyMismatch  = errors.New("huffman: decoded length disagrees with frequency table")
)

const (
	containerMagic   = "HUFC"
	containerVersion = 1
	digestSize       = blake2b.Size256
)

// Container is the self-describing form of a Block.  It records the frequency table the block was coded
// with, from which a decoder rebuilds the same tree, and a digest over the header and the block.
//
// Wire layout:
//
//	magic "HUFC" | version (1 octet) | symbol count (uvarint)
//	| count entries of (symbol (1 octet), frequency (uvarint)), ascending by symbol
//	| BLAKE2b-256 of everything before it plus block (32 octets) | block
type Container struct {
	Frequencies FrequencyMap
	Block       Block
}

// NewContainer compresses input into a Container.
func NewContainer(input []byte) (*Container, error) {
	block, _, _, err := Compress(input)
	if err != nil {
		return nil, err
	}
	return &Container{Frequencies: CountFrequencies(input), Block: block}, nil
}

// CodeTable rebuilds the code table from the recorded frequencies.  An empty frequency table gives an empty
// CodeTable.
func (c *Container) CodeTable() (*CodeTable, error) {
	if c.Frequencies.Len() == 0 {
		return newEmptyCodeTable(), nil
	}
	tree, err := BuildTree(c.Frequencies)
	if err != nil {
		return nil, err
	}
	return NewCodeTable(tree), nil
}

// Decode unpacks the block and checks the result against the frequency table.
func (c *Container) Decode() ([]byte, error) {
	table, err := c.CodeTable()
	if err != nil {
		return nil, err
	}

	out, err := Decompress(c.Block, table)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != c.Frequencies.Total() {
		return nil, ErrFrequencyMismatch
	}
	return out, nil
}

// WriteTo writes the wire form of c to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	var varint [binary.MaxVarintLen64]byte

	buf.WriteString(containerMagic)
	buf.WriteByte(containerVersion)
	buf.Write(varint[:binary.PutUvarint(varint[:], uint64(c.Frequencies.Len()))])
	for _, sym := range c.Frequencies.Symbols() {
		buf.WriteByte(byte(sym))
		buf.Write(varint[:binary.PutUvarint(varint[:], c.Frequencies[sym])])
	}
	digest := containerDigest(buf.Bytes(), c.Block)
	buf.Write(digest)
	buf.Write(c.Block)

	return buf.WriteTo(w)
}

// containerDigest covers every octet of the container except the digest itself.
func containerDigest(header []byte, block Block) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write(header)
	h.Write(block)
	return h.Sum(nil)
}

// ReadContainer reads one Container from r, consuming r to EOF for the block.  The digest is verified before
// returning.
func ReadContainer(r io.Reader) (*Container, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	br := bytes.NewReader(data)

	magic := make([]byte, len(containerMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, ErrBadMagic
	}
	if string(magic) != containerMagic {
		return nil, ErrBadMagic
	}

	version, err := br.ReadByte()
	if err != nil {
		return nil, truncatedContainer(err)
	}
	if version != containerVersion {
		return nil, ErrUnsupportedVersion
	}

	count, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, truncatedContainer(err)
	}
	if count > totalSymbols {
		return nil, ErrCorruptContainer
	}

	freqs := make(FrequencyMap, count)
	for i := uint64(0); i < count; i++ {
		sym, err := br.ReadByte()
		if err != nil {
			return nil, truncatedContainer(err)
		}
		freq, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, truncatedContainer(err)
		}
		if _, dup := freqs[Symbol(sym)]; dup || freq == 0 {
			return nil, ErrCorruptContainer
		}
		freqs[Symbol(sym)] = freq
	}
	header := data[:len(data)-br.Len()]

	digest := make([]byte, digestSize)
	if _, err := io.ReadFull(br, digest); err != nil {
		return nil, truncatedContainer(err)
	}

	block := data[len(data)-br.Len():]
	if subtle.ConstantTimeCompare(containerDigest(header, block), digest) != 1 {
		return nil, ErrDigestMismatch
	}

	return &Container{Frequencies: freqs, Block: Block(block)}, nil
}

func truncatedContainer(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("huffman: truncated container: %w", io.ErrUnexpectedEOF)
	}
	return err
}

// Marshal compresses input into the container wire form.
func Marshal(input []byte) ([]byte, error) {
	c, err := NewContainer(input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the container wire form produced by Marshal.
func Unmarshal(data []byte) ([]byte, error) {
	c, err := ReadContainer(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return c.Decode()
}
