// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const bocMagic uint32 = 0xB5EE9C72

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// RawCell is the pre-canonical form parsed straight off the wire: refs
// are indices into the enclosing RawBagOfCells, not pointers, per spec
// §4.B.
type RawCell struct {
	Data       []byte
	BitLen     int
	RefIndices []int
	LevelMask  LevelMask
	IsExotic   bool
}

// RawBagOfCells is the parsed BoC container before reference indices
// are resolved into a Cell graph.
type RawBagOfCells struct {
	Cells []RawCell
	Roots []int
}

// BagOfCells is a canonical, resolved cell graph: one or more root
// cells, per spec §3.2/§4.B.
type BagOfCells struct {
	Roots []*Cell
}

type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) remaining() int { return len(r.buf) - r.pos }

func (r *byteReader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes, %d remaining", ErrTruncated, n, r.remaining())
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *byteReader) readByte() (byte, error) {
	b, err := r.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readUint reads an n-byte (n <= 8) big-endian unsigned integer.
func (r *byteReader) readUint(n int) (uint64, error) {
	b, err := r.readBytes(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}

func bytesFor(n uint64) int {
	size := 0
	for n > 0 {
		size++
		n >>= 8
	}
	if size == 0 {
		size = 1
	}
	return size
}

func appendUintN(out []byte, v uint64, n int) []byte {
	start := len(out)
	for i := 0; i < n; i++ {
		out = append(out, 0)
	}
	for i := n - 1; i >= 0; i-- {
		out[start+i] = byte(v)
		v >>= 8
	}
	return out
}

// ParseRawBoC parses the BoC wire container into its pre-canonical
// form, per spec §4.B/§6.1. The optional CRC-32C trailer is consumed
// but not validated (§9 open question).
func ParseRawBoC(data []byte) (*RawBagOfCells, error) {
	r := &byteReader{buf: data}

	magic, err := r.readUint(4)
	if err != nil {
		return nil, err
	}
	if uint32(magic) != bocMagic {
		return nil, fmt.Errorf("%w: got %#08x", ErrMagic, magic)
	}

	flags, err := r.readByte()
	if err != nil {
		return nil, err
	}
	hasIdx := flags&0x80 != 0
	hasCRC32C := flags&0x40 != 0
	refSize := int(flags & 0x07)
	if refSize < 1 || refSize > 4 {
		return nil, fmt.Errorf("%w: ref_size %d", ErrUnsupportedRefSize, refSize)
	}

	offsetSizeRaw, err := r.readByte()
	if err != nil {
		return nil, err
	}
	offsetSize := int(offsetSizeRaw)
	if offsetSize < 1 || offsetSize > 8 {
		return nil, fmt.Errorf("%w: offset_size %d out of range 1..=8", ErrSizeOverflow, offsetSize)
	}

	cellCountU, err := r.readUint(refSize)
	if err != nil {
		return nil, err
	}
	rootCountU, err := r.readUint(refSize)
	if err != nil {
		return nil, err
	}
	if rootCountU < 1 {
		return nil, fmt.Errorf("%w: BoC must declare at least one root", ErrSizeOverflow)
	}
	_, err = r.readUint(refSize) // absent_count: not materialized, pruned branches carry their own data
	if err != nil {
		return nil, err
	}
	_, err = r.readUint(offsetSize) // total_cells_size: informational only
	if err != nil {
		return nil, err
	}

	cellCount := int(cellCountU)
	rootCount := int(rootCountU)

	roots := make([]int, rootCount)
	for i := range roots {
		idx, err := r.readUint(refSize)
		if err != nil {
			return nil, err
		}
		roots[i] = int(idx)
	}

	if hasIdx {
		if _, err := r.readBytes(cellCount * offsetSize); err != nil {
			return nil, err
		}
	}

	cells := make([]RawCell, cellCount)
	for i := 0; i < cellCount; i++ {
		c, err := parseRawCell(r, refSize)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cells[i] = c
	}

	if hasCRC32C {
		if _, err := r.readBytes(4); err != nil {
			return nil, err
		}
	}

	return &RawBagOfCells{Cells: cells, Roots: roots}, nil
}

func parseRawCell(r *byteReader, refSize int) (RawCell, error) {
	d1, err := r.readByte()
	if err != nil {
		return RawCell{}, err
	}
	d2, err := r.readByte()
	if err != nil {
		return RawCell{}, err
	}

	numRefs := int(d1 & 0x07)
	isExotic := d1&0x08 != 0
	hasHashes := d1&0x10 != 0
	levelMask := NewLevelMask(uint32(d1 >> 5))

	dataLenBytes := int(d2>>1) + int(d2&1)
	fullBytes := d2&1 == 0

	if hasHashes {
		skip := levelMask.HashCount() * (32 + 2)
		if _, err := r.readBytes(skip); err != nil {
			return RawCell{}, err
		}
	}

	raw, err := r.readBytes(dataLenBytes)
	if err != nil {
		return RawCell{}, err
	}
	data := make([]byte, len(raw))
	copy(data, raw)

	bitLen := dataLenBytes * 8
	if !fullBytes {
		if dataLenBytes == 0 {
			return RawCell{}, fmt.Errorf("%w: partial cell has no data byte to carry the padding tag", ErrMissingPaddingTag)
		}
		last := data[len(data)-1]
		if last == 0 {
			return RawCell{}, ErrMissingPaddingTag
		}
		trail := 0
		for trail < 8 && (last>>uint(trail))&1 == 0 {
			trail++
		}
		data[len(data)-1] = last &^ (1 << uint(trail))
		bitLen = (dataLenBytes-1)*8 + (7 - trail)
	}

	refs := make([]int, numRefs)
	for i := 0; i < numRefs; i++ {
		idx, err := r.readUint(refSize)
		if err != nil {
			return RawCell{}, err
		}
		refs[i] = int(idx)
	}

	return RawCell{Data: data, BitLen: bitLen, RefIndices: refs, LevelMask: levelMask, IsExotic: isExotic}, nil
}

// Serialize re-encodes the raw cells back onto the wire, choosing the
// minimal ref_size/offset_size per spec §4.B. withCRC appends a
// little-endian CRC-32C trailer over everything preceding it.
func (r *RawBagOfCells) Serialize(withCRC bool) ([]byte, error) {
	cellCount := len(r.Cells)
	if cellCount == 0 {
		return nil, fmt.Errorf("%w: can't serialize a BoC with no cells", ErrSizeOverflow)
	}
	refSize := bytesFor(uint64(cellCount))
	if refSize > 4 {
		return nil, fmt.Errorf("%w: %d cells need ref_size > 4", ErrUnsupportedRefSize, cellCount)
	}

	packedCells := make([][]byte, cellCount)
	var totalCellsSize uint64
	for i, c := range r.Cells {
		d1, err := refsDescriptor(cellTypeForRaw(c.IsExotic), c.IsExotic, len(c.RefIndices), c.LevelMask.Mask())
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		d2, err := bitsDescriptor(c.BitLen)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		buf := []byte{d1, d2}
		buf = append(buf, packedData(c.Data, c.BitLen)...)
		for _, ref := range c.RefIndices {
			buf = appendUintN(buf, uint64(ref), refSize)
		}
		packedCells[i] = buf
		totalCellsSize += uint64(len(buf))
	}

	offsetSize := bytesFor(totalCellsSize)
	if offsetSize > 8 {
		return nil, fmt.Errorf("%w: total cells size needs offset_size > 8", ErrSizeOverflow)
	}

	var flags byte = byte(refSize)
	if withCRC {
		flags |= 0x40
	}

	out := make([]byte, 0, 16+len(r.Roots)*refSize+int(totalCellsSize)+4)
	out = appendUintN(out, uint64(bocMagic), 4)
	out = append(out, flags, byte(offsetSize))
	out = appendUintN(out, uint64(cellCount), refSize)
	out = appendUintN(out, uint64(len(r.Roots)), refSize)
	out = appendUintN(out, 0, refSize) // absent_count: always 0, this codec never emits pruned-absent cells
	out = appendUintN(out, totalCellsSize, offsetSize)
	for _, idx := range r.Roots {
		out = appendUintN(out, uint64(idx), refSize)
	}
	for _, buf := range packedCells {
		out = append(out, buf...)
	}

	if withCRC {
		sum := crc32.Checksum(out, crc32cTable)
		var le [4]byte
		binary.LittleEndian.PutUint32(le[:], sum)
		out = append(out, le[:]...)
	}

	return out, nil
}

func cellTypeForRaw(isExotic bool) Type {
	// refsDescriptor only consumes isExotic, never the finer cell type;
	// Ordinary is a safe placeholder for both exotic and plain raw cells.
	return Ordinary
}
