// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package cell implements the core binary data model: the immutable
// Cell, the BoC wire container, and the typed bit-level builder/parser
// pair that sit over it.
package cell

import (
	"crypto/sha256"
	"fmt"

	"github.com/tonlibgo/tonlibgo/tonhash"
)

const (
	MaxCellBits = 1023
	MaxCellRefs = 4
)

// Cell is the immutable DAG node described in spec §3.1. It is always
// constructed via New/MustNew and never mutated afterward; its hashes
// and depths are computed once at construction time.
type Cell struct {
	data      []byte
	bitLen    int
	refs      []*Cell
	cellType  Type
	isExotic  bool
	levelMask LevelMask
	hashes    [4]tonhash.T
	depths    [4]uint16
}

// New builds and validates a canonical Cell from raw parts, per spec
// §4.C. data holds bitLen bits, MSB-first, any unused trailing bits in
// the last byte must be zero.
func New(data []byte, bitLen int, refs []*Cell, isExotic bool) (*Cell, error) {
	if bitLen > MaxCellBits {
		return nil, fmt.Errorf("%w: cell data length should not exceed %d bits, got %d", ErrInvalidCellData, MaxCellBits, bitLen)
	}
	if len(refs) > MaxCellRefs {
		return nil, fmt.Errorf("%w: cell should not contain more than %d references, got %d", ErrInvalidCellData, MaxCellRefs, len(refs))
	}

	var cellType Type
	var err error
	if isExotic {
		cellType, err = determineExoticType(data)
		if err != nil {
			return nil, err
		}
	} else {
		cellType = Ordinary
	}

	if err := cellType.validate(data, bitLen, refs); err != nil {
		return nil, err
	}

	levelMask, err := cellType.levelMask(data, bitLen, refs)
	if err != nil {
		return nil, err
	}

	hashes, depths, err := calculateHashesAndDepths(cellType, isExotic, data, bitLen, refs, levelMask)
	if err != nil {
		return nil, err
	}

	return &Cell{
		data:      data,
		bitLen:    bitLen,
		refs:      refs,
		cellType:  cellType,
		isExotic:  isExotic,
		levelMask: levelMask,
		hashes:    hashes,
		depths:    depths,
	}, nil
}

// Empty returns the canonical empty Ordinary cell.
func Empty() *Cell {
	c, err := New(nil, 0, nil, false)
	if err != nil {
		panic("cell: building the empty cell must never fail: " + err.Error())
	}
	return c
}

func (c *Cell) Data() []byte        { return c.data }
func (c *Cell) BitLen() int         { return c.bitLen }
func (c *Cell) References() []*Cell { return c.refs }
func (c *Cell) Type() Type          { return c.cellType }
func (c *Cell) IsExotic() bool      { return c.isExotic }

func (c *Cell) Reference(idx int) (*Cell, error) {
	if idx < 0 || idx >= len(c.refs) {
		return nil, fmt.Errorf("%w: ref index %d, cell has %d refs", ErrCellUnderflow, idx, len(c.refs))
	}
	return c.refs[idx], nil
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 3 {
		return 3
	}
	return level
}

func (c *Cell) GetHash(level int) tonhash.T { return c.hashes[clampLevel(level)] }
func (c *Cell) GetDepth(level int) uint16   { return c.depths[clampLevel(level)] }

// Hash is the cell's top-level (level 3) hash: its semantic identity.
func (c *Cell) Hash() tonhash.T { return c.GetHash(3) }

// Depth is the cell's top-level reference-chain depth.
func (c *Cell) Depth() uint16 { return c.GetDepth(3) }

// Equal compares two cells structurally (data, bit length, and ref
// identity by hash, in order) — the notion spec §8.1 law 1 depends on.
func (c *Cell) Equal(other *Cell) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	if c.bitLen != other.bitLen || c.isExotic != other.isExotic || len(c.refs) != len(other.refs) {
		return false
	}
	for i := range c.data {
		if c.data[i] != other.data[i] {
			return false
		}
	}
	for i := range c.refs {
		if c.refs[i].Hash() != other.refs[i].Hash() {
			return false
		}
	}
	return true
}

// --- hash/repr computation, grounded on original_source/core/src/cell.rs ---

func refsDescriptor(cellType Type, isExotic bool, numRefs int, levelMaskAtLevel uint32) (byte, error) {
	if numRefs > MaxCellRefs {
		return 0, fmt.Errorf("%w: cell should not contain more than %d references", ErrInvalidCellData, MaxCellRefs)
	}
	if levelMaskAtLevel > 7 {
		return 0, fmt.Errorf("%w: cell level mask can not be higher than 7", ErrInvalidCellData)
	}
	exoticBit := byte(0)
	if isExotic {
		exoticBit = 1
	}
	return byte(numRefs) + 8*exoticBit + byte(levelMaskAtLevel)*32, nil
}

func bitsDescriptor(bitLen int) (byte, error) {
	if bitLen > MaxCellBits {
		return 0, fmt.Errorf("%w: cell data length should not exceed %d bits", ErrInvalidCellData, MaxCellBits)
	}
	return byte(bitLen/8 + (bitLen+7)/8), nil
}

// representation builds the canonical preimage for one (level, data)
// pair of a cell, per spec §6.2.
func representation(originalBitLen int, data []byte, dataBitLen int, refs []*Cell, lm LevelMask, level int, cellType Type, isExotic bool) ([]byte, error) {
	d1, err := refsDescriptor(cellType, isExotic, len(refs), lm.Apply(level).Mask())
	if err != nil {
		return nil, err
	}
	d2, err := bitsDescriptor(originalBitLen)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 2+len(data)+(32+2)*len(refs))
	out = append(out, d1, d2)
	out = append(out, packedData(data, dataBitLen)...)

	for _, r := range refs {
		d := cellType.childDepth(r, level)
		out = append(out, byte(d/256), byte(d%256))
	}
	for _, r := range refs {
		h := cellType.childHash(r, level)
		out = append(out, h[:]...)
	}
	return out, nil
}

// packedData appends a padding-tag bit (a single 1 bit followed by
// implicit zeros) to the last byte when dataBitLen isn't byte-aligned.
func packedData(data []byte, dataBitLen int) []byte {
	restBits := dataBitLen % 8
	if restBits == 0 {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}
	out := make([]byte, len(data))
	copy(out, data)
	last := out[len(out)-1]
	out[len(out)-1] = last | (1 << uint(8-restBits-1))
	return out
}

func calculateHashesAndDepths(cellType Type, isExotic bool, data []byte, bitLen int, refs []*Cell, lm LevelMask) ([4]tonhash.T, [4]uint16, error) {
	var zero [4]tonhash.T
	var zeroD [4]uint16

	hashCount := lm.HashCount()
	if cellType == PrunedBranch {
		hashCount = 1
	}
	totalHashCount := lm.HashCount()
	hashIOffset := totalHashCount - hashCount

	var hashes []tonhash.T
	var depths []uint16

	hashI := -1
	for level := 0; level <= lm.Level(); level++ {
		if !lm.IsSignificant(level) {
			continue
		}
		hashI++
		if hashI < hashIOffset {
			continue
		}

		var curData []byte
		var curBitLen int
		if hashI == hashIOffset {
			curData, curBitLen = data, bitLen
		} else {
			prev := hashes[hashI-hashIOffset-1]
			curData, curBitLen = prev[:], 256
		}

		var depth uint16
		if len(refs) == 0 {
			depth = 0
		} else {
			var maxDepth uint16
			for _, r := range refs {
				cd := cellType.childDepth(r, level)
				if cd > maxDepth {
					maxDepth = cd
				}
			}
			depth = maxDepth + 1
		}

		repr, err := representation(bitLen, curData, curBitLen, refs, lm, level, cellType, isExotic)
		if err != nil {
			return zero, zeroD, err
		}
		sum := sha256.Sum256(repr)
		var h tonhash.T
		copy(h[:], sum[:])

		depths = append(depths, depth)
		hashes = append(hashes, h)
	}

	return cellType.resolveHashesAndDepthsWrap(hashes, depths, data, bitLen, lm)
}

// resolveHashesAndDepthsWrap adapts resolveHashesAndDepths' error-free
// tuple to the 3-array-plus-error signature calculateHashesAndDepths
// expects.
func (t Type) resolveHashesAndDepthsWrap(hashes []tonhash.T, depths []uint16, data []byte, bitLen int, lm LevelMask) ([4]tonhash.T, [4]uint16, error) {
	return t.resolveHashesAndDepths(hashes, depths, data, bitLen, lm)
}
