// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"encoding/binary"
	"fmt"

	"github.com/tonlibgo/tonlibgo/tonhash"
)

// Type is the tagged variant of a cell described in spec §3.1. Grounded
// on original_source/core/src/cell/cell_type.rs.
type Type int

const (
	Ordinary Type = iota
	PrunedBranch
	Library
	MerkleProof
	MerkleUpdate
)

func (t Type) String() string {
	switch t {
	case Ordinary:
		return "Ordinary"
	case PrunedBranch:
		return "PrunedBranch"
	case Library:
		return "Library"
	case MerkleProof:
		return "MerkleProof"
	case MerkleUpdate:
		return "MerkleUpdate"
	default:
		return "Unknown"
	}
}

const maxLevel = 3

func determineExoticType(data []byte) (Type, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: not enough data for an exotic cell", ErrInvalidExoticCellData)
	}
	switch data[0] {
	case 1:
		return PrunedBranch, nil
	case 2:
		return Library, nil
	case 3:
		return MerkleProof, nil
	case 4:
		return MerkleUpdate, nil
	default:
		return 0, fmt.Errorf("%w: invalid first byte in exotic cell data: %d", ErrInvalidExoticCellData, data[0])
	}
}

func (t Type) validate(data []byte, bitLen int, refs []*Cell) error {
	switch t {
	case Ordinary:
		return nil
	case PrunedBranch:
		return t.validatePruned(data, bitLen, refs)
	case Library:
		return t.validateLibrary(bitLen)
	case MerkleProof:
		return t.validateMerkleProof(data, bitLen, refs)
	case MerkleUpdate:
		return t.validateMerkleUpdate(data, bitLen, refs)
	default:
		return fmt.Errorf("%w: unknown cell type", ErrInvalidExoticCellData)
	}
}

func (t Type) isConfigProof(bitLen int) bool {
	return t == PrunedBranch && bitLen == 280
}

func (t Type) prunedLevelMask(data []byte, bitLen int) (LevelMask, error) {
	if len(data) < 5 {
		return LevelMask{}, fmt.Errorf("%w: pruned branch cell data can't be shorter than 5 bytes, got %d", ErrInvalidExoticCellData, len(data))
	}
	if t.isConfigProof(bitLen) {
		return NewLevelMask(1), nil
	}
	return NewLevelMask(uint32(data[1])), nil
}

func (t Type) validatePruned(data []byte, bitLen int, refs []*Cell) error {
	if len(refs) != 0 {
		return fmt.Errorf("%w: pruned branch cell can't have refs, got %d", ErrInvalidExoticCellData, len(refs))
	}
	if bitLen < 16 {
		return fmt.Errorf("%w: not enough data for a pruned branch special cell", ErrInvalidExoticCellData)
	}
	if !t.isConfigProof(bitLen) {
		lm, err := t.prunedLevelMask(data, bitLen)
		if err != nil {
			return err
		}
		level := lm.Level()
		if level == 0 || level > maxLevel {
			return fmt.Errorf("%w: pruned branch cell level must be >= 1 and <= 3, got %d/%d", ErrInvalidExoticCellData, level, lm.Mask())
		}
		expectedSize := (2 + lm.Apply(level-1).HashCount()*(32+2)) * 8
		if bitLen != expectedSize {
			return fmt.Errorf("%w: pruned branch cell must have exactly %d bits, got %d", ErrInvalidExoticCellData, expectedSize, bitLen)
		}
	}
	return nil
}

func (t Type) validateLibrary(bitLen int) error {
	const size = (1 + 32) * 8
	if bitLen != size {
		return fmt.Errorf("%w: library cell must have exactly %d bits, got %d", ErrInvalidExoticCellData, size, bitLen)
	}
	return nil
}

func (t Type) validateMerkleProof(data []byte, bitLen int, refs []*Cell) error {
	const size = (1 + 32 + 2) * 8
	if bitLen != size {
		return fmt.Errorf("%w: merkle proof cell must have exactly %d bits, got %d", ErrInvalidExoticCellData, size, bitLen)
	}
	if len(refs) != 1 {
		return fmt.Errorf("%w: merkle proof cell must have exactly 1 ref, got %d", ErrInvalidExoticCellData, len(refs))
	}
	proofHash, err := tonhash.FromSlice(data[1:33])
	if err != nil {
		return fmt.Errorf("%w: can't get proof hash bytes from cell data: %v", ErrInvalidExoticCellData, err)
	}
	proofDepth := binary.BigEndian.Uint16(data[33:35])
	refHash := refs[0].GetHash(0)
	refDepth := refs[0].GetDepth(0)
	if proofDepth != refDepth {
		return fmt.Errorf("%w: merkle proof cell ref depth must be exactly %d, got %d", ErrInvalidExoticCellData, proofDepth, refDepth)
	}
	if proofHash != refHash {
		return fmt.Errorf("%w: merkle proof cell ref hash must be exactly %x, got %x", ErrInvalidExoticCellData, proofHash, refHash)
	}
	return nil
}

func (t Type) validateMerkleUpdate(data []byte, bitLen int, refs []*Cell) error {
	const size = 8 + 2*(256+16)
	if bitLen != size {
		return fmt.Errorf("%w: merkle update cell must have exactly %d bits, got %d", ErrInvalidExoticCellData, size, bitLen)
	}
	if len(refs) != 2 {
		return fmt.Errorf("%w: merkle update cell must have exactly 2 refs, got %d", ErrInvalidExoticCellData, len(refs))
	}
	hash1, err := tonhash.FromSlice(data[1:33])
	if err != nil {
		return fmt.Errorf("%w: can't get proof hash bytes 1: %v", ErrInvalidExoticCellData, err)
	}
	hash2, err := tonhash.FromSlice(data[33:65])
	if err != nil {
		return fmt.Errorf("%w: can't get proof hash bytes 2: %v", ErrInvalidExoticCellData, err)
	}
	depth1 := binary.BigEndian.Uint16(data[65:67])
	depth2 := binary.BigEndian.Uint16(data[67:69])

	if depth1 != refs[0].GetDepth(0) {
		return fmt.Errorf("%w: merkle update cell ref depth 1 must be exactly %d, got %d", ErrInvalidExoticCellData, depth1, refs[0].GetDepth(0))
	}
	if hash1 != refs[0].GetHash(0) {
		return fmt.Errorf("%w: merkle update cell ref hash 1 mismatch", ErrInvalidExoticCellData)
	}
	if depth2 != refs[1].GetDepth(0) {
		return fmt.Errorf("%w: merkle update cell ref depth 2 must be exactly %d, got %d", ErrInvalidExoticCellData, depth2, refs[1].GetDepth(0))
	}
	if hash2 != refs[1].GetHash(0) {
		return fmt.Errorf("%w: merkle update cell ref hash 2 mismatch", ErrInvalidExoticCellData)
	}
	return nil
}

func (t Type) levelMask(data []byte, bitLen int, refs []*Cell) (LevelMask, error) {
	switch t {
	case Ordinary:
		var m LevelMask
		for _, r := range refs {
			m = m.ApplyOr(r.levelMask)
		}
		return m, nil
	case PrunedBranch:
		return t.prunedLevelMask(data, bitLen)
	case Library:
		return LevelMask{}, nil
	case MerkleProof:
		return refs[0].levelMask.ShiftRight(), nil
	case MerkleUpdate:
		return refs[0].levelMask.ApplyOr(refs[1].levelMask).ShiftRight(), nil
	default:
		return LevelMask{}, fmt.Errorf("%w: unknown cell type", ErrInvalidExoticCellData)
	}
}

// childDepth returns the depth the parent should read from child at the
// given level: Merkle cells read one level deeper than they expose.
func (t Type) childDepth(child *Cell, level int) uint16 {
	if t == MerkleProof || t == MerkleUpdate {
		return child.GetDepth(level + 1)
	}
	return child.GetDepth(level)
}

func (t Type) childHash(child *Cell, level int) tonhash.T {
	if t == MerkleProof || t == MerkleUpdate {
		return child.GetHash(level + 1)
	}
	return child.GetHash(level)
}

type prunedEntry struct {
	hash  tonhash.T
	depth uint16
}

func (t Type) pruned(data []byte, bitLen int, lm LevelMask) ([]prunedEntry, error) {
	start := 2
	if t.isConfigProof(bitLen) {
		start = 1
	}
	level := lm.Level()
	rest := data[start:]
	need := level*32 + level*2
	if len(rest) < need {
		return nil, fmt.Errorf("%w: pruned branch cell truncated embedded hash table", ErrInvalidExoticCellData)
	}
	hashes := make([]tonhash.T, level)
	for i := 0; i < level; i++ {
		h, err := tonhash.FromSlice(rest[i*32 : i*32+32])
		if err != nil {
			return nil, err
		}
		hashes[i] = h
	}
	depthsOff := level * 32
	out := make([]prunedEntry, level)
	for i := 0; i < level; i++ {
		d := binary.BigEndian.Uint16(rest[depthsOff+i*2 : depthsOff+i*2+2])
		out[i] = prunedEntry{hash: hashes[i], depth: d}
	}
	return out, nil
}

// resolveHashesAndDepths maps the compact per-significant-level hash/
// depth arrays onto the external 4-slot arrays, per spec §4.C.4.
func (t Type) resolveHashesAndDepths(hashes []tonhash.T, depths []uint16, data []byte, bitLen int, lm LevelMask) ([4]tonhash.T, [4]uint16, error) {
	var rh [4]tonhash.T
	var rd [4]uint16

	for i := 0; i < 4; i++ {
		hashIndex := lm.Apply(i).HashIndex()

		var h tonhash.T
		var d uint16
		if t == PrunedBranch {
			thisHashIndex := lm.HashIndex()
			if hashIndex != thisHashIndex {
				pruned, err := t.pruned(data, bitLen, lm)
				if err != nil {
					return rh, rd, err
				}
				if hashIndex >= len(pruned) {
					return rh, rd, fmt.Errorf("%w: pruned hash index out of range", ErrInvalidExoticCellData)
				}
				h, d = pruned[hashIndex].hash, pruned[hashIndex].depth
			} else {
				h, d = hashes[0], depths[0]
			}
		} else {
			if hashIndex >= len(hashes) {
				return rh, rd, fmt.Errorf("%w: hash index out of range", ErrInvalidCellData)
			}
			h, d = hashes[hashIndex], depths[hashIndex]
		}
		rh[i] = h
		rd[i] = d
	}
	return rh, rd, nil
}
