// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/tonlibgo/tonlibgo/tonhash"
)

// RawBocToBoc resolves a parsed RawBagOfCells into canonical Cells. Raw
// cells are serialized parent-before-child, so building them in
// reverse index order guarantees every reference is already built by
// the time its referrer needs it.
func RawBocToBoc(raw *RawBagOfCells) (*BagOfCells, error) {
	n := len(raw.Cells)
	built := make([]*Cell, n)
	for i := n - 1; i >= 0; i-- {
		rc := raw.Cells[i]
		refs := make([]*Cell, len(rc.RefIndices))
		for j, idx := range rc.RefIndices {
			if idx <= i || idx >= n {
				return nil, fmt.Errorf("%w: cell %d references out-of-order or out-of-range cell %d", ErrInvalidCellData, i, idx)
			}
			refs[j] = built[idx]
		}
		c, err := New(rc.Data, rc.BitLen, refs, rc.IsExotic)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		built[i] = c
	}

	roots := make([]*Cell, len(raw.Roots))
	for i, idx := range raw.Roots {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: root %d out of range", ErrInvalidCellData, idx)
		}
		roots[i] = built[idx]
	}
	return &BagOfCells{Roots: roots}, nil
}

type indexedCell struct {
	idx  int
	cell *Cell
}

// BocToRawBoc assigns wire indices to every cell reachable from the
// roots and emits the pre-canonical form, grounded on
// original_source/core/src/cell/raw_boc_from_boc.rs's
// build_and_verify_index/raw_cells_from_cells.
func BocToRawBoc(boc *BagOfCells) (*RawBagOfCells, error) {
	byHash := map[tonhash.T]*indexedCell{}
	next := 0

	queue := append([]*Cell(nil), boc.Roots...)
	for len(queue) > 0 {
		var nextQueue []*Cell
		for _, c := range queue {
			h := c.Hash()
			if _, ok := byHash[h]; ok {
				continue
			}
			byHash[h] = &indexedCell{idx: next, cell: c}
			next++
			nextQueue = append(nextQueue, c.References()...)
		}
		queue = nextQueue
	}

	// Every reference must have an index >= its referrer's; bump any
	// violator to a fresh trailing index and re-check until stable.
	for again := true; again; {
		again = false
		for _, ic := range byHash {
			for _, ref := range ic.cell.References() {
				refIC, ok := byHash[ref.Hash()]
				if !ok {
					return nil, fmt.Errorf("%w: reference not reachable from any root", ErrInvalidCellData)
				}
				if refIC.idx < ic.idx {
					refIC.idx = next
					next++
					again = true
				}
			}
		}
	}

	ordered := make([]*indexedCell, 0, len(byHash))
	for _, ic := range byHash {
		ordered = append(ordered, ic)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].idx < ordered[j].idx })
	for realIdx, ic := range ordered {
		ic.idx = realIdx
	}

	rawCells := make([]RawCell, len(ordered))
	for i, ic := range ordered {
		refs := ic.cell.References()
		refIdx := make([]int, len(refs))
		for j, ref := range refs {
			refIdx[j] = byHash[ref.Hash()].idx
		}
		rawCells[i] = RawCell{
			Data:       ic.cell.Data(),
			BitLen:     ic.cell.BitLen(),
			RefIndices: refIdx,
			LevelMask:  ic.cell.levelMask,
			IsExotic:   ic.cell.IsExotic(),
		}
	}

	roots := make([]int, len(boc.Roots))
	for i, root := range boc.Roots {
		ic, ok := byHash[root.Hash()]
		if !ok {
			return nil, fmt.Errorf("%w: root not present in its own index", ErrInvalidCellData)
		}
		roots[i] = ic.idx
	}

	return &RawBagOfCells{Cells: rawCells, Roots: roots}, nil
}

// ParseBOC parses a binary BoC buffer into a resolved cell graph.
func ParseBOC(data []byte) (*BagOfCells, error) {
	raw, err := ParseRawBoC(data)
	if err != nil {
		return nil, err
	}
	return RawBocToBoc(raw)
}

// ParseBOCHex parses a hex-encoded BoC.
func ParseBOCHex(s string) (*BagOfCells, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex: %v", ErrTruncated, err)
	}
	return ParseBOC(data)
}

// ParseBOCBase64 parses a base64-encoded BoC, accepting both the
// URL-safe and standard alphabets.
func ParseBOCBase64(s string) (*BagOfCells, error) {
	data, err := decodeBase64Either(s)
	if err != nil {
		return nil, err
	}
	return ParseBOC(data)
}

func decodeBase64Either(s string) ([]byte, error) {
	enc := base64.StdEncoding
	for _, r := range s {
		if r == '-' || r == '_' {
			enc = base64.URLEncoding
			break
		}
	}
	data, err := enc.DecodeString(s)
	if err != nil {
		data, err = enc.WithPadding(base64.NoPadding).DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64: %v", ErrTruncated, err)
		}
	}
	return data, nil
}

// Serialize re-encodes this cell graph onto the wire.
func (b *BagOfCells) Serialize(withCRC bool) ([]byte, error) {
	raw, err := BocToRawBoc(b)
	if err != nil {
		return nil, err
	}
	return raw.Serialize(withCRC)
}

func (b *BagOfCells) ToBOCHex(withCRC bool) (string, error) {
	data, err := b.Serialize(withCRC)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

func (b *BagOfCells) ToBOCBase64(withCRC bool) (string, error) {
	data, err := b.Serialize(withCRC)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// SingleRoot returns a BagOfCells wrapping exactly one root cell, the
// common case for TLB encode/decode helpers.
func SingleRoot(c *Cell) *BagOfCells {
	return &BagOfCells{Roots: []*Cell{c}}
}
