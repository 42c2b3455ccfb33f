// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package tlb

import "github.com/tonlibgo/tonlibgo/cell"

// WriteRef always stores v in a fresh reference cell, no presence bit.
// Grounded on original_source/core/src/tlb_types/primitives/reference.rs.
func WriteRef[T Object](b *cell.Builder, v T) error {
	c, err := ToCell(v)
	if err != nil {
		return err
	}
	b.StoreReference(c)
	return nil
}

// ReadRef always pops the next reference and decodes it as T.
func ReadRef[T Object](p *cell.Parser, newT func() T) (T, error) {
	var zero T
	c, err := p.NextReference()
	if err != nil {
		return zero, err
	}
	obj := newT()
	if err := FromCell(c, obj); err != nil {
		return zero, err
	}
	return obj, nil
}

// WriteOptionRef writes the OptionRef<T> combinator: a 1-bit presence
// flag, then a reference to v when present.
func WriteOptionRef[T Object](b *cell.Builder, v T, present bool) error {
	if !present {
		b.StoreBit(false)
		return nil
	}
	b.StoreBit(true)
	return WriteRef(b, v)
}

// ReadOptionRef reads the OptionRef<T> combinator.
func ReadOptionRef[T Object](p *cell.Parser, newT func() T) (T, bool, error) {
	var zero T
	present, err := p.LoadBit()
	if err != nil {
		return zero, false, err
	}
	if !present {
		return zero, false, nil
	}
	obj, err := ReadRef(p, newT)
	if err != nil {
		return zero, false, err
	}
	return obj, true, nil
}
