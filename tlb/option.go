// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package tlb

import "github.com/tonlibgo/tonlibgo/cell"

// WriteOption writes the Option<T> combinator: a 1-bit presence flag,
// then v inline when present. Grounded on
// original_source/core/src/tlb_types/primitives/option.rs.
func WriteOption[T Object](b *cell.Builder, v T, present bool) error {
	if !present {
		b.StoreBit(false)
		return nil
	}
	b.StoreBit(true)
	return Write(b, v)
}

// ReadOption reads the Option<T> combinator. newT must return a fresh,
// ready-to-populate zero value of the concrete pointer type T.
func ReadOption[T Object](p *cell.Parser, newT func() T) (T, bool, error) {
	var zero T
	present, err := p.LoadBit()
	if err != nil {
		return zero, false, err
	}
	if !present {
		return zero, false, nil
	}
	obj := newT()
	if err := Read(p, obj); err != nil {
		return zero, false, err
	}
	return obj, true, nil
}
