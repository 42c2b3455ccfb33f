// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package tlb

import "github.com/tonlibgo/tonlibgo/cell"

// Layout re-exports cell.EitherLayout under the name spec §4.G uses for
// EitherRef's writer-side layout choice.
type Layout = cell.EitherLayout

const (
	ToCellLayout Layout = cell.ToCell
	ToRefLayout  Layout = cell.ToRef
	NativeLayout Layout = cell.Native
)

// WriteEither writes the Either<L,R> combinator: 1 bit, then either L
// or R inline. Grounded on
// original_source/core/src/tlb_types/primitives/either.rs.
func WriteEither[L Object, R Object](b *cell.Builder, left L, right R, useRight bool) error {
	if useRight {
		b.StoreBit(true)
		return Write(b, right)
	}
	b.StoreBit(false)
	return Write(b, left)
}

// ReadEither reads the Either<L,R> combinator, returning whichever side
// was present (the other return value is the type's zero value) and a
// bool telling which.
func ReadEither[L Object, R Object](p *cell.Parser, newL func() L, newR func() R) (L, R, bool, error) {
	var zeroL L
	var zeroR R
	isRight, err := p.LoadBit()
	if err != nil {
		return zeroL, zeroR, false, err
	}
	if isRight {
		r := newR()
		if err := Read(p, r); err != nil {
			return zeroL, zeroR, false, err
		}
		return zeroL, r, true, nil
	}
	l := newL()
	if err := Read(p, l); err != nil {
		return zeroL, zeroR, false, err
	}
	return l, zeroR, false, nil
}

// WriteEitherRef writes the EitherRef<T> combinator: 1 bit, then either
// v inline or a reference to v, per layout.
func WriteEitherRef[T Object](b *cell.Builder, v T, layout Layout) error {
	c, err := ToCell(v)
	if err != nil {
		return err
	}
	b.StoreEitherCellOrRef(c, layout)
	return nil
}

// ReadEitherRef reads the EitherRef<T> combinator.
func ReadEitherRef[T Object](p *cell.Parser, newT func() T) (T, error) {
	var zero T
	isRef, err := p.LoadBit()
	if err != nil {
		return zero, err
	}
	obj := newT()
	if isRef {
		c, err := p.NextReference()
		if err != nil {
			return zero, err
		}
		if err := FromCell(c, obj); err != nil {
			return zero, err
		}
		return obj, nil
	}
	if err := Read(p, obj); err != nil {
		return zero, err
	}
	return obj, nil
}
