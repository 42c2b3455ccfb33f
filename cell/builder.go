// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"fmt"
	"math/big"
)

// EitherLayout picks how store_either_cell_or_cell_ref lays out its
// payload, per spec §4.G/§9: ToCell always inlines, ToRef always
// references, Native auto-picks based on remaining space.
type EitherLayout int

const (
	ToCell EitherLayout = iota
	ToRef
	Native
)

// Builder is a stateful writer that produces a Cell on Build(). It
// mirrors Parser's surface and uses a sticky first-error so calls
// can be chained the way original_source/core/src/cell/builder.rs
// chains with `?`.
type Builder struct {
	bits []byte // byte-packed, MSB first, grown as needed
	n    int    // bits written so far
	refs []*Cell
	err  error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) RemainingBits() int {
	return MaxCellBits - b.n
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) ensure(extraBits int) bool {
	if b.err != nil {
		return false
	}
	if b.n+extraBits > MaxCellBits {
		b.fail(fmt.Errorf("%w: %d bits written, %d requested, capacity %d", ErrCapacityExceeded, b.n, extraBits, MaxCellBits))
		return false
	}
	needBytes := (b.n + extraBits + 7) / 8
	for len(b.bits) < needBytes {
		b.bits = append(b.bits, 0)
	}
	return true
}

// appendUint writes the low nbits bits of v, MSB-first.
func (b *Builder) appendUint(nbits int, v uint64) *Builder {
	if !b.ensure(nbits) {
		return b
	}
	for i := nbits - 1; i >= 0; i-- {
		setBit(b.bits, b.n, (v>>uint(i))&1 != 0)
		b.n++
	}
	return b
}

// appendBytes writes nbits bits taken MSB-first from src (a left-aligned
// byte buffer), spec §4.A's "read/write N bits as UN" bulk form.
func (b *Builder) appendBytes(nbits int, src []byte) *Builder {
	if !b.ensure(nbits) {
		return b
	}
	for i := 0; i < nbits; i++ {
		setBit(b.bits, b.n, getBit(src, i))
		b.n++
	}
	return b
}

func (b *Builder) StoreBit(v bool) *Builder {
	return b.appendUint(1, boolToUint64(v))
}

func boolToUint64(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

func (b *Builder) StoreU8(nbits int, v uint8) *Builder  { return b.storeUintChecked(nbits, uint64(v), 8) }
func (b *Builder) StoreU16(nbits int, v uint16) *Builder { return b.storeUintChecked(nbits, uint64(v), 16) }
func (b *Builder) StoreU32(nbits int, v uint32) *Builder { return b.storeUintChecked(nbits, uint64(v), 32) }
func (b *Builder) StoreU64(nbits int, v uint64) *Builder { return b.storeUintChecked(nbits, v, 64) }

func (b *Builder) storeUintChecked(nbits int, v uint64, maxBits int) *Builder {
	if b.err != nil {
		return b
	}
	if nbits < 0 || nbits > maxBits {
		return b.fail(fmt.Errorf("%w: bit width %d out of range 0..=%d", ErrValueOutOfRange, nbits, maxBits))
	}
	if nbits < 64 && v>>uint(nbits) != 0 {
		return b.fail(fmt.Errorf("%w: value %d does not fit in %d bits", ErrValueOutOfRange, v, nbits))
	}
	return b.appendUint(nbits, v)
}

func (b *Builder) StoreI8(nbits int, v int8) *Builder  { return b.storeIntChecked(nbits, int64(v), 8) }
func (b *Builder) StoreI16(nbits int, v int16) *Builder { return b.storeIntChecked(nbits, int64(v), 16) }
func (b *Builder) StoreI32(nbits int, v int32) *Builder { return b.storeIntChecked(nbits, int64(v), 32) }
func (b *Builder) StoreI64(nbits int, v int64) *Builder { return b.storeIntChecked(nbits, v, 64) }

func (b *Builder) storeIntChecked(nbits int, v int64, maxBits int) *Builder {
	if b.err != nil {
		return b
	}
	if nbits < 1 || nbits > maxBits {
		return b.fail(fmt.Errorf("%w: bit width %d out of range 1..=%d", ErrValueOutOfRange, nbits, maxBits))
	}
	lo := -(int64(1) << uint(nbits-1))
	hi := int64(1)<<uint(nbits-1) - 1
	if v < lo || v > hi {
		return b.fail(fmt.Errorf("%w: value %d does not fit in signed %d bits", ErrValueOutOfRange, v, nbits))
	}
	mask := uint64(1)<<uint(nbits) - 1
	return b.appendUint(nbits, uint64(v)&mask)
}

// StoreUint stores an unsigned big.Int in exactly nbits bits.
func (b *Builder) StoreUint(nbits int, v *big.Int) *Builder {
	if b.err != nil {
		return b
	}
	if v.Sign() < 0 {
		return b.fail(fmt.Errorf("%w: StoreUint given a negative value", ErrValueOutOfRange))
	}
	if v.BitLen() > nbits {
		return b.fail(fmt.Errorf("%w: value needs %d bits, only %d available", ErrValueOutOfRange, v.BitLen(), nbits))
	}
	return b.appendBigBits(nbits, v)
}

// StoreInt stores a signed big.Int in exactly nbits bits, two's
// complement, mirroring builder.rs's extend_and_invert_bits helper.
func (b *Builder) StoreInt(nbits int, v *big.Int) *Builder {
	if b.err != nil {
		return b
	}
	if nbits < 1 {
		return b.fail(fmt.Errorf("%w: StoreInt needs at least 1 bit", ErrValueOutOfRange))
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(nbits-1))
	lo := new(big.Int).Neg(limit)
	hi := new(big.Int).Sub(limit, big.NewInt(1))
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return b.fail(fmt.Errorf("%w: value does not fit in signed %d bits", ErrValueOutOfRange, nbits))
	}
	var twos big.Int
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(nbits))
		twos.Add(v, mod)
	} else {
		twos.Set(v)
	}
	return b.appendBigBits(nbits, &twos)
}

func (b *Builder) appendBigBits(nbits int, v *big.Int) *Builder {
	if !b.ensure(nbits) {
		return b
	}
	for i := nbits - 1; i >= 0; i-- {
		setBit(b.bits, b.n, v.Bit(i) != 0)
		b.n++
	}
	return b
}

// StoreBits copies nbits bits from a left-aligned byte buffer.
func (b *Builder) StoreBits(nbits int, bits []byte) *Builder {
	if b.err != nil {
		return b
	}
	if nbits > len(bits)*8 {
		return b.fail(fmt.Errorf("%w: StoreBits asked for %d bits, buffer only has %d", ErrCellUnderflow, nbits, len(bits)*8))
	}
	return b.appendBytes(nbits, bits)
}

func (b *Builder) StoreByte(v byte) *Builder { return b.StoreU8(8, v) }

func (b *Builder) StoreSlice(data []byte) *Builder {
	if b.err != nil {
		return b
	}
	return b.appendBytes(len(data)*8, data)
}

func (b *Builder) StoreString(s string) *Builder {
	return b.StoreSlice([]byte(s))
}

// StoreCoins stores a Grams value: a 4-bit byte-count prefix, then the
// big-endian magnitude, per spec §3.5/§4.I. Zero is 4 zero bits.
func (b *Builder) StoreCoins(v *big.Int) *Builder {
	if b.err != nil {
		return b
	}
	if v.Sign() < 0 {
		return b.fail(fmt.Errorf("%w: coins amount must not be negative", ErrValueOutOfRange))
	}
	if v.Sign() == 0 {
		return b.StoreU8(4, 0)
	}
	byteCount := (v.BitLen() + 7) / 8
	if byteCount > 15 {
		return b.fail(fmt.Errorf("%w: coins amount needs %d bytes, max is 15", ErrValueOutOfRange, byteCount))
	}
	b.StoreU8(4, uint8(byteCount))
	return b.StoreUint(byteCount*8, v)
}

// StoreAddress stores the Std address shape spec §4.E describes: the
// null sentinel (2 zero bits) for addr == nil, else "10" + i8 workchain
// + 256-bit hash.
func (b *Builder) StoreAddress(addr *RawAddress) *Builder {
	if b.err != nil {
		return b
	}
	if addr == nil {
		return b.StoreU8(2, 0)
	}
	b.StoreU8(2, 0b10)
	b.StoreI8(8, int8(addr.Workchain))
	return b.StoreBits(256, addr.Hash[:])
}

func (b *Builder) StoreReference(c *Cell) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.refs) >= MaxCellRefs {
		return b.fail(fmt.Errorf("%w: cell already has %d refs", ErrTooManyRefs, len(b.refs)))
	}
	b.refs = append(b.refs, c)
	return b
}

func (b *Builder) StoreReferences(cells []*Cell) *Builder {
	for _, c := range cells {
		b.StoreReference(c)
	}
	return b
}

func (b *Builder) StoreChild(c *Cell) *Builder { return b.StoreReference(c) }

// StoreMaybeRef stores a 1-bit presence flag and, if present, a
// reference: the OptionRef combinator's wire shape (spec §4.G).
func (b *Builder) StoreMaybeRef(c *Cell) *Builder {
	if b.err != nil {
		return b
	}
	if c == nil {
		return b.StoreBit(false)
	}
	b.StoreBit(true)
	return b.StoreReference(c)
}

// StoreEitherCellOrRef writes a 1-bit tag then either the cell's body
// inline or a reference to it, per the chosen layout.
func (b *Builder) StoreEitherCellOrRef(c *Cell, layout EitherLayout) *Builder {
	if b.err != nil {
		return b
	}
	toRef := layout == ToRef
	if layout == Native {
		toRef = c.BitLen() >= b.RemainingBits()
	}
	if toRef {
		b.StoreBit(true)
		return b.StoreReference(c)
	}
	b.StoreBit(false)
	return b.storeCellInline(c)
}

func (b *Builder) storeCellInline(c *Cell) *Builder {
	b.StoreBits(c.BitLen(), c.Data())
	return b.StoreReferences(c.References())
}

// StoreCell inlines another cell's bits and refs directly into this
// builder (used by the Cell TLBObject Write impl, spec §4.G).
func (b *Builder) StoreCell(c *Cell) *Builder {
	if b.err != nil {
		return b
	}
	return b.storeCellInline(c)
}

// Build finalizes the builder into an immutable, hashed Cell.
func (b *Builder) Build() (*Cell, error) {
	if b.err != nil {
		return nil, b.err
	}
	byteLen := (b.n + 7) / 8
	data := make([]byte, byteLen)
	copy(data, b.bits[:byteLen])
	return New(data, b.n, b.refs, false)
}

// BuildExotic finalizes the builder as an exotic cell.
func (b *Builder) BuildExotic() (*Cell, error) {
	if b.err != nil {
		return nil, b.err
	}
	byteLen := (b.n + 7) / 8
	data := make([]byte, byteLen)
	copy(data, b.bits[:byteLen])
	return New(data, b.n, b.refs, true)
}
