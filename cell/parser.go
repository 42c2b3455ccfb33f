// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/tonlibgo/tonlibgo/tonhash"
)

// Parser reads bits and references out of a Cell in order, the mirror
// image of Builder. Grounded on
// original_source/core/src/cell/parser.rs.
type Parser struct {
	c      *Cell
	pos    int // next unread bit, MSB-first
	refPos int // next unread reference
}

func NewParser(c *Cell) *Parser {
	return &Parser{c: c}
}

func (p *Parser) RemainingBits() int { return p.c.bitLen - p.pos }
func (p *Parser) RemainingRefs() int { return len(p.c.refs) - p.refPos }

func (p *Parser) need(nbits int) error {
	if nbits < 0 || p.pos+nbits > p.c.bitLen {
		return fmt.Errorf("%w: need %d bits, only %d remaining", ErrCellUnderflow, nbits, p.RemainingBits())
	}
	return nil
}

func (p *Parser) LoadBit() (bool, error) {
	if err := p.need(1); err != nil {
		return false, err
	}
	v := getBit(p.c.data, p.pos)
	p.pos++
	return v, nil
}

// readUint reads nbits bits (nbits <= 64) as an unsigned integer.
func (p *Parser) readUint(nbits int) (uint64, error) {
	if err := p.need(nbits); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < nbits; i++ {
		v <<= 1
		if getBit(p.c.data, p.pos) {
			v |= 1
		}
		p.pos++
	}
	return v, nil
}

func (p *Parser) LoadU8(nbits int) (uint8, error) {
	v, err := p.loadUintChecked(nbits, 8)
	return uint8(v), err
}
func (p *Parser) LoadU16(nbits int) (uint16, error) {
	v, err := p.loadUintChecked(nbits, 16)
	return uint16(v), err
}
func (p *Parser) LoadU32(nbits int) (uint32, error) {
	v, err := p.loadUintChecked(nbits, 32)
	return uint32(v), err
}
func (p *Parser) LoadU64(nbits int) (uint64, error) {
	return p.loadUintChecked(nbits, 64)
}

func (p *Parser) loadUintChecked(nbits, maxBits int) (uint64, error) {
	if nbits < 0 || nbits > maxBits {
		return 0, fmt.Errorf("%w: bit width %d out of range 0..=%d", ErrValueOutOfRange, nbits, maxBits)
	}
	return p.readUint(nbits)
}

func (p *Parser) LoadI8(nbits int) (int8, error) {
	v, err := p.loadIntChecked(nbits, 8)
	return int8(v), err
}
func (p *Parser) LoadI16(nbits int) (int16, error) {
	v, err := p.loadIntChecked(nbits, 16)
	return int16(v), err
}
func (p *Parser) LoadI32(nbits int) (int32, error) {
	v, err := p.loadIntChecked(nbits, 32)
	return int32(v), err
}
func (p *Parser) LoadI64(nbits int) (int64, error) {
	return p.loadIntChecked(nbits, 64)
}

func (p *Parser) loadIntChecked(nbits, maxBits int) (int64, error) {
	if nbits < 1 || nbits > maxBits {
		return 0, fmt.Errorf("%w: bit width %d out of range 1..=%d", ErrValueOutOfRange, nbits, maxBits)
	}
	u, err := p.readUint(nbits)
	if err != nil {
		return 0, err
	}
	if u>>uint(nbits-1)&1 != 0 {
		return int64(u) - (int64(1) << uint(nbits)), nil
	}
	return int64(u), nil
}

// LoadUint reads nbits bits as an unsigned big.Int.
func (p *Parser) LoadUint(nbits int) (*big.Int, error) {
	if err := p.need(nbits); err != nil {
		return nil, err
	}
	v := new(big.Int)
	for i := 0; i < nbits; i++ {
		v.Lsh(v, 1)
		if getBit(p.c.data, p.pos) {
			v.Or(v, big.NewInt(1))
		}
		p.pos++
	}
	return v, nil
}

// LoadInt reads nbits bits as a two's-complement signed big.Int.
func (p *Parser) LoadInt(nbits int) (*big.Int, error) {
	if nbits < 1 {
		return nil, fmt.Errorf("%w: LoadInt needs at least 1 bit", ErrValueOutOfRange)
	}
	u, err := p.LoadUint(nbits)
	if err != nil {
		return nil, err
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(nbits-1))
	if u.Cmp(limit) >= 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(nbits))
		u.Sub(u, mod)
	}
	return u, nil
}

func (p *Parser) LoadByte() (byte, error) { return p.LoadU8(8) }

// LoadSlice reads nbits bits into a freshly allocated, left-aligned byte
// buffer (the trailing bits of the last byte are zero-padded).
func (p *Parser) LoadSlice(nbits int) ([]byte, error) {
	if err := p.need(nbits); err != nil {
		return nil, err
	}
	out := make([]byte, (nbits+7)/8)
	for i := 0; i < nbits; i++ {
		if getBit(p.c.data, p.pos) {
			setBit(out, i, true)
		}
		p.pos++
	}
	return out, nil
}

// LoadBytes reads n whole bytes.
func (p *Parser) LoadBytes(n int) ([]byte, error) {
	return p.LoadSlice(n * 8)
}

func (p *Parser) LoadUTF8(nbytes int) (string, error) {
	raw, err := p.LoadBytes(nbytes)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: loaded bytes are not valid utf-8", ErrBadUTF8)
	}
	return string(raw), nil
}

// LoadCoins reads a Grams value: a 4-bit byte-count prefix, then that
// many bytes as a big-endian magnitude. A zero prefix means zero.
func (p *Parser) LoadCoins() (*big.Int, error) {
	n, err := p.LoadU8(4)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return big.NewInt(0), nil
	}
	return p.LoadUint(int(n) * 8)
}

// LoadAddress reads the Std address shape StoreAddress writes: a 2-bit
// tag (00 = none, 10 = std), then workchain/hash when present.
func (p *Parser) LoadAddress() (*RawAddress, error) {
	tag, err := p.LoadU8(2)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0b00:
		return nil, nil
	case 0b10:
		wc, err := p.LoadI8(8)
		if err != nil {
			return nil, err
		}
		hashBytes, err := p.LoadSlice(256)
		if err != nil {
			return nil, err
		}
		h, err := tonhash.FromSlice(hashBytes)
		if err != nil {
			return nil, err
		}
		return &RawAddress{Workchain: int32(wc), Hash: h}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported address tag %02b", ErrBadAddressTag, tag)
	}
}

// LoadUnaryLength reads a TL-B "unary" number: a run of 1 bits
// terminated by a 0 bit, whose length is the value.
func (p *Parser) LoadUnaryLength() (int, error) {
	n := 0
	for {
		b, err := p.LoadBit()
		if err != nil {
			return 0, err
		}
		if !b {
			return n, nil
		}
		n++
	}
}

// LoadRemaining packages every unread bit and reference of the
// underlying cell into a standalone Cell, leaving the parser empty.
// Used to decode the inline side of an EitherRef<Cell> field, where
// "inline" means the rest of the current cell rather than a new one.
func (p *Parser) LoadRemaining() (*Cell, error) {
	n := p.RemainingBits()
	data, err := p.LoadSlice(n)
	if err != nil {
		return nil, err
	}
	refs := append([]*Cell(nil), p.c.refs[p.refPos:]...)
	p.refPos = len(p.c.refs)
	return New(data, n, refs, false)
}

// LoadEitherCellOrRef reads the symmetric counterpart of
// Builder.StoreEitherCellOrRef: a 1-bit tag, then either the rest of
// the current cell or the next reference.
func (p *Parser) LoadEitherCellOrRef() (*Cell, error) {
	isRef, err := p.LoadBit()
	if err != nil {
		return nil, err
	}
	if isRef {
		return p.NextReference()
	}
	return p.LoadRemaining()
}

func (p *Parser) NextReference() (*Cell, error) {
	if p.refPos >= len(p.c.refs) {
		return nil, fmt.Errorf("%w: no more references, cell has %d", ErrCellUnderflow, len(p.c.refs))
	}
	r := p.c.refs[p.refPos]
	p.refPos++
	return r, nil
}

// LoadMaybeRef reads a 1-bit presence flag and, if set, the next
// reference, the OptionRef combinator's wire shape.
func (p *Parser) LoadMaybeRef() (*Cell, error) {
	present, err := p.LoadBit()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return p.NextReference()
}

// EnsureEmpty requires every bit and reference to have been consumed.
func (p *Parser) EnsureEmpty() error {
	if p.RemainingBits() != 0 || p.RemainingRefs() != 0 {
		return fmt.Errorf("%w: %d bits and %d refs unread", ErrNonEmptyCell, p.RemainingBits(), p.RemainingRefs())
	}
	return nil
}

// SkipBits advances the cursor without returning the skipped bits.
func (p *Parser) SkipBits(nbits int) error {
	if err := p.need(nbits); err != nil {
		return err
	}
	p.pos += nbits
	return nil
}

// Seek moves the bit cursor by a relative offset (negative to rewind),
// used by tag-peek decoders that read a discriminant then back up
// before dispatching to the matching variant's own reader.
func (p *Parser) Seek(delta int) error {
	np := p.pos + delta
	if np < 0 || np > p.c.bitLen {
		return fmt.Errorf("%w: seek to %d out of range [0, %d]", ErrCellUnderflow, np, p.c.bitLen)
	}
	p.pos = np
	return nil
}
