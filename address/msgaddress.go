// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package address

import (
	"fmt"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/tlb"
	"github.com/tonlibgo/tonlibgo/tonhash"
)

// Anycast is the optional rewrite-prefix overlay carried by
// MsgAddrIntStd/MsgAddrIntVar. It has no prefix tag of its own.
type Anycast struct {
	Depth      uint8
	RewritePfx []byte
}

func (a *Anycast) Prefix() *tlb.Prefix { return nil }

func (a *Anycast) ReadDefinition(p *cell.Parser) error {
	depth, err := p.LoadU8(5)
	if err != nil {
		return err
	}
	pfx, err := p.LoadSlice(int(depth))
	if err != nil {
		return err
	}
	a.Depth, a.RewritePfx = depth, pfx
	return nil
}

func (a *Anycast) WriteDefinition(b *cell.Builder) error {
	b.StoreU8(5, a.Depth)
	b.StoreBits(int(a.Depth), a.RewritePfx)
	return nil
}

// MsgAddrNone is the `addr_none$00` variant.
type MsgAddrNone struct{}

func (MsgAddrNone) Prefix() *tlb.Prefix              { return &tlb.Prefix{BitLen: 2, Value: 0b00} }
func (*MsgAddrNone) ReadDefinition(*cell.Parser) error { return nil }
func (*MsgAddrNone) WriteDefinition(*cell.Builder) error { return nil }

// MsgAddrExt is the `addr_extern$01` variant.
type MsgAddrExt struct {
	AddressBitLen uint16
	Address       []byte
}

func (*MsgAddrExt) Prefix() *tlb.Prefix { return &tlb.Prefix{BitLen: 2, Value: 0b01} }

func (e *MsgAddrExt) ReadDefinition(p *cell.Parser) error {
	n, err := p.LoadU16(9)
	if err != nil {
		return err
	}
	addr, err := p.LoadSlice(int(n))
	if err != nil {
		return err
	}
	e.AddressBitLen, e.Address = n, addr
	return nil
}

func (e *MsgAddrExt) WriteDefinition(b *cell.Builder) error {
	if e.AddressBitLen > 512 {
		return fmt.Errorf("%w: MsgAddrExt address_bit_len %d exceeds max 512", cell.ErrValueOutOfRange, e.AddressBitLen)
	}
	b.StoreU16(9, e.AddressBitLen)
	b.StoreBits(int(e.AddressBitLen), e.Address)
	return nil
}

// MsgAddrIntStd is the `addr_std$10` variant: a fixed 256-bit hash.
type MsgAddrIntStd struct {
	Anycast   *Anycast
	Workchain int32
	Address   []byte
}

func (*MsgAddrIntStd) Prefix() *tlb.Prefix { return &tlb.Prefix{BitLen: 2, Value: 0b10} }

func newAnycast() *Anycast { return &Anycast{} }

func (a *MsgAddrIntStd) ReadDefinition(p *cell.Parser) error {
	anycast, _, err := tlb.ReadOption(p, newAnycast)
	if err != nil {
		return err
	}
	wc, err := p.LoadI8(8)
	if err != nil {
		return err
	}
	addr, err := p.LoadSlice(256)
	if err != nil {
		return err
	}
	a.Anycast, a.Workchain, a.Address = anycast, int32(wc), addr
	return nil
}

func (a *MsgAddrIntStd) WriteDefinition(b *cell.Builder) error {
	if err := tlb.WriteOption(b, a.Anycast, a.Anycast != nil); err != nil {
		return err
	}
	b.StoreI8(8, int8(a.Workchain))
	b.StoreBits(256, a.Address)
	return nil
}

// MsgAddrIntVar is the `addr_var$11` variant: a variable-width hash.
type MsgAddrIntVar struct {
	Anycast       *Anycast
	Workchain     int32
	AddressBitLen uint16
	Address       []byte
}

func (*MsgAddrIntVar) Prefix() *tlb.Prefix { return &tlb.Prefix{BitLen: 2, Value: 0b11} }

func (a *MsgAddrIntVar) ReadDefinition(p *cell.Parser) error {
	anycast, _, err := tlb.ReadOption(p, newAnycast)
	if err != nil {
		return err
	}
	bitLen, err := p.LoadU16(9)
	if err != nil {
		return err
	}
	wc, err := p.LoadI32(32)
	if err != nil {
		return err
	}
	addr, err := p.LoadSlice(int(bitLen))
	if err != nil {
		return err
	}
	a.Anycast, a.Workchain, a.AddressBitLen, a.Address = anycast, wc, bitLen, addr
	return nil
}

func (a *MsgAddrIntVar) WriteDefinition(b *cell.Builder) error {
	if err := tlb.WriteOption(b, a.Anycast, a.Anycast != nil); err != nil {
		return err
	}
	b.StoreU16(9, a.AddressBitLen)
	b.StoreI32(32, a.Workchain)
	b.StoreBits(int(a.AddressBitLen), a.Address)
	return nil
}

// MsgAddress is the tagged union of all four address variants; exactly
// one field is non-nil.
type MsgAddress struct {
	None   *MsgAddrNone
	Ext    *MsgAddrExt
	IntStd *MsgAddrIntStd
	IntVar *MsgAddrIntVar
}

// NoneAddress is the canonical empty MsgAddress.
var NoneAddress = MsgAddress{None: &MsgAddrNone{}}

// ReadMsgAddress peeks the 2-bit tag, rewinds, and dispatches to the
// matching variant's own reader.
func ReadMsgAddress(p *cell.Parser) (MsgAddress, error) {
	tag, err := p.LoadU8(2)
	if err != nil {
		return MsgAddress{}, err
	}
	if err := p.Seek(-2); err != nil {
		return MsgAddress{}, err
	}
	switch tag {
	case 0b00:
		v := &MsgAddrNone{}
		if err := tlb.Read(p, v); err != nil {
			return MsgAddress{}, err
		}
		return MsgAddress{None: v}, nil
	case 0b01:
		v := &MsgAddrExt{}
		if err := tlb.Read(p, v); err != nil {
			return MsgAddress{}, err
		}
		return MsgAddress{Ext: v}, nil
	case 0b10:
		v := &MsgAddrIntStd{}
		if err := tlb.Read(p, v); err != nil {
			return MsgAddress{}, err
		}
		return MsgAddress{IntStd: v}, nil
	case 0b11:
		v := &MsgAddrIntVar{}
		if err := tlb.Read(p, v); err != nil {
			return MsgAddress{}, err
		}
		return MsgAddress{IntVar: v}, nil
	default:
		return MsgAddress{}, fmt.Errorf("%w: MsgAddress unexpected tag %02b", cell.ErrInvalidTLBPrefix, tag)
	}
}

func WriteMsgAddress(b *cell.Builder, a MsgAddress) error {
	switch {
	case a.None != nil:
		return tlb.Write(b, a.None)
	case a.Ext != nil:
		return tlb.Write(b, a.Ext)
	case a.IntStd != nil:
		return tlb.Write(b, a.IntStd)
	case a.IntVar != nil:
		return tlb.Write(b, a.IntVar)
	default:
		return fmt.Errorf("%w: MsgAddress has no variant set", cell.ErrInvalidCellData)
	}
}

// MsgAddressInt is the internal-only restriction of MsgAddress (Std or
// Var), used by Message's src/dst fields.
type MsgAddressInt struct {
	Std *MsgAddrIntStd
	Var *MsgAddrIntVar
}

func ReadMsgAddressInt(p *cell.Parser) (MsgAddressInt, error) {
	full, err := ReadMsgAddress(p)
	if err != nil {
		return MsgAddressInt{}, err
	}
	switch {
	case full.IntStd != nil:
		return MsgAddressInt{Std: full.IntStd}, nil
	case full.IntVar != nil:
		return MsgAddressInt{Var: full.IntVar}, nil
	default:
		return MsgAddressInt{}, fmt.Errorf("%w: expected an internal address", cell.ErrInvalidTLBPrefix)
	}
}

func WriteMsgAddressInt(b *cell.Builder, a MsgAddressInt) error {
	if a.Std != nil {
		return tlb.Write(b, a.Std)
	}
	if a.Var != nil {
		return tlb.Write(b, a.Var)
	}
	return fmt.Errorf("%w: MsgAddressInt has no variant set", cell.ErrInvalidCellData)
}

// FromTLBData resolves a raw (workchain, address bits, anycast) triple
// into a 256-bit Address, overlaying the anycast rewrite prefix first.
// Grounded on TonAddress::from_tlb_data.
func FromTLBData(workchain int32, addrBits []byte, addrBitLen int, anycast *Anycast) (Address, error) {
	if anycast == nil {
		h, err := tonhash.FromSlice(addrBits)
		if err != nil {
			return Address{}, fmt.Errorf("%w: %v", ErrLength, err)
		}
		return Address{Workchain: workchain, Hash: h}, nil
	}
	if addrBitLen < int(anycast.Depth) {
		return Address{}, fmt.Errorf("%w: rewrite prefix has %d bits, address has only %d", ErrAnycastDepthOverflow, anycast.Depth, addrBitLen)
	}
	rewritten := make([]byte, len(addrBits))
	copy(rewritten, addrBits)
	if !cell.RewriteBits(anycast.RewritePfx, 0, rewritten, 0, int(anycast.Depth)) {
		return Address{}, fmt.Errorf("%w: failed to overlay anycast rewrite prefix", ErrAnycastDepthOverflow)
	}
	h, err := tonhash.FromSlice(rewritten)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrLength, err)
	}
	return Address{Workchain: workchain, Hash: h}, nil
}

// FromMsgAddress converts a parsed MsgAddress into an Address; only
// the None and internal-std/var variants are representable.
func FromMsgAddress(a MsgAddress) (Address, error) {
	switch {
	case a.None != nil:
		return Null, nil
	case a.Ext != nil:
		return Address{}, fmt.Errorf("%w: can't derive an Address from MsgAddrExt", ErrCharset)
	case a.IntStd != nil:
		return FromTLBData(a.IntStd.Workchain, a.IntStd.Address, 256, a.IntStd.Anycast)
	case a.IntVar != nil:
		return FromTLBData(a.IntVar.Workchain, a.IntVar.Address, int(a.IntVar.AddressBitLen), a.IntVar.Anycast)
	default:
		return Address{}, fmt.Errorf("%w: empty MsgAddress", ErrCharset)
	}
}

// ToMsgAddress renders a as the canonical addr_std MsgAddress (or
// addr_none for the null address).
func (a Address) ToMsgAddress() MsgAddress {
	if a == Null {
		return NoneAddress
	}
	return MsgAddress{IntStd: &MsgAddrIntStd{
		Anycast:   nil,
		Workchain: a.Workchain,
		Address:   append([]byte(nil), a.Hash[:]...),
	}}
}
