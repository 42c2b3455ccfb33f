// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package message

import (
	"fmt"
	"math/big"

	"github.com/tonlibgo/tonlibgo/address"
	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/coins"
)

// CurrencyCollection is a Grams amount plus an optional dictionary of
// extra currencies (32-bit currency id -> VarUInteger 32 amount).
type CurrencyCollection struct {
	Grams  coins.Grams
	Extras map[uint32]*big.Int
}

func NewCurrencyCollection(nanotons uint64) CurrencyCollection {
	return CurrencyCollection{Grams: coins.FromUint64(nanotons)}
}

func readVarUInt32(p *cell.Parser) (*big.Int, error) {
	n, err := p.LoadU8(5)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return big.NewInt(0), nil
	}
	return p.LoadUint(int(n) * 8)
}

func storeVarUInt32(b *cell.Builder, v *big.Int) {
	if v.Sign() == 0 {
		b.StoreU8(5, 0)
		return
	}
	n := (v.BitLen() + 7) / 8
	b.StoreU8(5, uint8(n))
	b.StoreUint(n*8, v)
}

// ReadCurrencyCollection parses a CurrencyCollection, exported so
// other TL-B types that embed one (e.g. wallet.OutActionReserveCurrency)
// don't need to round trip through a zero value's method set.
func ReadCurrencyCollection(p *cell.Parser) (CurrencyCollection, error) {
	var cc CurrencyCollection
	return cc.read(p)
}

// WriteCurrencyCollection serializes a CurrencyCollection.
func WriteCurrencyCollection(cc CurrencyCollection, b *cell.Builder) error {
	return cc.write(b)
}

func (c CurrencyCollection) read(p *cell.Parser) (CurrencyCollection, error) {
	g, err := coins.Load(p)
	if err != nil {
		return CurrencyCollection{}, err
	}
	extras := map[uint32]*big.Int{}
	err = cell.LoadDict(p, 32, func(key *big.Int, vp *cell.Parser) error {
		v, err := readVarUInt32(vp)
		if err != nil {
			return err
		}
		extras[uint32(key.Uint64())] = v
		return nil
	})
	if err != nil {
		return CurrencyCollection{}, err
	}
	return CurrencyCollection{Grams: g, Extras: extras}, nil
}

func (c CurrencyCollection) write(b *cell.Builder) error {
	c.Grams.Store(b)
	if len(c.Extras) == 0 {
		return cell.StoreDict(b, 32, nil)
	}
	entries := make([]cell.DictEntry, 0, len(c.Extras))
	for k, v := range c.Extras {
		k, v := k, v
		entries = append(entries, cell.DictEntry{
			Key: new(big.Int).SetUint64(uint64(k)),
			Write: func(eb *cell.Builder) error {
				storeVarUInt32(eb, v)
				return nil
			},
		})
	}
	return cell.StoreDict(b, 32, entries)
}

// CommonMsgInfo is the tagged union of a message's routing header:
// exactly one of Internal/ExtIn/ExtOut is set.
type CommonMsgInfo struct {
	Internal *IntMsgInfo
	ExtIn    *ExtInMsgInfo
	ExtOut   *ExtOutMsgInfo
}

type IntMsgInfo struct {
	IHRDisabled bool
	Bounce      bool
	Bounced     bool
	Src         address.MsgAddress
	Dst         address.MsgAddress
	Value       CurrencyCollection
	IHRFee      coins.Grams
	FwdFee      coins.Grams
	CreatedLT   uint64
	CreatedAt   uint32
}

type ExtInMsgInfo struct {
	Src       address.MsgAddress
	Dst       address.MsgAddressInt
	ImportFee coins.Grams
}

type ExtOutMsgInfo struct {
	Src       address.MsgAddressInt
	Dst       address.MsgAddress
	CreatedLT uint64
	CreatedAt uint32
}

func ReadCommonMsgInfo(p *cell.Parser) (CommonMsgInfo, error) {
	isExt, err := p.LoadBit()
	if err != nil {
		return CommonMsgInfo{}, err
	}
	if !isExt {
		info, err := readIntMsgInfo(p)
		if err != nil {
			return CommonMsgInfo{}, err
		}
		return CommonMsgInfo{Internal: info}, nil
	}
	isOut, err := p.LoadBit()
	if err != nil {
		return CommonMsgInfo{}, err
	}
	if !isOut {
		info, err := readExtInMsgInfo(p)
		if err != nil {
			return CommonMsgInfo{}, err
		}
		return CommonMsgInfo{ExtIn: info}, nil
	}
	info, err := readExtOutMsgInfo(p)
	if err != nil {
		return CommonMsgInfo{}, err
	}
	return CommonMsgInfo{ExtOut: info}, nil
}

func WriteCommonMsgInfo(b *cell.Builder, m CommonMsgInfo) error {
	switch {
	case m.Internal != nil:
		b.StoreBit(false)
		return writeIntMsgInfo(b, m.Internal)
	case m.ExtIn != nil:
		b.StoreBit(true)
		b.StoreBit(false)
		return writeExtInMsgInfo(b, m.ExtIn)
	case m.ExtOut != nil:
		b.StoreBit(true)
		b.StoreBit(true)
		return writeExtOutMsgInfo(b, m.ExtOut)
	default:
		return fmt.Errorf("%w: CommonMsgInfo has no variant set", cell.ErrInvalidCellData)
	}
}

func readIntMsgInfo(p *cell.Parser) (*IntMsgInfo, error) {
	ihrDisabled, err := p.LoadBit()
	if err != nil {
		return nil, err
	}
	bounce, err := p.LoadBit()
	if err != nil {
		return nil, err
	}
	bounced, err := p.LoadBit()
	if err != nil {
		return nil, err
	}
	src, err := address.ReadMsgAddress(p)
	if err != nil {
		return nil, err
	}
	dst, err := address.ReadMsgAddress(p)
	if err != nil {
		return nil, err
	}
	var cc CurrencyCollection
	value, err := cc.read(p)
	if err != nil {
		return nil, err
	}
	ihrFee, err := coins.Load(p)
	if err != nil {
		return nil, err
	}
	fwdFee, err := coins.Load(p)
	if err != nil {
		return nil, err
	}
	lt, err := p.LoadU64(64)
	if err != nil {
		return nil, err
	}
	at, err := p.LoadU32(32)
	if err != nil {
		return nil, err
	}
	return &IntMsgInfo{
		IHRDisabled: ihrDisabled, Bounce: bounce, Bounced: bounced,
		Src: src, Dst: dst, Value: value, IHRFee: ihrFee, FwdFee: fwdFee,
		CreatedLT: lt, CreatedAt: at,
	}, nil
}

func writeIntMsgInfo(b *cell.Builder, m *IntMsgInfo) error {
	b.StoreBit(m.IHRDisabled)
	b.StoreBit(m.Bounce)
	b.StoreBit(m.Bounced)
	if err := address.WriteMsgAddress(b, m.Src); err != nil {
		return err
	}
	if err := address.WriteMsgAddress(b, m.Dst); err != nil {
		return err
	}
	if err := m.Value.write(b); err != nil {
		return err
	}
	m.IHRFee.Store(b)
	m.FwdFee.Store(b)
	b.StoreU64(64, m.CreatedLT)
	b.StoreU32(32, m.CreatedAt)
	return nil
}

func readExtInMsgInfo(p *cell.Parser) (*ExtInMsgInfo, error) {
	src, err := address.ReadMsgAddress(p)
	if err != nil {
		return nil, err
	}
	dst, err := address.ReadMsgAddressInt(p)
	if err != nil {
		return nil, err
	}
	fee, err := coins.Load(p)
	if err != nil {
		return nil, err
	}
	return &ExtInMsgInfo{Src: src, Dst: dst, ImportFee: fee}, nil
}

func writeExtInMsgInfo(b *cell.Builder, m *ExtInMsgInfo) error {
	if err := address.WriteMsgAddress(b, m.Src); err != nil {
		return err
	}
	if err := address.WriteMsgAddressInt(b, m.Dst); err != nil {
		return err
	}
	m.ImportFee.Store(b)
	return nil
}

func readExtOutMsgInfo(p *cell.Parser) (*ExtOutMsgInfo, error) {
	src, err := address.ReadMsgAddressInt(p)
	if err != nil {
		return nil, err
	}
	dst, err := address.ReadMsgAddress(p)
	if err != nil {
		return nil, err
	}
	lt, err := p.LoadU64(64)
	if err != nil {
		return nil, err
	}
	at, err := p.LoadU32(32)
	if err != nil {
		return nil, err
	}
	return &ExtOutMsgInfo{Src: src, Dst: dst, CreatedLT: lt, CreatedAt: at}, nil
}

func writeExtOutMsgInfo(b *cell.Builder, m *ExtOutMsgInfo) error {
	if err := address.WriteMsgAddressInt(b, m.Src); err != nil {
		return err
	}
	if err := address.WriteMsgAddress(b, m.Dst); err != nil {
		return err
	}
	b.StoreU64(64, m.CreatedLT)
	b.StoreU32(32, m.CreatedAt)
	return nil
}
