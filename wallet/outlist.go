// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package wallet

import (
	"fmt"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/message"
	"github.com/tonlibgo/tonlibgo/tlb"
	"github.com/tonlibgo/tonlibgo/tonhash"
)

// OutAction is the tagged union of the four V5 out-actions; exactly
// one field is non-nil. Grounded on
// original_source/core/src/tlb_types/block/out_action.rs.
type OutAction struct {
	SendMsg         *OutActionSendMsg
	SetCode         *OutActionSetCode
	ReserveCurrency *OutActionReserveCurrency
	ChangeLibrary   *OutActionChangeLibrary
}

type OutActionSendMsg struct {
	Mode   uint8
	OutMsg *cell.Cell
}

func (*OutActionSendMsg) Prefix() *tlb.Prefix { return &tlb.Prefix{BitLen: 32, Value: 0x0ec3c86d} }

func (a *OutActionSendMsg) ReadDefinition(p *cell.Parser) error {
	mode, err := p.LoadU8(8)
	if err != nil {
		return err
	}
	msg, err := p.NextReference()
	if err != nil {
		return err
	}
	a.Mode, a.OutMsg = mode, msg
	return nil
}

func (a *OutActionSendMsg) WriteDefinition(b *cell.Builder) error {
	b.StoreU8(8, a.Mode)
	b.StoreReference(a.OutMsg)
	return nil
}

type OutActionSetCode struct {
	NewCode *cell.Cell
}

func (*OutActionSetCode) Prefix() *tlb.Prefix { return &tlb.Prefix{BitLen: 32, Value: 0xad4de08e} }

func (a *OutActionSetCode) ReadDefinition(p *cell.Parser) error {
	c, err := p.NextReference()
	if err != nil {
		return err
	}
	a.NewCode = c
	return nil
}

func (a *OutActionSetCode) WriteDefinition(b *cell.Builder) error {
	b.StoreReference(a.NewCode)
	return nil
}

type OutActionReserveCurrency struct {
	Mode               uint8
	CurrencyCollection message.CurrencyCollection
}

func (*OutActionReserveCurrency) Prefix() *tlb.Prefix {
	return &tlb.Prefix{BitLen: 32, Value: 0x36e6b809}
}

func (a *OutActionReserveCurrency) ReadDefinition(p *cell.Parser) error {
	mode, err := p.LoadU8(8)
	if err != nil {
		return err
	}
	cc, err := message.ReadCurrencyCollection(p)
	if err != nil {
		return err
	}
	a.Mode, a.CurrencyCollection = mode, cc
	return nil
}

func (a *OutActionReserveCurrency) WriteDefinition(b *cell.Builder) error {
	b.StoreU8(8, a.Mode)
	return message.WriteCurrencyCollection(a.CurrencyCollection, b)
}

// Library is the Either<TonHash, Ref<Cell>> payload of
// OutActionChangeLibrary: either a library's hash (to remove it) or a
// reference to its code cell (to install it).
type Library struct {
	Hash *tonhash.T
	Code *cell.Cell
}

type OutActionChangeLibrary struct {
	Mode    uint8
	Library Library
}

func (*OutActionChangeLibrary) Prefix() *tlb.Prefix {
	return &tlb.Prefix{BitLen: 32, Value: 0x26fa1dd4}
}

func (a *OutActionChangeLibrary) ReadDefinition(p *cell.Parser) error {
	mode, err := p.LoadU8(7)
	if err != nil {
		return err
	}
	isRef, err := p.LoadBit()
	if err != nil {
		return err
	}
	var lib Library
	if isRef {
		c, err := p.NextReference()
		if err != nil {
			return err
		}
		lib.Code = c
	} else {
		h, err := loadTonHash(p)
		if err != nil {
			return err
		}
		lib.Hash = &h
	}
	a.Mode, a.Library = mode, lib
	return nil
}

func (a *OutActionChangeLibrary) WriteDefinition(b *cell.Builder) error {
	b.StoreU8(7, a.Mode)
	if a.Library.Code != nil {
		b.StoreBit(true)
		b.StoreReference(a.Library.Code)
		return nil
	}
	if a.Library.Hash == nil {
		return fmt.Errorf("%w: OutActionChangeLibrary.Library has neither hash nor code set", cell.ErrInvalidCellData)
	}
	b.StoreBit(false)
	storeTonHash(b, *a.Library.Hash)
	return nil
}

func readOutAction(p *cell.Parser) (OutAction, error) {
	tag, err := p.LoadU32(32)
	if err != nil {
		return OutAction{}, err
	}
	if err := p.Seek(-32); err != nil {
		return OutAction{}, err
	}
	switch tag {
	case 0x0ec3c86d:
		v := &OutActionSendMsg{}
		if err := tlb.Read(p, v); err != nil {
			return OutAction{}, err
		}
		return OutAction{SendMsg: v}, nil
	case 0xad4de08e:
		v := &OutActionSetCode{}
		if err := tlb.Read(p, v); err != nil {
			return OutAction{}, err
		}
		return OutAction{SetCode: v}, nil
	case 0x36e6b809:
		v := &OutActionReserveCurrency{}
		if err := tlb.Read(p, v); err != nil {
			return OutAction{}, err
		}
		return OutAction{ReserveCurrency: v}, nil
	case 0x26fa1dd4:
		v := &OutActionChangeLibrary{}
		if err := tlb.Read(p, v); err != nil {
			return OutAction{}, err
		}
		return OutAction{ChangeLibrary: v}, nil
	default:
		return OutAction{}, fmt.Errorf("%w: unexpected OutAction tag %#x", cell.ErrInvalidTLBPrefix, tag)
	}
}

func writeOutAction(b *cell.Builder, a OutAction) error {
	switch {
	case a.SendMsg != nil:
		return tlb.Write(b, a.SendMsg)
	case a.SetCode != nil:
		return tlb.Write(b, a.SetCode)
	case a.ReserveCurrency != nil:
		return tlb.Write(b, a.ReserveCurrency)
	case a.ChangeLibrary != nil:
		return tlb.Write(b, a.ChangeLibrary)
	default:
		return fmt.Errorf("%w: OutAction has no variant set", cell.ErrInvalidCellData)
	}
}

// OutList is the recursive chain of up-to-255 out-actions V5 external
// messages carry: each node holds a reference to the previous (older)
// action and the action itself, so the root holds the newest action and
// action i of n sits n-1-i refs below the root. An empty chain is the
// empty cell.
type OutList struct {
	actions []OutAction
}

// NewOutList builds the chain for actions in execution order (actions
// run oldest-to-newest, i.e. actions[0] first).
func NewOutList(actions []OutAction) (OutList, error) {
	if len(actions) > 255 {
		return OutList{}, fmt.Errorf("%w: OutList supports at most 255 actions, got %d", cell.ErrInvalidCellData, len(actions))
	}
	return OutList{actions: actions}, nil
}

func (l OutList) Actions() []OutAction { return append([]OutAction(nil), l.actions...) }

// ToCell serializes the chain, recursing tail-first so each node's
// ref points at the cell built for every earlier action.
func (l OutList) ToCell() (*cell.Cell, error) {
	if len(l.actions) == 0 {
		return cell.Empty(), nil
	}
	prev, err := OutList{actions: l.actions[:len(l.actions)-1]}.ToCell()
	if err != nil {
		return nil, err
	}
	b := cell.NewBuilder()
	b.StoreReference(prev)
	if err := writeOutAction(b, l.actions[len(l.actions)-1]); err != nil {
		return nil, err
	}
	return b.Build()
}

// ReadOutList parses an OutList chain starting at c.
func ReadOutList(c *cell.Cell) (OutList, error) {
	var actions []OutAction
	for c.BitLen() != 0 || len(c.References()) != 0 {
		p := cell.NewParser(c)
		prev, err := p.NextReference()
		if err != nil {
			return OutList{}, err
		}
		action, err := readOutAction(p)
		if err != nil {
			return OutList{}, err
		}
		actions = append(actions, action)
		c = prev
	}
	// actions were collected outermost-first (newest action read
	// first, since each node nests its predecessor by ref); reverse
	// to restore execution order.
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return OutList{actions: actions}, nil
}
