// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package message implements the Message/CommonMsgInfo/StateInit TL-B
// layouts (spec §3.6/§3.7/§4.J), built on package address for
// MsgAddress and package tlb for the combinator plumbing. Grounded on
// original_source/core/src/tlb_types/block/state_init.rs.
package message

import (
	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/tlb"
)

// TickTock is StateInit's optional tick/tock special-contract flag
// pair.
type TickTock struct {
	Tick bool
	Tock bool
}

func (*TickTock) Prefix() *tlb.Prefix { return nil }

func (t *TickTock) ReadDefinition(p *cell.Parser) error {
	tick, err := p.LoadBit()
	if err != nil {
		return err
	}
	tock, err := p.LoadBit()
	if err != nil {
		return err
	}
	t.Tick, t.Tock = tick, tock
	return nil
}

func (t *TickTock) WriteDefinition(b *cell.Builder) error {
	b.StoreBit(t.Tick)
	b.StoreBit(t.Tock)
	return nil
}

// StateInit is a contract's deployment record: its code, initial
// data, and rarely-used split-depth/tick-tock/library fields. A
// contract's on-chain address is the hash of its StateInit cell (see
// address.Derive).
type StateInit struct {
	SplitDepth *uint8
	TickTock   *TickTock
	Code       *cell.Cell
	Data       *cell.Cell
	Library    *cell.Cell
}

// NewStateInit builds the common case: code and data set, every other
// field at its empty default.
func NewStateInit(code, data *cell.Cell) *StateInit {
	return &StateInit{Code: code, Data: data}
}

func (*StateInit) Prefix() *tlb.Prefix { return nil }

func newTickTock() *TickTock { return &TickTock{} }

func (s *StateInit) ReadDefinition(p *cell.Parser) error {
	present, err := p.LoadBit()
	if err != nil {
		return err
	}
	var splitDepth *uint8
	if present {
		v, err := p.LoadU8(5)
		if err != nil {
			return err
		}
		splitDepth = &v
	}

	tickTock, _, err := tlb.ReadOption(p, newTickTock)
	if err != nil {
		return err
	}
	code, _, err := readOptionRefCell(p)
	if err != nil {
		return err
	}
	data, _, err := readOptionRefCell(p)
	if err != nil {
		return err
	}
	library, _, err := readOptionRefCell(p)
	if err != nil {
		return err
	}

	s.SplitDepth, s.TickTock, s.Code, s.Data, s.Library = splitDepth, tickTock, code, data, library
	return nil
}

func (s *StateInit) WriteDefinition(b *cell.Builder) error {
	b.StoreBit(s.SplitDepth != nil)
	if s.SplitDepth != nil {
		b.StoreU8(5, *s.SplitDepth)
	}
	if err := tlb.WriteOption(b, s.TickTock, s.TickTock != nil); err != nil {
		return err
	}
	b.StoreMaybeRef(s.Code)
	b.StoreMaybeRef(s.Data)
	b.StoreMaybeRef(s.Library)
	return nil
}

// readOptionRefCell reads an OptionRef<Cell> directly, since a raw
// *cell.Cell has no TLB body of its own to dispatch through.
func readOptionRefCell(p *cell.Parser) (*cell.Cell, bool, error) {
	c, err := p.LoadMaybeRef()
	if err != nil {
		return nil, false, err
	}
	return c, c != nil, nil
}
