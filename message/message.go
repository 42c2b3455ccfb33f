// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package message

import (
	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/tlb"
)

// Message is a full on-chain message: a routing header, an optional
// StateInit (for deploying messages), and a body, per spec §4.J.
type Message struct {
	Info CommonMsgInfo
	Init *StateInit
	Body *cell.Cell

	// BodyLayout controls how Body is written; it has no effect on
	// reading, which always accepts either form.
	BodyLayout cell.EitherLayout
}

func newStateInit() *StateInit { return &StateInit{} }

func ReadMessage(p *cell.Parser) (*Message, error) {
	info, err := ReadCommonMsgInfo(p)
	if err != nil {
		return nil, err
	}
	init, _, err := tlb.ReadOptionRef(p, newStateInit)
	if err != nil {
		return nil, err
	}
	body, err := p.LoadEitherCellOrRef()
	if err != nil {
		return nil, err
	}
	return &Message{Info: info, Init: init, Body: body}, nil
}

func WriteMessage(b *cell.Builder, m *Message) error {
	if err := WriteCommonMsgInfo(b, m.Info); err != nil {
		return err
	}
	if err := tlb.WriteOptionRef(b, m.Init, m.Init != nil); err != nil {
		return err
	}
	body := m.Body
	if body == nil {
		body = cell.Empty()
	}
	b.StoreEitherCellOrRef(body, m.BodyLayout)
	return nil
}

// ToCell serializes m into a freshly built cell.
func (m *Message) ToCell() (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := WriteMessage(b, m); err != nil {
		return nil, err
	}
	return b.Build()
}

// FromCell parses a Message starting at c's first bit.
func FromCell(c *cell.Cell) (*Message, error) {
	p := cell.NewParser(c)
	m, err := ReadMessage(p)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureEmpty(); err != nil {
		return nil, err
	}
	return m, nil
}
