// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package message

import (
	"testing"

	"github.com/tonlibgo/tonlibgo/address"
	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/coins"
)

func TestMessageRoundTripWithStateInitAndInlineBody(t *testing.T) {
	code, err := cell.NewBuilder().StoreU8(8, 1).Build()
	if err != nil {
		t.Fatalf("building code cell: %v", err)
	}
	data, err := cell.NewBuilder().StoreU8(8, 2).Build()
	if err != nil {
		t.Fatalf("building data cell: %v", err)
	}
	body, err := cell.NewBuilder().StoreU32(32, 0x11223344).Build()
	if err != nil {
		t.Fatalf("building body cell: %v", err)
	}

	dst := address.MsgAddressInt{Std: &address.MsgAddrIntStd{Workchain: 0, Address: make([]byte, 32)}}
	m := &Message{
		Info: CommonMsgInfo{ExtIn: &ExtInMsgInfo{
			Src:       address.NoneAddress,
			Dst:       dst,
			ImportFee: coins.FromUint64(0),
		}},
		Init:       NewStateInit(code, data),
		Body:       body,
		BodyLayout: cell.Native,
	}

	c, err := m.ToCell()
	if err != nil {
		t.Fatalf("ToCell: %v", err)
	}
	got, err := FromCell(c)
	if err != nil {
		t.Fatalf("FromCell: %v", err)
	}

	if got.Info.ExtIn == nil {
		t.Fatalf("parsed message has no ExtIn info")
	}
	if got.Init == nil || got.Init.Code == nil || !got.Init.Code.Equal(code) {
		t.Errorf("parsed StateInit code does not match original")
	}
	if got.Init.Data == nil || !got.Init.Data.Equal(data) {
		t.Errorf("parsed StateInit data does not match original")
	}
	if got.Body == nil || !got.Body.Equal(body) {
		t.Errorf("parsed body does not match original")
	}
}

func TestMessageRoundTripWithRefBody(t *testing.T) {
	body, err := cell.NewBuilder().StoreBits(900, make([]byte, 113)).Build()
	if err != nil {
		t.Fatalf("building large body cell: %v", err)
	}
	m := &Message{
		Info: CommonMsgInfo{ExtIn: &ExtInMsgInfo{
			Src:       address.NoneAddress,
			Dst:       address.MsgAddressInt{Std: &address.MsgAddrIntStd{Workchain: 0, Address: make([]byte, 32)}},
			ImportFee: coins.FromUint64(0),
		}},
		Body:       body,
		BodyLayout: cell.ToRef,
	}

	c, err := m.ToCell()
	if err != nil {
		t.Fatalf("ToCell: %v", err)
	}
	got, err := FromCell(c)
	if err != nil {
		t.Fatalf("FromCell: %v", err)
	}
	if got.Body == nil || !got.Body.Equal(body) {
		t.Errorf("parsed ref-layout body does not match original")
	}
}
