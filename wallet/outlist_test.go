// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package wallet

import (
	"testing"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/testtools/vectors"
)

// TestOutListRoundTrip is scenario S7: 10 distinct send-msg actions
// with ascending modes survive NewOutList -> ToCell -> ReadOutList in
// their original order.
func TestOutListRoundTrip(t *testing.T) {
	const n = vectors.OutListActionCount
	actions := make([]OutAction, n)
	for i := 0; i < n; i++ {
		msg, err := cell.NewBuilder().StoreU8(8, uint8(i)).Build()
		if err != nil {
			t.Fatalf("building message %d: %v", i, err)
		}
		actions[i] = OutAction{SendMsg: &OutActionSendMsg{Mode: uint8(i), OutMsg: msg}}
	}

	list, err := NewOutList(actions)
	if err != nil {
		t.Fatalf("NewOutList: %v", err)
	}
	c, err := list.ToCell()
	if err != nil {
		t.Fatalf("ToCell: %v", err)
	}
	got, err := ReadOutList(c)
	if err != nil {
		t.Fatalf("ReadOutList: %v", err)
	}

	gotActions := got.Actions()
	if len(gotActions) != n {
		t.Fatalf("parsed %d actions, want %d", len(gotActions), n)
	}
	for i, a := range gotActions {
		if a.SendMsg == nil {
			t.Fatalf("action %d: not a SendMsg variant", i)
		}
		if a.SendMsg.Mode != uint8(i) {
			t.Errorf("action %d: mode = %d, want %d", i, a.SendMsg.Mode, i)
		}
		if !a.SendMsg.OutMsg.Equal(actions[i].SendMsg.OutMsg) {
			t.Errorf("action %d: message cell does not match original", i)
		}
	}
}

func TestOutListEmpty(t *testing.T) {
	list, err := NewOutList(nil)
	if err != nil {
		t.Fatalf("NewOutList: %v", err)
	}
	c, err := list.ToCell()
	if err != nil {
		t.Fatalf("ToCell: %v", err)
	}
	if c.BitLen() != 0 || len(c.References()) != 0 {
		t.Fatalf("empty OutList cell = bits=%d refs=%d, want 0/0", c.BitLen(), len(c.References()))
	}
	got, err := ReadOutList(c)
	if err != nil {
		t.Fatalf("ReadOutList: %v", err)
	}
	if len(got.Actions()) != 0 {
		t.Errorf("parsed %d actions from empty list, want 0", len(got.Actions()))
	}
}
