// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package wallet

import (
	"testing"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/testtools/vectors"
)

// TestExtMsgBodyV3RoundTrip is scenario S6: a V3 body with a single
// empty-cell message at mode 3 round trips through Write/ReadExtMsgBodyV3,
// and prepending an arbitrary 64-byte signature doesn't disturb parsing
// the body that follows it.
func TestExtMsgBodyV3RoundTrip(t *testing.T) {
	emptyMsg, err := cell.New(nil, 0, nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	body := ExtMsgBodyV3{
		SubwalletID: vectors.WalletV3SubwalletID,
		ValidUntil:  vectors.WalletV3ValidUntil,
		MsgSeqno:    vectors.WalletV3MsgSeqno,
		Msgs:        []SentMessage{{Mode: 3, Msg: emptyMsg}},
	}

	b := cell.NewBuilder()
	if err := body.Write(b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	bodyCell, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	signed, err := SignBody(bodyCell, testSecretKey(t), signaturePrepend)
	if err != nil {
		t.Fatalf("SignBody: %v", err)
	}

	p := cell.NewParser(signed)
	if _, err := p.LoadSlice(512); err != nil {
		t.Fatalf("skipping signature: %v", err)
	}
	got, err := ReadExtMsgBodyV3(p, 1)
	if err != nil {
		t.Fatalf("ReadExtMsgBodyV3: %v", err)
	}

	if got.SubwalletID != body.SubwalletID || got.ValidUntil != body.ValidUntil || got.MsgSeqno != body.MsgSeqno {
		t.Fatalf("parsed body = %+v, want %+v", got, body)
	}
	if len(got.Msgs) != 1 || got.Msgs[0].Mode != 3 {
		t.Fatalf("parsed msgs = %+v, want one message at mode 3", got.Msgs)
	}
	if !got.Msgs[0].Msg.Equal(emptyMsg) {
		t.Errorf("parsed message cell does not match the original empty cell")
	}
}
