// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package wallet

import (
	"testing"

	"github.com/tonlibgo/tonlibgo/cell"
)

func testWalletCode(t *testing.T) *cell.Cell {
	t.Helper()
	c, err := cell.NewBuilder().StoreU8(8, 0xff).Build()
	if err != nil {
		t.Fatalf("building test code cell: %v", err)
	}
	return c
}

func TestNewAccountDerivesDistinctAddressesPerVersion(t *testing.T) {
	secretKey := testSecretKey(t)
	code := testWalletCode(t)
	seen := map[string]bool{}
	for _, v := range []Version{V2, V3, V4, V5, HighloadV2R2} {
		account, err := NewAccount(v, code, secretKey, 0, DefaultWalletIDFor(v))
		if err != nil {
			t.Fatalf("NewAccount(%d): %v", v, err)
		}
		addr := account.Address.ToHex()
		if seen[addr] {
			t.Errorf("version %d produced an address already seen: %s", v, addr)
		}
		seen[addr] = true
	}
}

func TestBuildExternalMessageForEachVersion(t *testing.T) {
	secretKey := testSecretKey(t)
	code := testWalletCode(t)
	internalMsg, err := cell.NewBuilder().StoreU8(8, 0x42).Build()
	if err != nil {
		t.Fatalf("building internal message cell: %v", err)
	}
	msgs := []SentMessage{{Mode: 3, Msg: internalMsg}}

	for _, v := range []Version{V2, V3, V4, V5, HighloadV2R2} {
		account, err := NewAccount(v, code, secretKey, 0, DefaultWalletIDFor(v))
		if err != nil {
			t.Fatalf("NewAccount(%d): %v", v, err)
		}
		if v == HighloadV2R2 {
			// HighloadV2R2's own body layout is query-id keyed, not the
			// seqno/valid-until shape BuildExternalMessage assumes for
			// the other versions; it is addressed/derived like the
			// others but not exercised through BuildExternalMessage here.
			continue
		}
		out, err := account.BuildExternalMessage(0xffffffff, 0, msgs, true)
		if err != nil {
			t.Fatalf("BuildExternalMessage(%d): %v", v, err)
		}
		if out == nil || out.BitLen() == 0 && len(out.References()) == 0 {
			t.Errorf("BuildExternalMessage(%d) produced an empty cell", v)
		}
	}
}
