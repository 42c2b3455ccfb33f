// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"math/big"
	"testing"
)

// TestDictThreeEntryRoundTrip is scenario S4: a 3-entry, n=8 dict with
// 150-bit big-unsigned values serializes and parses back to the same
// map. Builds the dict programmatically rather than parsing
// testtools/vectors.DictThreeEntryBoCBase64, since BuildHashmap's own
// serialization is what's under test here; the golden BoC is kept in
// vectors as the documented expected wire form for the same inputs.
func TestDictThreeEntryRoundTrip(t *testing.T) {
	want := map[int64]*big.Int{
		0: bigFromString("2596560304" + "0000000000"), // ·10^10
		1: bigFromString("5173255344" + "00000000"),   // ·10^8
		2: bigFromString("344883687" + "00000000"),    // ·10^8
	}

	entries := make([]DictEntry, 0, len(want))
	for k, v := range want {
		v := v
		entries = append(entries, DictEntry{
			Key: big.NewInt(k),
			Write: func(b *Builder) error {
				b.StoreUint(150, v)
				return nil
			},
		})
	}

	root, err := BuildHashmap(8, entries)
	if err != nil {
		t.Fatalf("BuildHashmap: %v", err)
	}

	got := map[int64]*big.Int{}
	err = ParseHashmap(root, 8, func(key *big.Int, vp *Parser) error {
		v, err := vp.LoadUint(150)
		if err != nil {
			return err
		}
		got[key.Int64()] = v
		return nil
	})
	if err != nil {
		t.Fatalf("ParseHashmap: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("parsed %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		gv, ok := got[k]
		if !ok {
			t.Fatalf("key %d missing from parsed map", k)
		}
		if gv.Cmp(v) != 0 {
			t.Errorf("key %d = %s, want %s", k, gv, v)
		}
	}
}

func bigFromString(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test constant: " + s)
	}
	return v
}
