// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import (
	"testing"

	"github.com/tonlibgo/tonlibgo/testtools/vectors"
)

// TestEmptyCellHash is scenario S1: a cell with 0 bits and 0 refs has
// a known, fixed hash.
func TestEmptyCellHash(t *testing.T) {
	c, err := New(nil, 0, nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Hash().Hex(); got != vectors.EmptyCellHash {
		t.Errorf("empty cell hash = %s, want %s", got, vectors.EmptyCellHash)
	}
}

func TestCellBuilderRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.StoreU32(32, 0xdeadbeef)
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := NewParser(c)
	got, err := p.LoadU32(32)
	if err != nil {
		t.Fatalf("LoadU32: %v", err)
	}
	if got != 0xdeadbeef {
		t.Errorf("round trip = %#x, want %#x", got, 0xdeadbeef)
	}
	if err := p.EnsureEmpty(); err != nil {
		t.Errorf("EnsureEmpty: %v", err)
	}
}
