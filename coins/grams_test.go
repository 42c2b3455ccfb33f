// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package coins

import (
	"testing"

	"github.com/tonlibgo/tonlibgo/cell"
)

// TestGramsZero is scenario S2: a zero amount serializes to a single
// 4-bit zero length prefix and parses back to zero.
func TestGramsZero(t *testing.T) {
	b := cell.NewBuilder()
	FromUint64(0).Store(b)
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.BitLen() != 4 {
		t.Fatalf("bit length = %d, want 4", c.BitLen())
	}
	if got := c.Data()[0]; got != 0x00 {
		t.Fatalf("first byte = %#02x, want 0x00", got)
	}

	p := cell.NewParser(c)
	g, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Amount.Sign() != 0 {
		t.Errorf("parsed amount = %s, want 0", g.Amount)
	}
}
