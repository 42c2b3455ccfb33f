// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package coins implements the Grams amount codec (spec §3.5/§4.I): a
// variable-width coin amount, a 4-bit byte-count prefix followed by
// that many bytes of big-endian magnitude.
package coins

import (
	"math/big"

	"github.com/tonlibgo/tonlibgo/cell"
)

// Grams is a non-negative TON amount in nanotons.
type Grams struct {
	Amount *big.Int
}

func NewGrams(v *big.Int) Grams { return Grams{Amount: v} }

func FromUint64(v uint64) Grams { return Grams{Amount: new(big.Int).SetUint64(v)} }

// Load reads a Grams value directly from a Parser, spec §4.I.
func Load(p *cell.Parser) (Grams, error) {
	v, err := p.LoadCoins()
	if err != nil {
		return Grams{}, err
	}
	return Grams{Amount: v}, nil
}

// Store writes g to b.
func (g Grams) Store(b *cell.Builder) {
	b.StoreCoins(g.Amount)
}

func (g Grams) String() string { return g.Amount.String() }
