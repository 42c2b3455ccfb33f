// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package wallet implements the on-chain wallet data records and
// signed external-message bodies for the closed set of wallet
// versions spec.md §3.8/§4.K names. Grounded on
// original_source/core/src/wallet/wallet_data/{v1_v2,v3,v4,v5}.rs and
// versioned/highload_v2.rs.
package wallet

import (
	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/tonhash"
)

// DefaultWalletID is the subwallet id every wallet version but V5
// defaults to absent an explicit choice.
const DefaultWalletID int32 = 698983191

// DefaultWalletIDV5R1 is V5's distinct default subwallet id.
const DefaultWalletIDV5R1 int32 = -2147483643

// DataV1V2 is the on-chain data cell for WalletVersion V1R1..V2R2.
type DataV1V2 struct {
	Seqno     uint32
	PublicKey tonhash.T
}

func NewDataV1V2(publicKey tonhash.T) DataV1V2 {
	return DataV1V2{PublicKey: publicKey}
}

func ReadDataV1V2(p *cell.Parser) (DataV1V2, error) {
	seqno, err := p.LoadU32(32)
	if err != nil {
		return DataV1V2{}, err
	}
	pk, err := loadTonHash(p)
	if err != nil {
		return DataV1V2{}, err
	}
	return DataV1V2{Seqno: seqno, PublicKey: pk}, nil
}

func (d DataV1V2) Write(b *cell.Builder) {
	b.StoreU32(32, d.Seqno)
	storeTonHash(b, d.PublicKey)
}

// DataV3 is the on-chain data cell for WalletVersion V3R1/V3R2.
type DataV3 struct {
	Seqno     uint32
	WalletID  int32
	PublicKey tonhash.T
}

func NewDataV3(walletID int32, publicKey tonhash.T) DataV3 {
	return DataV3{WalletID: walletID, PublicKey: publicKey}
}

func ReadDataV3(p *cell.Parser) (DataV3, error) {
	seqno, err := p.LoadU32(32)
	if err != nil {
		return DataV3{}, err
	}
	wid, err := p.LoadI32(32)
	if err != nil {
		return DataV3{}, err
	}
	pk, err := loadTonHash(p)
	if err != nil {
		return DataV3{}, err
	}
	return DataV3{Seqno: seqno, WalletID: wid, PublicKey: pk}, nil
}

func (d DataV3) Write(b *cell.Builder) {
	b.StoreU32(32, d.Seqno)
	b.StoreI32(32, d.WalletID)
	storeTonHash(b, d.PublicKey)
}

// DataV4 is the on-chain data cell for WalletVersion V4R1/V4R2.
type DataV4 struct {
	Seqno     uint32
	WalletID  int32
	PublicKey tonhash.T
	Plugins   *cell.Cell
}

func NewDataV4(walletID int32, publicKey tonhash.T) DataV4 {
	return DataV4{WalletID: walletID, PublicKey: publicKey}
}

func ReadDataV4(p *cell.Parser) (DataV4, error) {
	seqno, err := p.LoadU32(32)
	if err != nil {
		return DataV4{}, err
	}
	wid, err := p.LoadI32(32)
	if err != nil {
		return DataV4{}, err
	}
	pk, err := loadTonHash(p)
	if err != nil {
		return DataV4{}, err
	}
	plugins, err := p.LoadMaybeRef()
	if err != nil {
		return DataV4{}, err
	}
	return DataV4{Seqno: seqno, WalletID: wid, PublicKey: pk, Plugins: plugins}, nil
}

func (d DataV4) Write(b *cell.Builder) {
	b.StoreU32(32, d.Seqno)
	b.StoreI32(32, d.WalletID)
	storeTonHash(b, d.PublicKey)
	b.StoreMaybeRef(d.Plugins)
}

// DataV5 is the on-chain data cell for WalletVersion V5R1, which adds
// a signature_allowed flag ahead of the V4 layout.
type DataV5 struct {
	SignatureAllowed bool
	Seqno            uint32
	WalletID         int32
	PublicKey        tonhash.T
	Plugins          *cell.Cell
}

func NewDataV5(walletID int32, publicKey tonhash.T) DataV5 {
	return DataV5{SignatureAllowed: true, WalletID: walletID, PublicKey: publicKey}
}

func ReadDataV5(p *cell.Parser) (DataV5, error) {
	allowed, err := p.LoadBit()
	if err != nil {
		return DataV5{}, err
	}
	seqno, err := p.LoadU32(32)
	if err != nil {
		return DataV5{}, err
	}
	wid, err := p.LoadI32(32)
	if err != nil {
		return DataV5{}, err
	}
	pk, err := loadTonHash(p)
	if err != nil {
		return DataV5{}, err
	}
	plugins, err := p.LoadMaybeRef()
	if err != nil {
		return DataV5{}, err
	}
	return DataV5{SignatureAllowed: allowed, Seqno: seqno, WalletID: wid, PublicKey: pk, Plugins: plugins}, nil
}

func (d DataV5) Write(b *cell.Builder) {
	b.StoreBit(d.SignatureAllowed)
	b.StoreU32(32, d.Seqno)
	b.StoreI32(32, d.WalletID)
	storeTonHash(b, d.PublicKey)
	b.StoreMaybeRef(d.Plugins)
}

// DataHighloadV2R2 is the on-chain data cell for WalletVersion
// HighloadV2R2.
type DataHighloadV2R2 struct {
	WalletID        int32
	LastCleanedTime uint64
	PublicKey       tonhash.T
	Queries         *cell.Cell
}

func NewDataHighloadV2R2(walletID int32, publicKey tonhash.T) DataHighloadV2R2 {
	return DataHighloadV2R2{WalletID: walletID, PublicKey: publicKey}
}

func ReadDataHighloadV2R2(p *cell.Parser) (DataHighloadV2R2, error) {
	wid, err := p.LoadI32(32)
	if err != nil {
		return DataHighloadV2R2{}, err
	}
	lastCleaned, err := p.LoadU64(64)
	if err != nil {
		return DataHighloadV2R2{}, err
	}
	pk, err := loadTonHash(p)
	if err != nil {
		return DataHighloadV2R2{}, err
	}
	// queries is an opaque OptionRef<Cell>, not further decoded: its
	// contents are an implementation-specific dedup structure the
	// wallet contract maintains for replay protection, out of scope
	// here (spec.md §9 open question 4).
	queries, err := p.LoadMaybeRef()
	if err != nil {
		return DataHighloadV2R2{}, err
	}
	return DataHighloadV2R2{WalletID: wid, LastCleanedTime: lastCleaned, PublicKey: pk, Queries: queries}, nil
}

func (d DataHighloadV2R2) Write(b *cell.Builder) {
	b.StoreI32(32, d.WalletID)
	b.StoreU64(64, d.LastCleanedTime)
	storeTonHash(b, d.PublicKey)
	b.StoreMaybeRef(d.Queries)
}

func loadTonHash(p *cell.Parser) (tonhash.T, error) {
	raw, err := p.LoadSlice(256)
	if err != nil {
		return tonhash.T{}, err
	}
	return tonhash.FromSlice(raw)
}

func storeTonHash(b *cell.Builder, h tonhash.T) {
	b.StoreBits(256, tonhash.ToSlice(h))
}
