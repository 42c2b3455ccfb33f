// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package vectors holds the golden values spec.md §8.3 names (S1-S7),
// shared by the package-level tests that exercise each scenario.
// Generalizes testtools/genblocks' role as the module's test-data
// source, over cell/BoC fixtures instead of fake Zcash blocks.
package vectors

// S1: an empty cell (0 bits, 0 refs) hashes to this value.
const EmptyCellHash = "96a296d224f285c67bee93c30f8a309157f0daa35dc5b87e410b78630a09cfc7"

// S3: a known bounceable mainnet address in its URL-safe and standard
// base64 forms, plus its decoded workchain/hash.
const (
	AddressBase64URL = "EQDk2VTvn04SUKJrW7rXahzdF8_Qi6utb0wj43InCu9vdjrR"
	AddressBase64Std = "EQDk2VTvn04SUKJrW7rXahzdF8/Qi6utb0wj43InCu9vdjrR"
	AddressWorkchain = int32(0)
	AddressHashHex   = "e4d954ef9f4e1250a26b5bbad76a1cdd17cfd08babad6f4c23e372270aef6f76"
)

// S4: the expected serialized form of a 3-entry, n=8, 150-bit-value
// dict built from {0, 1, 2} -> {2596560304e10, 5173255344e8, 344883687e8}.
const DictThreeEntryBoCBase64 = "te6cckEBBgEAWgABGccNPKUADZm5MepOjMABAgHNAgMCASAEBQAnQAAAAAAAAAAAAAABMlF4tR2RgCAAJgAAAAAAAAAAAAABaFhaZZhr6AAAJgAAAAAAAAAAAAAAR8sYU4eC4AA1PIC5"

// S5: a known 1-cell wallet code BoC, used as Derive's code argument.
const ContractCodeBoCHex = "b5ee9c7201010101002300084202a9338ecd624ca15d37e4a8d9bf677ddc9b84f0e98f05f2fb84c7afe332a281b4"

// S5: the expected derived address for ContractCodeBoCHex paired with
// the vector's (unspecified beyond shape) 3-ref data cell, workchain 0.
const ContractAddressBase64URL = "EQAdltEfzXG_xteLFaKFGd-HPVKrEJqv_FdC7z2roOddRNdM"

// S6: the wallet V3 body fields the scenario fixes.
const (
	WalletV3SubwalletID = int32(0x29a9a317)
	WalletV3ValidUntil  = uint32(0xffffffff)
	WalletV3MsgSeqno    = uint32(0)
)

// S7: the OutList scenario's action count.
const OutListActionCount = 10
