// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package cell

import "github.com/tonlibgo/tonlibgo/tonhash"

// RawAddress is the minimal (workchain, 256-bit hash) pair the builder
// and parser deal with directly (spec §4.E/§4.D's store_address/
// load_address). It is the Std-address shape only; the richer MsgAddress
// variants (Ext, IntVar, anycast) live in package address, layered
// on top of Builder/Parser's lower-level bit primitives so that
// package cell never needs to import the text-form address package.
type RawAddress struct {
	Workchain int32
	Hash      tonhash.T
}
