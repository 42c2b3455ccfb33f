// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package tonhash defines the 32-byte hash type shared by cell hashes,
// account hashes, and public keys.
package tonhash

import (
	"encoding/hex"
	"fmt"
)

// T is any kind of 32-byte hash: a cell hash, an account hash part, or
// an Ed25519 public key. Variables of this type are passed around and
// returned by value.
type T [32]byte

// Zero is the all-zero hash, used as the null address hash part.
var Zero = T{}

// FromSlice converts a slice to a T. It returns an error if the slice
// is not exactly 32 bytes, since a silently truncated or zero-padded
// hash would corrupt cell identity.
func FromSlice(arg []byte) (T, error) {
	var r T
	if len(arg) != 32 {
		return r, fmt.Errorf("tonhash: expected 32 bytes, got %d", len(arg))
	}
	copy(r[:], arg)
	return r, nil
}

// ToSlice converts a T to a byte slice backed by its own copy.
func ToSlice(arg T) []byte {
	out := make([]byte, 32)
	copy(out, arg[:])
	return out
}

func FromHex(s string) (T, error) {
	var r T
	b, err := hex.DecodeString(s)
	if err != nil {
		return r, fmt.Errorf("tonhash: decode hex: %w", err)
	}
	return FromSlice(b)
}

func (t T) Hex() string {
	return hex.EncodeToString(t[:])
}

func (t T) String() string {
	return t.Hex()
}
