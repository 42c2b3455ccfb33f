// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package wallet

import (
	"testing"

	"golang.org/x/crypto/ed25519"
)

// testSecretKey returns a fixed ed25519 key for tests that need a
// signature but don't care whose.
func testSecretKey(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	var seed [ed25519.SeedSize]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	return ed25519.NewKeyFromSeed(seed[:])
}
