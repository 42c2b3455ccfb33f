// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package address implements TonAddress's text forms (hex, base64
// url/std) and its TL-B MsgAddress variants, layered over package
// cell's RawAddress/Builder/Parser. Grounded on
// original_source/core/src/types/address.rs.
package address

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/tonhash"
)

// Sentinel errors for the closed AddressError taxonomy described in
// spec §7, mirroring cell/errors.go's style: each wraps additional
// context via fmt.Errorf("...: %w", Err...) at the call site.
var (
	ErrLength               = errors.New("address: wrong length")
	ErrCharset              = errors.New("address: invalid charset or format")
	ErrCrcMismatch          = errors.New("address: CRC mismatch")
	ErrUnknownTagByte       = errors.New("address: unknown tag byte")
	ErrAnycastDepthOverflow = errors.New("address: anycast depth exceeds address bit length")
)

// Address is a resolved (workchain, 256-bit hash) account identifier.
type Address struct {
	Workchain int32
	Hash      tonhash.T
}

var Null = Address{}

func New(workchain int32, hash tonhash.T) Address {
	return Address{Workchain: workchain, Hash: hash}
}

func (a Address) raw() *cell.RawAddress {
	return &cell.RawAddress{Workchain: a.Workchain, Hash: a.Hash}
}

// Derive computes a contract's account address from its code and data
// cells: workchain is supplied by the caller, the hash is the cell
// hash of a StateInit built from (code, data) with every other field
// left at its empty default. This mirrors message.StateInit's own
// wire layout without importing package message, which itself depends
// on package address for MsgAddress — see DESIGN.md.
func Derive(workchain int32, code, data *cell.Cell) (Address, error) {
	b := cell.NewBuilder()
	b.StoreBit(false) // split_depth: none
	b.StoreBit(false) // tick_tock: none
	b.StoreMaybeRef(code)
	b.StoreMaybeRef(data)
	b.StoreMaybeRef(nil) // library: none
	stateInit, err := b.Build()
	if err != nil {
		return Address{}, err
	}
	return Address{Workchain: workchain, Hash: stateInit.Hash()}, nil
}

// FromHex parses the "wc:hex64" text form.
func FromHex(s string) (Address, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Address{}, fmt.Errorf("%w: invalid hex address %q: wrong format", ErrCharset, s)
	}
	wc, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid hex address %q: bad workchain", ErrCharset, s)
	}
	raw, err := hex.DecodeString(parts[1])
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid hex address %q: bad hex", ErrCharset, s)
	}
	h, err := tonhash.FromSlice(raw)
	if err != nil {
		return Address{}, fmt.Errorf("%w: invalid hex address %q: %v", ErrLength, s, err)
	}
	return Address{Workchain: int32(wc), Hash: h}, nil
}

// Flags describes the non-bounceable/testnet bits carried in an
// address's base64 tag byte.
type Flags struct {
	NonBounceable bool
	Testnet       bool
}

func tagByte(f Flags) byte {
	switch {
	case !f.Testnet && !f.NonBounceable:
		return 0x11
	case !f.Testnet && f.NonBounceable:
		return 0x51
	case f.Testnet && !f.NonBounceable:
		return 0x91
	default:
		return 0xD1
	}
}

func flagsFromTag(tag byte) (Flags, error) {
	switch tag {
	case 0x11:
		return Flags{}, nil
	case 0x51:
		return Flags{NonBounceable: true}, nil
	case 0x91:
		return Flags{Testnet: true}, nil
	case 0xD1:
		return Flags{NonBounceable: true, Testnet: true}, nil
	default:
		return Flags{}, fmt.Errorf("%w: unknown address tag byte %#02x", ErrUnknownTagByte, tag)
	}
}

func (a Address) encode36(f Flags) [36]byte {
	var buf [36]byte
	buf[0] = tagByte(f)
	buf[1] = byte(a.Workchain)
	copy(buf[2:34], a.Hash[:])
	crc := crc16XModem(buf[0:34])
	buf[34] = byte(crc >> 8)
	buf[35] = byte(crc)
	return buf
}

func decode36(buf [36]byte) (Address, Flags, error) {
	f, err := flagsFromTag(buf[0])
	if err != nil {
		return Address{}, Flags{}, err
	}
	wc := int32(int8(buf[1]))
	calc := crc16XModem(buf[0:34])
	got := uint16(buf[34])<<8 | uint16(buf[35])
	if calc != got {
		return Address{}, Flags{}, fmt.Errorf("%w: CRC mismatch", ErrCrcMismatch)
	}
	h, err := tonhash.FromSlice(buf[2:34])
	if err != nil {
		return Address{}, Flags{}, err
	}
	return Address{Workchain: wc, Hash: h}, f, nil
}

func (a Address) ToHex() string {
	return fmt.Sprintf("%d:%s", a.Workchain, a.Hash.Hex())
}

func (a Address) ToBase64URL(f Flags) string {
	buf := a.encode36(f)
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(buf[:])
}

func (a Address) ToBase64Std(f Flags) string {
	buf := a.encode36(f)
	return base64.StdEncoding.WithPadding(base64.NoPadding).EncodeToString(buf[:])
}

// String renders the default (bounceable, mainnet) URL-safe form.
func (a Address) String() string {
	return a.ToBase64URL(Flags{})
}

func decode36From(s string, enc *base64.Encoding) ([36]byte, error) {
	var out [36]byte
	if len(s) != 48 {
		return out, fmt.Errorf("%w: base64 address %q: wrong length", ErrLength, s)
	}
	raw, err := enc.WithPadding(base64.NoPadding).DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("%w: base64 address %q: decode error", ErrCharset, s)
	}
	if len(raw) != 36 {
		return out, fmt.Errorf("%w: base64 address %q: wrong decoded length", ErrLength, s)
	}
	copy(out[:], raw)
	return out, nil
}

func FromBase64URL(s string) (Address, Flags, error) {
	buf, err := decode36From(s, base64.URLEncoding)
	if err != nil {
		return Address{}, Flags{}, err
	}
	return decode36(buf)
}

func FromBase64Std(s string) (Address, Flags, error) {
	buf, err := decode36From(s, base64.StdEncoding)
	if err != nil {
		return Address{}, Flags{}, err
	}
	return decode36(buf)
}

// Parse accepts any of the three text forms, dispatching on length and
// alphabet the way original_source/core/src/types/address.rs's FromStr
// does.
func Parse(s string) (Address, error) {
	if len(s) == 48 {
		if strings.ContainsAny(s, "-_") {
			a, _, err := FromBase64URL(s)
			return a, err
		}
		a, _, err := FromBase64Std(s)
		return a, err
	}
	return FromHex(s)
}
