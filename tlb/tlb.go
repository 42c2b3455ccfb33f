// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package tlb implements the typed TL-B codec trait and its standard
// combinators, layered over package cell's bit-level Builder/Parser.
// Grounded on original_source/core/src/tlb_types/traits.rs.
package tlb

import (
	"fmt"

	"github.com/tonlibgo/tonlibgo/cell"
)

// Prefix is an optional constructor tag automatically consumed on read
// and emitted on write, e.g. a wallet body's opcode.
type Prefix struct {
	BitLen int
	Value  uint64
}

// Object is the core codec trait every typed cell layout implements.
// ReadDefinition/WriteDefinition carry the type's own body; Prefix,
// when non-nil, is handled once by the package-level Read/Write
// helpers so individual types never duplicate the prefix dance.
type Object interface {
	Prefix() *Prefix
	ReadDefinition(p *cell.Parser) error
	WriteDefinition(b *cell.Builder) error
}

// VerifyPrefix consumes and checks obj's prefix, if it has one.
func VerifyPrefix(p *cell.Parser, obj Object) error {
	pfx := obj.Prefix()
	if pfx == nil {
		return nil
	}
	got, err := p.LoadU64(pfx.BitLen)
	if err != nil {
		return err
	}
	if got != pfx.Value {
		return fmt.Errorf("%w: expected tag %#x in %d bits, got %#x", cell.ErrInvalidTLBPrefix, pfx.Value, pfx.BitLen, got)
	}
	return nil
}

// WritePrefix emits obj's prefix, if it has one.
func WritePrefix(b *cell.Builder, obj Object) {
	pfx := obj.Prefix()
	if pfx == nil {
		return
	}
	b.StoreU64(pfx.BitLen, pfx.Value)
}

// Read consumes obj's prefix (if any) then its body from p.
func Read(p *cell.Parser, obj Object) error {
	if err := VerifyPrefix(p, obj); err != nil {
		return err
	}
	return obj.ReadDefinition(p)
}

// Write emits obj's prefix (if any) then its body to b.
func Write(b *cell.Builder, obj Object) error {
	WritePrefix(b, obj)
	return obj.WriteDefinition(b)
}

// FromCell parses obj's wire form starting at c's first bit.
func FromCell(c *cell.Cell, obj Object) error {
	p := cell.NewParser(c)
	if err := Read(p, obj); err != nil {
		return err
	}
	return p.EnsureEmpty()
}

// ToCell serializes obj into a freshly built cell.
func ToCell(obj Object) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := Write(b, obj); err != nil {
		return nil, err
	}
	return b.Build()
}

// FromBOC parses a single-root BoC buffer as obj.
func FromBOC(data []byte, obj Object) error {
	boc, err := cell.ParseBOC(data)
	if err != nil {
		return err
	}
	if len(boc.Roots) != 1 {
		return fmt.Errorf("%w: expected exactly 1 root, got %d", cell.ErrInvalidCellData, len(boc.Roots))
	}
	return FromCell(boc.Roots[0], obj)
}

// FromBOCHex parses a hex-encoded single-root BoC as obj.
func FromBOCHex(s string, obj Object) error {
	boc, err := cell.ParseBOCHex(s)
	if err != nil {
		return err
	}
	if len(boc.Roots) != 1 {
		return fmt.Errorf("%w: expected exactly 1 root, got %d", cell.ErrInvalidCellData, len(boc.Roots))
	}
	return FromCell(boc.Roots[0], obj)
}

// FromBOCBase64 parses a base64-encoded single-root BoC as obj.
func FromBOCBase64(s string, obj Object) error {
	boc, err := cell.ParseBOCBase64(s)
	if err != nil {
		return err
	}
	if len(boc.Roots) != 1 {
		return fmt.Errorf("%w: expected exactly 1 root, got %d", cell.ErrInvalidCellData, len(boc.Roots))
	}
	return FromCell(boc.Roots[0], obj)
}

// ToBOC serializes obj as a single-root BoC buffer.
func ToBOC(obj Object, withCRC bool) ([]byte, error) {
	c, err := ToCell(obj)
	if err != nil {
		return nil, err
	}
	return cell.SingleRoot(c).Serialize(withCRC)
}

func ToBOCHex(obj Object, withCRC bool) (string, error) {
	c, err := ToCell(obj)
	if err != nil {
		return "", err
	}
	return cell.SingleRoot(c).ToBOCHex(withCRC)
}

func ToBOCBase64(obj Object, withCRC bool) (string, error) {
	c, err := ToCell(obj)
	if err != nil {
		return "", err
	}
	return cell.SingleRoot(c).ToBOCBase64(withCRC)
}
