// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package tlb

import (
	"testing"

	"github.com/tonlibgo/tonlibgo/cell"
)

// taggedU32 is a minimal Object with a constructor prefix, used to
// exercise Read/Write/ToCell/FromCell/ToBOC without pulling in a real
// message or wallet type.
type taggedU32 struct {
	Value uint32
}

func (t *taggedU32) Prefix() *Prefix                        { return &Prefix{BitLen: 8, Value: 0x2a} }
func (t *taggedU32) ReadDefinition(p *cell.Parser) error     { v, err := p.LoadU32(32); t.Value = v; return err }
func (t *taggedU32) WriteDefinition(b *cell.Builder) error   { b.StoreU32(32, t.Value); return nil }

func TestObjectRoundTripViaCellAndBOC(t *testing.T) {
	in := &taggedU32{Value: 0xcafef00d}

	c, err := ToCell(in)
	if err != nil {
		t.Fatalf("ToCell: %v", err)
	}
	got := &taggedU32{}
	if err := FromCell(c, got); err != nil {
		t.Fatalf("FromCell: %v", err)
	}
	if got.Value != in.Value {
		t.Errorf("FromCell round trip = %#x, want %#x", got.Value, in.Value)
	}

	hexBoc, err := ToBOCHex(in, true)
	if err != nil {
		t.Fatalf("ToBOCHex: %v", err)
	}
	got = &taggedU32{}
	if err := FromBOCHex(hexBoc, got); err != nil {
		t.Fatalf("FromBOCHex: %v", err)
	}
	if got.Value != in.Value {
		t.Errorf("FromBOCHex round trip = %#x, want %#x", got.Value, in.Value)
	}

	b64Boc, err := ToBOCBase64(in, true)
	if err != nil {
		t.Fatalf("ToBOCBase64: %v", err)
	}
	got = &taggedU32{}
	if err := FromBOCBase64(b64Boc, got); err != nil {
		t.Fatalf("FromBOCBase64: %v", err)
	}
	if got.Value != in.Value {
		t.Errorf("FromBOCBase64 round trip = %#x, want %#x", got.Value, in.Value)
	}
}

func TestObjectRejectsWrongPrefix(t *testing.T) {
	b := cell.NewBuilder()
	b.StoreU8(8, 0x00) // wrong tag, taggedU32 expects 0x2a
	b.StoreU32(32, 1)
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := FromCell(c, &taggedU32{}); err == nil {
		t.Errorf("FromCell with mismatched prefix succeeded, want an error")
	}
}

func TestEitherRoundTrip(t *testing.T) {
	newL := func() *taggedU32 { return &taggedU32{} }
	newR := func() *taggedU32 { return &taggedU32{} }

	for _, useRight := range []bool{false, true} {
		b := cell.NewBuilder()
		left := &taggedU32{Value: 1}
		right := &taggedU32{Value: 2}
		if err := WriteEither[*taggedU32, *taggedU32](b, left, right, useRight); err != nil {
			t.Fatalf("WriteEither(useRight=%v): %v", useRight, err)
		}
		c, err := b.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		p := cell.NewParser(c)
		gotL, gotR, isRight, err := ReadEither(p, newL, newR)
		if err != nil {
			t.Fatalf("ReadEither: %v", err)
		}
		if isRight != useRight {
			t.Fatalf("isRight = %v, want %v", isRight, useRight)
		}
		if useRight && gotR.Value != right.Value {
			t.Errorf("right value = %#x, want %#x", gotR.Value, right.Value)
		}
		if !useRight && gotL.Value != left.Value {
			t.Errorf("left value = %#x, want %#x", gotL.Value, left.Value)
		}
	}
}

func TestOptionRoundTrip(t *testing.T) {
	newT := func() *taggedU32 { return &taggedU32{} }

	b := cell.NewBuilder()
	if err := WriteOption[*taggedU32](b, nil, false); err != nil {
		t.Fatalf("WriteOption(absent): %v", err)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, present, err := ReadOption(cell.NewParser(c), newT)
	if err != nil {
		t.Fatalf("ReadOption(absent): %v", err)
	}
	if present {
		t.Errorf("ReadOption reported present for an absent value")
	}

	b = cell.NewBuilder()
	v := &taggedU32{Value: 7}
	if err := WriteOption[*taggedU32](b, v, true); err != nil {
		t.Fatalf("WriteOption(present): %v", err)
	}
	c, err = b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, present, err := ReadOption(cell.NewParser(c), newT)
	if err != nil {
		t.Fatalf("ReadOption(present): %v", err)
	}
	if !present || got.Value != v.Value {
		t.Errorf("ReadOption(present) = %+v present=%v, want %+v present=true", got, present, v)
	}
}

func TestRefAndEitherRefRoundTrip(t *testing.T) {
	newT := func() *taggedU32 { return &taggedU32{} }

	b := cell.NewBuilder()
	v := &taggedU32{Value: 0x99}
	if err := WriteRef[*taggedU32](b, v); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := ReadRef(cell.NewParser(c), newT)
	if err != nil {
		t.Fatalf("ReadRef: %v", err)
	}
	if got.Value != v.Value {
		t.Errorf("ReadRef = %#x, want %#x", got.Value, v.Value)
	}

	for _, layout := range []Layout{ToCellLayout, ToRefLayout} {
		b := cell.NewBuilder()
		if err := WriteEitherRef[*taggedU32](b, v, layout); err != nil {
			t.Fatalf("WriteEitherRef(layout=%v): %v", layout, err)
		}
		c, err := b.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		got, err := ReadEitherRef(cell.NewParser(c), newT)
		if err != nil {
			t.Fatalf("ReadEitherRef(layout=%v): %v", layout, err)
		}
		if got.Value != v.Value {
			t.Errorf("ReadEitherRef(layout=%v) = %#x, want %#x", layout, got.Value, v.Value)
		}
	}
}
