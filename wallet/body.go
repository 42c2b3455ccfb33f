// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package wallet

import (
	"fmt"

	"golang.org/x/crypto/ed25519"

	"github.com/tonlibgo/tonlibgo/cell"
)

// ExtMsgBodyV2 is the unsigned external-message body for WalletVersion
// V2R1/V2R2. Grounded on
// original_source/core/src/wallet/versioned/v1_v2.rs.
type ExtMsgBodyV2 struct {
	MsgSeqno   uint32
	ValidUntil uint32
	Msgs       []SentMessage
}

// SentMessage pairs an internal message cell with the send mode it is
// dispatched under.
type SentMessage struct {
	Mode uint8
	Msg  *cell.Cell
}

func ReadExtMsgBodyV2(p *cell.Parser, msgCount int) (ExtMsgBodyV2, error) {
	seqno, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV2{}, err
	}
	validUntil, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV2{}, err
	}
	msgs, err := readUpTo4Msgs(p, msgCount)
	if err != nil {
		return ExtMsgBodyV2{}, err
	}
	return ExtMsgBodyV2{MsgSeqno: seqno, ValidUntil: validUntil, Msgs: msgs}, nil
}

func (body ExtMsgBodyV2) Write(b *cell.Builder) error {
	b.StoreU32(32, body.MsgSeqno)
	b.StoreU32(32, body.ValidUntil)
	return writeUpTo4Msgs(b, body.Msgs)
}

// ExtMsgBodyV3 is the unsigned external-message body for WalletVersion
// V3R1/V3R2. The signature is not considered part of the body.
type ExtMsgBodyV3 struct {
	SubwalletID int32
	ValidUntil  uint32
	MsgSeqno    uint32
	Msgs        []SentMessage
}

func ReadExtMsgBodyV3(p *cell.Parser, msgCount int) (ExtMsgBodyV3, error) {
	subwalletID, err := p.LoadI32(32)
	if err != nil {
		return ExtMsgBodyV3{}, err
	}
	validUntil, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV3{}, err
	}
	seqno, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV3{}, err
	}
	msgs, err := readUpTo4Msgs(p, msgCount)
	if err != nil {
		return ExtMsgBodyV3{}, err
	}
	return ExtMsgBodyV3{SubwalletID: subwalletID, ValidUntil: validUntil, MsgSeqno: seqno, Msgs: msgs}, nil
}

func (body ExtMsgBodyV3) Write(b *cell.Builder) error {
	b.StoreI32(32, body.SubwalletID)
	b.StoreU32(32, body.ValidUntil)
	b.StoreU32(32, body.MsgSeqno)
	return writeUpTo4Msgs(b, body.Msgs)
}

// ExtMsgBodyV4 is the unsigned external-message body for WalletVersion
// V4R1/V4R2. Opcode must be zero: this core only builds and accepts
// the plain (non-plugin) body shape, matching
// WalletExtMsgBodyV4::{read,write}_definition's unconditional rejection
// of any other opcode (spec.md §9 open question 3).
type ExtMsgBodyV4 struct {
	SubwalletID int32
	ValidUntil  uint32
	MsgSeqno    uint32
	Opcode      uint8
	Msgs        []SentMessage
}

func ReadExtMsgBodyV4(p *cell.Parser, msgCount int) (ExtMsgBodyV4, error) {
	subwalletID, err := p.LoadI32(32)
	if err != nil {
		return ExtMsgBodyV4{}, err
	}
	validUntil, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV4{}, err
	}
	seqno, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV4{}, err
	}
	opcode, err := p.LoadU8(8)
	if err != nil {
		return ExtMsgBodyV4{}, err
	}
	if opcode != 0 {
		return ExtMsgBodyV4{}, fmt.Errorf("%w: unsupported wallet v4 body opcode %d", cell.ErrInvalidCellData, opcode)
	}
	msgs, err := readUpTo4Msgs(p, msgCount)
	if err != nil {
		return ExtMsgBodyV4{}, err
	}
	return ExtMsgBodyV4{SubwalletID: subwalletID, ValidUntil: validUntil, MsgSeqno: seqno, Opcode: opcode, Msgs: msgs}, nil
}

func (body ExtMsgBodyV4) Write(b *cell.Builder) error {
	if body.Opcode != 0 {
		return fmt.Errorf("%w: unsupported wallet v4 body opcode %d", cell.ErrInvalidCellData, body.Opcode)
	}
	b.StoreI32(32, body.SubwalletID)
	b.StoreU32(32, body.ValidUntil)
	b.StoreU32(32, body.MsgSeqno)
	b.StoreU8(8, body.Opcode)
	return writeUpTo4Msgs(b, body.Msgs)
}

// extMsgBodyV5Opcode is the literal ASCII bytes "sign" (0x7369676e), the
// opcode every plain-signature V5 external body starts with.
const extMsgBodyV5Opcode uint32 = 0x7369676e

// ExtMsgBodyV5 is the unsigned external-message body for WalletVersion
// V5R1. Unlike the earlier versions, its action list is an OutList
// chain rather than a flat run of (mode, ref) pairs: the chain's root
// cell is inlined after the seqno (its bits and refs become the rest
// of this cell), per spec.md §4.K.
type ExtMsgBodyV5 struct {
	WalletID   int32
	ValidUntil uint32
	MsgSeqno   uint32
	Actions    OutList
}

func ReadExtMsgBodyV5(p *cell.Parser) (ExtMsgBodyV5, error) {
	opcode, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV5{}, err
	}
	if opcode != extMsgBodyV5Opcode {
		return ExtMsgBodyV5{}, fmt.Errorf("%w: unexpected wallet v5 body opcode %#x", cell.ErrInvalidCellData, opcode)
	}
	walletID, err := p.LoadI32(32)
	if err != nil {
		return ExtMsgBodyV5{}, err
	}
	validUntil, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV5{}, err
	}
	seqno, err := p.LoadU32(32)
	if err != nil {
		return ExtMsgBodyV5{}, err
	}
	remaining, err := p.LoadRemaining()
	if err != nil {
		return ExtMsgBodyV5{}, err
	}
	actions, err := ReadOutList(remaining)
	if err != nil {
		return ExtMsgBodyV5{}, err
	}
	return ExtMsgBodyV5{WalletID: walletID, ValidUntil: validUntil, MsgSeqno: seqno, Actions: actions}, nil
}

func (body ExtMsgBodyV5) Write(b *cell.Builder) error {
	b.StoreU32(32, extMsgBodyV5Opcode)
	b.StoreI32(32, body.WalletID)
	b.StoreU32(32, body.ValidUntil)
	b.StoreU32(32, body.MsgSeqno)
	actionsCell, err := body.Actions.ToCell()
	if err != nil {
		return err
	}
	b.StoreCell(actionsCell)
	return nil
}

func readUpTo4Msgs(p *cell.Parser, msgCount int) ([]SentMessage, error) {
	if msgCount > 4 {
		return nil, fmt.Errorf("%w: wallet body carries %d messages, max 4", cell.ErrInvalidCellData, msgCount)
	}
	msgs := make([]SentMessage, 0, msgCount)
	for i := 0; i < msgCount; i++ {
		mode, err := p.LoadU8(8)
		if err != nil {
			return nil, err
		}
		msg, err := p.NextReference()
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, SentMessage{Mode: mode, Msg: msg})
	}
	return msgs, nil
}

func writeUpTo4Msgs(b *cell.Builder, msgs []SentMessage) error {
	if len(msgs) > 4 {
		return fmt.Errorf("%w: wallet body carries %d messages, max 4", cell.ErrInvalidCellData, len(msgs))
	}
	for _, m := range msgs {
		b.StoreU8(8, m.Mode)
		b.StoreReference(m.Msg)
	}
	return nil
}

// signLayout controls whether the 64-byte signature is prepended
// (V1-V4) or appended (V5) to the body cell, per spec.md §4.K.
type signLayout int

const (
	signaturePrepend signLayout = iota
	signatureAppend
)

// SignBody signs body with secretKey (a 64-byte Ed25519 expanded key)
// and wraps it into a single cell: sig || body for V1-V4, body || sig
// for V5. The message hash signed is the body cell's own hash, per
// VersionHelper::sign_msg.
func SignBody(body *cell.Cell, secretKey ed25519.PrivateKey, layout signLayout) (*cell.Cell, error) {
	hash := body.Hash()
	sig := ed25519.Sign(secretKey, hash[:])

	b := cell.NewBuilder()
	switch layout {
	case signatureAppend:
		b.StoreCell(body)
		b.StoreBits(512, sig)
	default:
		b.StoreBits(512, sig)
		b.StoreCell(body)
	}
	return b.Build()
}

// SignLayoutFor returns the wire layout a given wallet version's
// signed body uses: append for V5, prepend for every earlier version.
func SignLayoutFor(isV5 bool) signLayout {
	if isV5 {
		return signatureAppend
	}
	return signaturePrepend
}
