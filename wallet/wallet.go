// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package wallet

import (
	"fmt"

	"golang.org/x/crypto/ed25519"

	"github.com/tonlibgo/tonlibgo/address"
	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/coins"
	"github.com/tonlibgo/tonlibgo/message"
	"github.com/tonlibgo/tonlibgo/tonhash"
)

// Version identifies one of the closed set of on-chain wallet
// contracts this package builds records and bodies for.
type Version int

const (
	V2 Version = iota
	V3
	V4
	V5
	HighloadV2R2
)

// Account ties a key pair to its on-chain wallet contract: the
// version-specific data/code cells, the derived address, and the
// subwallet id baked into every signed body. Grounded on
// original_source/core/src/wallet/ton_wallet.rs's TonWallet.
type Account struct {
	Version   Version
	PublicKey tonhash.T
	SecretKey ed25519.PrivateKey
	Workchain int32
	WalletID  int32
	Code      *cell.Cell
	Address   address.Address
}

// NewAccount derives an Account's address from its version's code and
// initial data cell, given a wallet contract's code (supplied by the
// caller — this package does not embed the wallet code blobs).
func NewAccount(version Version, code *cell.Cell, secretKey ed25519.PrivateKey, workchain int32, walletID int32) (Account, error) {
	if len(secretKey) != ed25519.PrivateKeySize {
		return Account{}, fmt.Errorf("wallet: secret key must be %d bytes, got %d", ed25519.PrivateKeySize, len(secretKey))
	}
	pub, err := tonhash.FromSlice(secretKey.Public().(ed25519.PublicKey))
	if err != nil {
		return Account{}, err
	}
	data, err := initialDataCell(version, walletID, pub)
	if err != nil {
		return Account{}, err
	}
	addr, err := address.Derive(workchain, code, data)
	if err != nil {
		return Account{}, err
	}
	return Account{
		Version: version, PublicKey: pub, SecretKey: secretKey,
		Workchain: workchain, WalletID: walletID, Code: code, Address: addr,
	}, nil
}

// DefaultWalletIDFor returns the conventional subwallet id for
// version: V5 defaults to DefaultWalletIDV5R1, every other version to
// DefaultWalletID.
func DefaultWalletIDFor(version Version) int32 {
	if version == V5 {
		return DefaultWalletIDV5R1
	}
	return DefaultWalletID
}

func initialDataCell(version Version, walletID int32, pub tonhash.T) (*cell.Cell, error) {
	b := cell.NewBuilder()
	switch version {
	case V2:
		NewDataV1V2(pub).Write(b)
	case V3:
		NewDataV3(walletID, pub).Write(b)
	case V4:
		NewDataV4(walletID, pub).Write(b)
	case V5:
		NewDataV5(walletID, pub).Write(b)
	case HighloadV2R2:
		NewDataHighloadV2R2(walletID, pub).Write(b)
	default:
		return nil, fmt.Errorf("wallet: unsupported version %d", version)
	}
	return b.Build()
}

// BuildExternalMessage produces a fully signed external-in message
// cell for sending msgs out of a as a batch: it builds a's
// version-specific body (at most 4 outgoing messages for V2-V4, up to
// 255 via an OutList for V5), signs it, and wraps it in a
// CommonMsgInfo::ExtIn envelope addressed at a, optionally attaching
// a's StateInit for first-time deployment. HighloadV2R2 has no body
// builder here: for that version it returns an error. Grounded on
// TonWallet::create_external_msg/wrap_signed_body.
func (a Account) BuildExternalMessage(validUntil, seqno uint32, msgs []SentMessage, includeStateInit bool) (*cell.Cell, error) {
	body, err := a.buildBody(validUntil, seqno, msgs)
	if err != nil {
		return nil, err
	}
	signed, err := SignBody(body, a.SecretKey, SignLayoutFor(a.Version == V5))
	if err != nil {
		return nil, err
	}

	m := &message.Message{
		Info: message.CommonMsgInfo{ExtIn: &message.ExtInMsgInfo{
			Src:       address.NoneAddress,
			Dst:       address.MsgAddressInt{Std: a.Address.ToMsgAddress().IntStd},
			ImportFee: coins.FromUint64(0),
		}},
		Body:       signed,
		BodyLayout: cell.Native,
	}
	if includeStateInit {
		data, err := initialDataCell(a.Version, a.WalletID, a.PublicKey)
		if err != nil {
			return nil, err
		}
		m.Init = message.NewStateInit(a.Code, data)
	}
	return m.ToCell()
}

func (a Account) buildBody(validUntil, seqno uint32, msgs []SentMessage) (*cell.Cell, error) {
	b := cell.NewBuilder()
	var err error
	switch a.Version {
	case V2:
		err = ExtMsgBodyV2{MsgSeqno: seqno, ValidUntil: validUntil, Msgs: msgs}.Write(b)
	case V3:
		err = ExtMsgBodyV3{SubwalletID: a.WalletID, ValidUntil: validUntil, MsgSeqno: seqno, Msgs: msgs}.Write(b)
	case V4:
		err = ExtMsgBodyV4{SubwalletID: a.WalletID, ValidUntil: validUntil, MsgSeqno: seqno, Msgs: msgs}.Write(b)
	case V5:
		actions := make([]OutAction, len(msgs))
		for i, m := range msgs {
			actions[i] = OutAction{SendMsg: &OutActionSendMsg{Mode: m.Mode, OutMsg: m.Msg}}
		}
		list, lerr := NewOutList(actions)
		if lerr != nil {
			return nil, lerr
		}
		err = ExtMsgBodyV5{WalletID: a.WalletID, ValidUntil: validUntil, MsgSeqno: seqno, Actions: list}.Write(b)
	default:
		return nil, fmt.Errorf("wallet: unsupported version %d", a.Version)
	}
	if err != nil {
		return nil, err
	}
	return b.Build()
}
