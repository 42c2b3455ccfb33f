// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/internal/tlog"
	"github.com/tonlibgo/tonlibgo/wallet"
)

var (
	signVersion      string
	signSecretKeyHex string
	signCodeHex      string
	signWorkchain    int
	signWalletID     int32
	signSeqno        uint32
	signValidUntil   uint32
	signMsgs         []string
	signModes        []int
	signIncludeInit  bool
)

var signWalletBodyCmd = &cobra.Command{
	Use:   "sign-wallet-body",
	Short: "Build and sign an external message body for a wallet contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tlog.Timed("sign-wallet-body", func() error {
			version, err := parseWalletVersion(signVersion)
			if err != nil {
				return fmt.Errorf("sign-wallet-body: %w", err)
			}
			secretKey, err := parseSecretKey(signSecretKeyHex)
			if err != nil {
				return fmt.Errorf("sign-wallet-body: %w", err)
			}
			code, err := loadCell(signCodeHex, "")
			if err != nil {
				return fmt.Errorf("sign-wallet-body: code: %w", err)
			}
			walletID := signWalletID
			if walletID == 0 {
				walletID = wallet.DefaultWalletIDFor(version)
			}
			account, err := wallet.NewAccount(version, code, secretKey, int32(signWorkchain), walletID)
			if err != nil {
				return fmt.Errorf("sign-wallet-body: %w", err)
			}
			msgs, err := parseSentMessages(signMsgs, signModes)
			if err != nil {
				return fmt.Errorf("sign-wallet-body: %w", err)
			}
			signed, err := account.BuildExternalMessage(signValidUntil, signSeqno, msgs, signIncludeInit)
			if err != nil {
				return fmt.Errorf("sign-wallet-body: %w", err)
			}
			boc := cell.SingleRoot(signed)
			hexOut, err := boc.ToBOCHex(true)
			if err != nil {
				return fmt.Errorf("sign-wallet-body: %w", err)
			}
			b64Out, err := boc.ToBOCBase64(true)
			if err != nil {
				return fmt.Errorf("sign-wallet-body: %w", err)
			}
			fmt.Println("address:", account.Address.ToHex())
			fmt.Println("hex:    ", hexOut)
			fmt.Println("base64: ", b64Out)
			return nil
		})
	},
}

func parseWalletVersion(s string) (wallet.Version, error) {
	switch strings.ToLower(s) {
	case "v2":
		return wallet.V2, nil
	case "v3":
		return wallet.V3, nil
	case "v4":
		return wallet.V4, nil
	case "v5":
		return wallet.V5, nil
	case "highloadv2r2", "highload-v2r2":
		return wallet.HighloadV2R2, nil
	default:
		return 0, fmt.Errorf("unknown wallet version %q (want v2, v3, v4, v5 or highloadv2r2)", s)
	}
}

func parseSecretKey(s string) (ed25519.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("secret key: %w", err)
	}
	switch len(raw) {
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	default:
		return nil, fmt.Errorf("secret key must be a %d-byte seed or a %d-byte expanded key, got %d bytes",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

func parseSentMessages(msgHexes []string, modes []int) ([]wallet.SentMessage, error) {
	if len(modes) != 0 && len(modes) != len(msgHexes) {
		return nil, fmt.Errorf("--mode must be given once per --msg, or not at all (got %d modes for %d messages)",
			len(modes), len(msgHexes))
	}
	out := make([]wallet.SentMessage, len(msgHexes))
	for i, h := range msgHexes {
		c, err := loadCell(h, "")
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		mode := uint8(3)
		if len(modes) != 0 {
			mode = uint8(modes[i])
		}
		out[i] = wallet.SentMessage{Mode: mode, Msg: c}
	}
	return out, nil
}

func init() {
	signWalletBodyCmd.Flags().StringVar(&signVersion, "version", "v4", "wallet contract version: v2, v3, v4, v5 or highloadv2r2 (highloadv2r2 has no body builder and fails)")
	signWalletBodyCmd.Flags().StringVar(&signSecretKeyHex, "secret-key", "", "hex-encoded ed25519 seed or expanded private key")
	signWalletBodyCmd.Flags().StringVar(&signCodeHex, "code-hex", "", "hex-encoded wallet code cell BoC")
	signWalletBodyCmd.Flags().IntVar(&signWorkchain, "workchain", 0, "workchain id")
	signWalletBodyCmd.Flags().Int32Var(&signWalletID, "wallet-id", 0, "subwallet id (0 selects the version's conventional default)")
	signWalletBodyCmd.Flags().Uint32Var(&signSeqno, "seqno", 0, "wallet sequence number")
	signWalletBodyCmd.Flags().Uint32Var(&signValidUntil, "valid-until", 0, "unix timestamp the message expires at")
	signWalletBodyCmd.Flags().StringArrayVar(&signMsgs, "msg", nil, "hex-encoded internal message cell BoC; may be repeated, up to the version's out-message limit")
	signWalletBodyCmd.Flags().IntSliceVar(&signModes, "mode", nil, "send mode for the --msg at the same position (default 3)")
	signWalletBodyCmd.Flags().BoolVar(&signIncludeInit, "include-state-init", false, "attach the wallet's StateInit for first-time deployment")
	signWalletBodyCmd.MarkFlagRequired("secret-key")
	signWalletBodyCmd.MarkFlagRequired("code-hex")
}
