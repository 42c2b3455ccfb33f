// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonlibgo/tonlibgo/address"
	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/internal/tlog"
)

var (
	deriveCodeHex    string
	deriveCodeBase64 string
	deriveDataHex    string
	deriveDataBase64 string
	deriveWorkchain  int
	deriveBounceable bool
	deriveTestnet    bool
)

var deriveAddressCmd = &cobra.Command{
	Use:   "derive-address",
	Short: "Derive a contract address from its code and initial data cells",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tlog.Timed("derive-address", func() error {
			code, err := loadCell(deriveCodeHex, deriveCodeBase64)
			if err != nil {
				return fmt.Errorf("derive-address: code: %w", err)
			}
			data, err := loadCell(deriveDataHex, deriveDataBase64)
			if err != nil {
				return fmt.Errorf("derive-address: data: %w", err)
			}
			addr, err := address.Derive(int32(deriveWorkchain), code, data)
			if err != nil {
				return fmt.Errorf("derive-address: %w", err)
			}
			flags := address.Flags{NonBounceable: !deriveBounceable, Testnet: deriveTestnet}
			fmt.Println("raw:   ", addr.ToHex())
			fmt.Println("base64:", addr.ToBase64URL(flags))
			return nil
		})
	},
}

func loadCell(hexInput, base64Input string) (*cell.Cell, error) {
	var boc *cell.BagOfCells
	var err error
	switch {
	case hexInput != "":
		boc, err = cell.ParseBOCHex(strings.TrimSpace(hexInput))
	case base64Input != "":
		boc, err = cell.ParseBOCBase64(base64Input)
	default:
		return nil, fmt.Errorf("a hex or base64 BoC is required")
	}
	if err != nil {
		return nil, err
	}
	if len(boc.Roots) != 1 {
		return nil, fmt.Errorf("expected exactly one root cell, got %d", len(boc.Roots))
	}
	return boc.Roots[0], nil
}

func init() {
	deriveAddressCmd.Flags().StringVar(&deriveCodeHex, "code-hex", "", "hex-encoded code cell BoC")
	deriveAddressCmd.Flags().StringVar(&deriveCodeBase64, "code-base64", "", "base64-encoded code cell BoC")
	deriveAddressCmd.Flags().StringVar(&deriveDataHex, "data-hex", "", "hex-encoded initial data cell BoC")
	deriveAddressCmd.Flags().StringVar(&deriveDataBase64, "data-base64", "", "base64-encoded initial data cell BoC")
	deriveAddressCmd.Flags().IntVar(&deriveWorkchain, "workchain", 0, "workchain id")
	deriveAddressCmd.Flags().BoolVar(&deriveBounceable, "bounceable", true, "encode the base64 address as bounceable")
	deriveAddressCmd.Flags().BoolVar(&deriveTestnet, "testnet", false, "encode the base64 address as testnet-only")
}
