// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/internal/tlog"
)

var (
	parseBocHex    string
	parseBocBase64 string
	parseBocFile   string
)

var parseBocCmd = &cobra.Command{
	Use:   "parse-boc",
	Short: "Parse a bag-of-cells and dump its root cells' hash, bit length and references",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tlog.Timed("parse-boc", func() error {
			boc, err := readBoc()
			if err != nil {
				return fmt.Errorf("parse-boc: %w", err)
			}
			for i, root := range boc.Roots {
				fmt.Printf("root %d:\n", i)
				dumpCell(root, 1, make(map[*cell.Cell]bool))
			}
			return nil
		})
	},
}

func readBoc() (*cell.BagOfCells, error) {
	switch {
	case parseBocHex != "":
		return cell.ParseBOCHex(strings.TrimSpace(parseBocHex))
	case parseBocBase64 != "":
		return cell.ParseBOCBase64(parseBocBase64)
	case parseBocFile != "":
		data, err := os.ReadFile(parseBocFile)
		if err != nil {
			return nil, err
		}
		return cell.ParseBOC(data)
	default:
		return nil, fmt.Errorf("one of --hex, --base64 or --file is required")
	}
}

func dumpCell(c *cell.Cell, depth int, seen map[*cell.Cell]bool) {
	indent := strings.Repeat("  ", depth)
	if seen[c] {
		fmt.Printf("%s(repeated cell %s)\n", indent, c.Hash().Hex())
		return
	}
	seen[c] = true
	fmt.Printf("%shash=%s type=%s bits=%d refs=%d depth=%d\n",
		indent, c.Hash().Hex(), c.Type(), c.BitLen(), len(c.References()), c.Depth())
	for _, ref := range c.References() {
		dumpCell(ref, depth+1, seen)
	}
}

func init() {
	parseBocCmd.Flags().StringVar(&parseBocHex, "hex", "", "hex-encoded bag-of-cells")
	parseBocCmd.Flags().StringVar(&parseBocBase64, "base64", "", "base64-encoded bag-of-cells")
	parseBocCmd.Flags().StringVar(&parseBocFile, "file", "", "path to a raw bag-of-cells file")
}
