// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridable at link time via -ldflags, the way the
// teacher stamps common.Version/GitCommit/BuildDate/BuildUser.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display tonboc version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tonboc version", Version)
	},
}
