// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package main implements tonboc, a small CLI over this module's cell,
// address and wallet packages. Grounded on the teacher's cmd/root.go:
// a cobra root command whose persistent flags are bound into viper, a
// config file read by cobra.OnInitialize, and a side HTTP listener
// serving prometheus metrics.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tonlibgo/tonlibgo/internal/tlog"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tonboc",
	Short: "tonboc inspects and builds TON cells, bags-of-cells and wallet messages",
	Long: `tonboc is a command-line front end over this module's cell/BoC codec,
address derivation and wallet message builder.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseBocCmd)
	rootCmd.AddCommand(deriveAddressCmd)
	rootCmd.AddCommand(signWalletBodyCmd)
	rootCmd.AddCommand(serveEmulatorStubCmd)
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is current directory, tonboc.yaml)")
	rootCmd.PersistentFlags().String("http-bind-addr", "127.0.0.1:9098", "address to serve /metrics on")
	rootCmd.PersistentFlags().Bool("log-to-stderr", false, "log operation timing/errors to stderr")

	viper.BindPFlag("http-bind-addr", rootCmd.PersistentFlags().Lookup("http-bind-addr"))
	viper.SetDefault("http-bind-addr", "127.0.0.1:9098")
	viper.BindPFlag("log-to-stderr", rootCmd.PersistentFlags().Lookup("log-to-stderr"))
	viper.SetDefault("log-to-stderr", false)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
}

// initConfig reads in config file and ENV variables if set, then wires
// the bound flags into this module's own globals (tlog.ToStderr, the
// metrics listener), the way the teacher's initConfig wires
// common.DonationAddress.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("tonboc")
	}

	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	tlog.ToStderr = viper.GetBool("log-to-stderr")

	go startHTTPServer(viper.GetString("http-bind-addr"))
}

func startHTTPServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	http.ListenAndServe(addr, mux)
}
