// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package main

import (
	"context"
	"fmt"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/tonlibgo/tonlibgo/cell"
	"github.com/tonlibgo/tonlibgo/emulatorpb"
	"github.com/tonlibgo/tonlibgo/internal/tlog"
)

var serveEmulatorStubBindAddr string

// serveEmulatorStubCmd starts a throwaway emulatorpb.EmulatorServer that
// echoes the BoC it is handed back unchanged. It exists so the wire
// contract in emulatorpb/emulator.proto has something to dial during
// local integration testing; this core's own operations never start or
// call it (spec.md §5/§9: the emulator is a separate collaborator
// process, never a dependency this module drives itself).
var serveEmulatorStubCmd = &cobra.Command{
	Use:   "serve-emulator-stub",
	Short: "Run a throwaway emulatorpb.Emulator server that echoes its input (for integration testing only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		listener, err := net.Listen("tcp", serveEmulatorStubBindAddr)
		if err != nil {
			return fmt.Errorf("serve-emulator-stub: %w", err)
		}
		server := grpc.NewServer(
			grpc.StreamInterceptor(grpc_middleware.ChainStreamServer(
				grpc_prometheus.StreamServerInterceptor)),
			grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
				tlog.UnaryServerInterceptor, grpc_prometheus.UnaryServerInterceptor)),
		)
		grpc_prometheus.EnableHandlingTimeHistogram()
		grpc_prometheus.Register(server)
		emulatorpb.RegisterEmulatorServer(server, echoEmulatorServer{})
		fmt.Println("serving emulatorpb.Emulator on", serveEmulatorStubBindAddr)
		return tlog.Timed("serve-emulator-stub", func() error {
			return server.Serve(listener)
		})
	},
}

type echoEmulatorServer struct{}

func (echoEmulatorServer) Emulate(ctx context.Context, req *emulatorpb.EmulateRequest) (*emulatorpb.EmulateResponse, error) {
	if _, err := cell.ParseBOC(req.BocBytes); err != nil {
		return nil, fmt.Errorf("serve-emulator-stub: invalid boc_bytes: %w", err)
	}
	return &emulatorpb.EmulateResponse{
		BocBytes:   req.BocBytes,
		ResultJSON: fmt.Sprintf(`{"echo":true,"method_id_json":%q}`, req.MethodIDJSON),
	}, nil
}

func init() {
	serveEmulatorStubCmd.Flags().StringVar(&serveEmulatorStubBindAddr, "bind-addr", "127.0.0.1:9099", "address to serve the emulator stub gRPC service on")
}
