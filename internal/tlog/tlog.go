// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package tlog wraps logrus with the structured fields this module's
// operations log against: the cell/BoC operation name in place of the
// teacher's gRPC peer address. Grounded on
// common/logging/logging.go's loggerFromContext/LogInterceptor.
package tlog

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// ToStderr mirrors logging.LogToStderr: operation logging is a no-op
// unless a caller (typically cmd/tonboc) opts in.
var ToStderr bool

// ForOp returns an entry tagged with the operation name, the unit
// cmd/tonboc logs at (parse-boc, derive-address, sign-wallet-body,
// serve-emulator-stub, or a gRPC method name).
func ForOp(op string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"op": op})
}

// Timed runs fn, logging its duration and error (if any) against op
// when ToStderr is set. It returns fn's own error unchanged.
func Timed(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	if ToStderr {
		entry := ForOp(op).WithField("duration", time.Since(start))
		if err != nil {
			entry.WithField("error", err).Error("operation failed")
		} else {
			entry.Info("operation completed")
		}
	}
	return err
}

// UnaryServerInterceptor is grpc.UnaryInterceptor's worth of
// request/duration logging, grounded on
// common/logging/logging.go's LogInterceptor, generalized from a
// peer-address field to a gRPC method-name field — this module's one
// gRPC surface (emulatorpb) is loopback-only, so there is no peer
// address worth anonymizing.
func UnaryServerInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if ToStderr {
		entry := ForOp(info.FullMethod).WithField("duration", time.Since(start))
		if err != nil {
			entry.WithField("error", err).Error("call failed")
		} else {
			entry.Info("method called")
		}
	}
	return resp, err
}
