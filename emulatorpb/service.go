// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

package emulatorpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// codecName is registered distinct from grpc's built-in "proto" codec:
// EmulateRequest/EmulateResponse implement Marshal/Unmarshal directly
// against protowire rather than the proto.Message reflection contract,
// so they need their own wire adapter rather than encoding.Codec's
// default.
const codecName = "emulatorpb"

func init() {
	encoding.RegisterCodec(wireCodec{})
}

type wireCodec struct{}

func (wireCodec) Name() string { return codecName }

func (wireCodec) Marshal(v interface{}) ([]byte, error) {
	switch m := v.(type) {
	case *EmulateRequest:
		return m.Marshal(), nil
	case *EmulateResponse:
		return m.Marshal(), nil
	default:
		return nil, errUnsupportedMessage(v)
	}
}

func (wireCodec) Unmarshal(data []byte, v interface{}) error {
	switch m := v.(type) {
	case *EmulateRequest:
		req, err := UnmarshalEmulateRequest(data)
		if err != nil {
			return err
		}
		*m = *req
		return nil
	case *EmulateResponse:
		resp, err := UnmarshalEmulateResponse(data)
		if err != nil {
			return err
		}
		*m = *resp
		return nil
	default:
		return errUnsupportedMessage(v)
	}
}

func errUnsupportedMessage(v interface{}) error {
	return &unsupportedMessageError{v}
}

type unsupportedMessageError struct{ v interface{} }

func (e *unsupportedMessageError) Error() string {
	return "emulatorpb: codec does not know how to handle a value of this type"
}

// EmulatorServer is the interface an emulator collaborator process
// implements. This core never implements it and never dials a client
// built against it — it exists so the contract in emulator.proto has a
// concrete Go shape a collaborator can build against, per spec.md §5's
// "ownership of the BoC is transferred by value across the process
// boundary; the emulator's thread model does not leak into the core."
type EmulatorServer interface {
	Emulate(context.Context, *EmulateRequest) (*EmulateResponse, error)
}

func _Emulator_Emulate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EmulateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmulatorServer).Emulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/emulatorpb.Emulator/Emulate",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmulatorServer).Emulate(ctx, req.(*EmulateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc mirrors what protoc-gen-go-grpc would emit for the
// single-RPC Emulator service. Registered against a *grpc.Server by a
// collaborator process or by cmd/tonboc's serve-emulator-stub; the
// library packages never register it.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "emulatorpb.Emulator",
	HandlerType: (*EmulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Emulate",
			Handler:    _Emulator_Emulate_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "emulator.proto",
}

// RegisterEmulatorServer registers an EmulatorServer implementation
// against a grpc.Server, the way protoc-gen-go-grpc's generated
// RegisterXServer function would. Called by a collaborator process and
// by cmd/tonboc's serve-emulator-stub; the library packages never call it.
func RegisterEmulatorServer(s grpc.ServiceRegistrar, srv EmulatorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// EmulatorClient is the client side of the Emulator service, callable
// with grpc.CallContentSubtype(codecName) to select wireCodec over the
// default proto codec. This core never constructs one; it is here so a
// caller integrating with an external emulator has a ready-made stub.
type EmulatorClient interface {
	Emulate(ctx context.Context, in *EmulateRequest, opts ...grpc.CallOption) (*EmulateResponse, error)
}

type emulatorClient struct {
	cc grpc.ClientConnInterface
}

// NewEmulatorClient builds an EmulatorClient over an existing
// connection. Never called from this core's own code paths.
func NewEmulatorClient(cc grpc.ClientConnInterface) EmulatorClient {
	return &emulatorClient{cc}
}

func (c *emulatorClient) Emulate(ctx context.Context, in *EmulateRequest, opts ...grpc.CallOption) (*EmulateResponse, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	out := new(EmulateResponse)
	err := c.cc.Invoke(ctx, "/emulatorpb.Emulator/Emulate", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
