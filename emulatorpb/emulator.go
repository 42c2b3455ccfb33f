// Copyright (c) 2025 The Zcash developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or https://www.opensource.org/licenses/mit-license.php .

// Package emulatorpb implements the wire contract declared in
// emulator.proto by hand, encoding directly against
// google.golang.org/protobuf/encoding/protowire rather than through
// protoc-gen-go generated code, since the two messages this core
// exchanges with an emulator collaborator are fixed and small. Grounded
// on the teacher's own walletrpc/*.proto + generate.go pattern
// (protoc over a hand-edited .proto, see emulator.proto), adapted to a
// hand-written codec rather than a generated one.
package emulatorpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldBocBytes     protowire.Number = 1
	fieldMethodIDJSON protowire.Number = 2
	fieldResultJSON   protowire.Number = 2
)

// EmulateRequest mirrors emulator.proto's EmulateRequest message.
type EmulateRequest struct {
	BocBytes     []byte
	MethodIDJSON string
}

// Marshal encodes r in protobuf wire format.
func (r *EmulateRequest) Marshal() []byte {
	var buf []byte
	if len(r.BocBytes) > 0 {
		buf = protowire.AppendTag(buf, fieldBocBytes, protowire.BytesType)
		buf = protowire.AppendBytes(buf, r.BocBytes)
	}
	if r.MethodIDJSON != "" {
		buf = protowire.AppendTag(buf, fieldMethodIDJSON, protowire.BytesType)
		buf = protowire.AppendString(buf, r.MethodIDJSON)
	}
	return buf
}

// UnmarshalEmulateRequest decodes the wire format Marshal produces.
func UnmarshalEmulateRequest(data []byte) (*EmulateRequest, error) {
	r := &EmulateRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("emulatorpb: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case fieldBocBytes:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("emulatorpb: bad boc_bytes field: %w", protowire.ParseError(n))
			}
			r.BocBytes = append([]byte(nil), v...)
			data = data[n:]
		case fieldMethodIDJSON:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("emulatorpb: bad method_id_json field: %w", protowire.ParseError(n))
			}
			r.MethodIDJSON = string(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("emulatorpb: bad unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return r, nil
}

// EmulateResponse mirrors emulator.proto's EmulateResponse message.
type EmulateResponse struct {
	BocBytes   []byte
	ResultJSON string
}

// Marshal encodes resp in protobuf wire format.
func (resp *EmulateResponse) Marshal() []byte {
	var buf []byte
	if len(resp.BocBytes) > 0 {
		buf = protowire.AppendTag(buf, fieldBocBytes, protowire.BytesType)
		buf = protowire.AppendBytes(buf, resp.BocBytes)
	}
	if resp.ResultJSON != "" {
		buf = protowire.AppendTag(buf, fieldResultJSON, protowire.BytesType)
		buf = protowire.AppendString(buf, resp.ResultJSON)
	}
	return buf
}

// UnmarshalEmulateResponse decodes the wire format Marshal produces.
func UnmarshalEmulateResponse(data []byte) (*EmulateResponse, error) {
	resp := &EmulateResponse{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("emulatorpb: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case fieldBocBytes:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("emulatorpb: bad boc_bytes field: %w", protowire.ParseError(n))
			}
			resp.BocBytes = append([]byte(nil), v...)
			data = data[n:]
		case fieldResultJSON:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("emulatorpb: bad result_json field: %w", protowire.ParseError(n))
			}
			resp.ResultJSON = string(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("emulatorpb: bad unknown field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return resp, nil
}
