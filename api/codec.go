// Package api holds the wire messages of the travelmate services and their
// gRPC descriptors. Messages travel as JSON over gRPC, see Codec.
package api

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const CodecName = "json"

// Codec is registered under the "json" content subtype, so a client asking
// for application/grpc+json is answered in kind.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (Codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(Codec{})
}

// CallJSON is the call option every client of this package sends.
func CallJSON() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
