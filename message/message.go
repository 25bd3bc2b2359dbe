// Package message implements the CQL v4 message bodies this server speaks:
// STARTUP, READY, OPTIONS, SUPPORTED, QUERY, RESULT, and ERROR. Each message
// type has a matching Codec; unsupported-but-recognized opcodes (PREPARE,
// EXECUTE, BATCH, REGISTER, ...) have no codec registered here and are
// rejected at the connection boundary instead.
package message

import (
	"io"

	"github.com/rickfast/tarrasque-go/primitive"
)

// Message is any CQL request or response body.
type Message interface {
	IsResponse() bool
	GetOpCode() primitive.OpCode
}

type Encoder interface {
	Encode(msg Message, dest io.Writer, version primitive.ProtocolVersion) error
	EncodedLength(msg Message, version primitive.ProtocolVersion) (int, error)
}

type Decoder interface {
	Decode(source io.Reader, version primitive.ProtocolVersion) (Message, error)
}

// Codec is the encode/decode pair for exactly one opcode.
type Codec interface {
	Encoder
	Decoder
	GetOpCode() primitive.OpCode
}

// DefaultCodecs lists the codec for every message type this server
// implements. Opcodes not listed here (PREPARE, EXECUTE, REGISTER, EVENT,
// BATCH, AUTH_*) are still recognized by primitive.OpCode.IsValid but have
// no codec: decoding a frame that uses one of them fails with an UNPREPARED
// error rather than a decode panic, and the connection driver then closes
// the connection without sending a reply.
var DefaultCodecs = []Codec{
	&startupCodec{},
	&readyCodec{},
	&optionsCodec{},
	&supportedCodec{},
	&queryCodec{},
	&resultCodec{},
	&errorCodec{},
}
