// Package frame implements the CQL v4 frame envelope: the 9-byte header
// (version/direction, flags, stream id, opcode, body length) plus the
// optional tracing id / custom payload / warnings that can precede the
// message body, and the message body itself.
package frame

import (
	"fmt"

	"github.com/rickfast/tarrasque-go/message"
	"github.com/rickfast/tarrasque-go/primitive"
)

// Frame is the fully decoded representation of a frame: header fields plus
// a decoded Message.
type Frame struct {
	Header *Header
	Body   *Body
}

// RawFrame carries a decoded Header but an undecoded body, useful for
// proxies or logging that only need to inspect the header.
type RawFrame struct {
	Header *Header
	Body   []byte
}

// Header is the 9-byte frame header.
type Header struct {
	IsResponse bool
	Version    primitive.ProtocolVersion
	Flags      primitive.HeaderFlag
	StreamId   int16
	OpCode     primitive.OpCode
	// BodyLength is computed at encode time and populated at decode time;
	// callers should not set it directly.
	BodyLength int32
}

// Body is everything that follows the header: the optional tracing id,
// custom payload, and warnings (response-only, protocol v4+), followed by
// the message itself.
type Body struct {
	TracingId     *[16]byte
	CustomPayload map[string][]byte
	Warnings      []string
	Message       message.Message
}

// NewFrame builds a request or response Frame for msg, deriving IsResponse
// and OpCode from the message itself.
func NewFrame(version primitive.ProtocolVersion, streamId int16, msg message.Message) *Frame {
	return &Frame{
		Header: &Header{
			IsResponse: msg.IsResponse(),
			Version:    version,
			StreamId:   streamId,
			OpCode:     msg.GetOpCode(),
		},
		Body: &Body{
			Message: msg,
		},
	}
}

// SetCustomPayload attaches or clears a custom payload, keeping the header
// flag in sync.
func (f *Frame) SetCustomPayload(payload map[string][]byte) {
	if len(payload) > 0 {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagCustomPayload)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagCustomPayload)
	}
	f.Body.CustomPayload = payload
}

// SetWarnings attaches or clears response warnings, keeping the header flag
// in sync.
func (f *Frame) SetWarnings(warnings []string) {
	if len(warnings) > 0 {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagWarning)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagWarning)
	}
	f.Body.Warnings = warnings
}

// SetCompress requests body compression for this frame; the codec's
// configured BodyCompressor (if any) will honor it at encode time.
func (f *Frame) SetCompress(compress bool) {
	if compress {
		f.Header.Flags = f.Header.Flags.Add(primitive.HeaderFlagCompressed)
	} else {
		f.Header.Flags = f.Header.Flags.Remove(primitive.HeaderFlagCompressed)
	}
}

func (h *Header) String() string {
	direction := "REQUEST"
	if h.IsResponse {
		direction = "RESPONSE"
	}
	return fmt.Sprintf("%s{version=%s, flags=%02x, stream=%d, opcode=%s, len=%d}",
		direction, h.Version, uint8(h.Flags), h.StreamId, h.OpCode, h.BodyLength)
}
