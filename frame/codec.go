package frame

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/compression"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/message"
	"github.com/rickfast/tarrasque-go/primitive"
)

// Codec encodes and decodes whole frames: the 9-byte header, the optional
// tracing/custom-payload/warnings preamble, and the opcode-dispatched
// message body, compressing or decompressing the body when the header's
// Compressed flag demands it.
type Codec interface {
	EncodeFrame(frame *Frame, dest io.Writer) error
	DecodeFrame(source io.Reader) (*Frame, error)
	DecodeHeader(source io.Reader) (*Header, error)
	DecodeBody(header *Header, source io.Reader) (*Body, error)
}

type codec struct {
	messageCodecs map[primitive.OpCode]message.Codec
	compressor    compression.BodyCompressor
}

// NewCodec builds a Codec over message.DefaultCodecs with no body
// compressor (HeaderFlagCompressed frames are rejected).
func NewCodec() Codec {
	return NewCodecWithCompression(nil)
}

// NewCodecWithCompression builds a Codec that additionally honors the
// Compressed header flag using compressor.
func NewCodecWithCompression(compressor compression.BodyCompressor) Codec {
	c := &codec{
		compressor:    compressor,
		messageCodecs: make(map[primitive.OpCode]message.Codec, len(message.DefaultCodecs)),
	}
	for _, mc := range message.DefaultCodecs {
		c.messageCodecs[mc.GetOpCode()] = mc
	}
	return c
}

func (c *codec) findMessageCodec(opCode primitive.OpCode) (message.Codec, error) {
	mc, ok := c.messageCodecs[opCode]
	if !ok {
		return nil, dberr.Unprepared("no codec registered for opcode %s", opCode)
	}
	return mc, nil
}
