package frame

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/primitive"
)

func (c *codec) DecodeFrame(source io.Reader) (*Frame, error) {
	header, err := c.DecodeHeader(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode frame header: %w", err)
	}
	body, err := c.DecodeBody(header, source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode frame body: %w", err)
	}
	return &Frame{Header: header, Body: body}, nil
}

// DecodeHeader reads the 9-byte frame header. Only protocol version 4 is
// accepted; anything else is a protocol error rather than a silent
// misparse.
func (c *codec) DecodeHeader(source io.Reader) (*Header, error) {
	versionAndDirection, err := primitive.ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header version and direction: %w", err)
	}
	isResponse := versionAndDirection&0x80 != 0
	version := primitive.ProtocolVersion(versionAndDirection &^ 0x80)
	if !version.IsSupported() {
		return nil, dberr.ProtocolError("unsupported protocol version %s", version)
	}

	flags, err := primitive.ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header flags: %w", err)
	}

	streamId, err := primitive.ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header stream id: %w", err)
	}

	opCode, err := primitive.ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header opcode: %w", err)
	}
	if !primitive.OpCode(opCode).IsValid() {
		return nil, dberr.ProtocolError("unknown opcode 0x%02x", opCode)
	}

	bodyLength, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot decode header body length: %w", err)
	}
	if bodyLength < 0 {
		return nil, dberr.ProtocolError("negative body length %d", bodyLength)
	}

	return &Header{
		IsResponse: isResponse,
		Version:    version,
		Flags:      primitive.HeaderFlag(flags),
		StreamId:   int16(streamId),
		OpCode:     primitive.OpCode(opCode),
		BodyLength: bodyLength,
	}, nil
}

// DecodeBody reads and decompresses (if flagged) the frame body, then the
// optional tracing id / custom payload / warnings preamble, then dispatches
// the remaining bytes to the opcode's message codec.
func (c *codec) DecodeBody(header *Header, source io.Reader) (*Body, error) {
	limited := io.LimitReader(source, int64(header.BodyLength))
	if header.Flags.Contains(primitive.HeaderFlagCompressed) {
		if c.compressor == nil {
			return nil, dberr.ProtocolError("received compressed frame but no compressor is configured")
		}
		decompressed := &bytes.Buffer{}
		if err := c.compressor.Decompress(limited, decompressed); err != nil {
			return nil, fmt.Errorf("cannot decompress body: %w", err)
		}
		limited = decompressed
	}

	body := &Body{}
	var err error
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagTracing) {
		var tracingId [16]byte
		if _, err = io.ReadFull(limited, tracingId[:]); err != nil {
			return nil, fmt.Errorf("cannot decode body tracing id: %w", err)
		}
		body.TracingId = &tracingId
	}
	if header.Flags.Contains(primitive.HeaderFlagCustomPayload) {
		if body.CustomPayload, err = primitive.ReadBytesMap(limited); err != nil {
			return nil, fmt.Errorf("cannot decode body custom payload: %w", err)
		}
	}
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagWarning) {
		if body.Warnings, err = primitive.ReadStringList(limited); err != nil {
			return nil, fmt.Errorf("cannot decode body warnings: %w", err)
		}
	}

	messageCodec, err := c.findMessageCodec(header.OpCode)
	if err != nil {
		return nil, err
	}
	if body.Message, err = messageCodec.Decode(limited, header.Version); err != nil {
		return nil, fmt.Errorf("cannot decode body message: %w", err)
	}
	return body, nil
}
