package frame

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/primitive"
)

func (c *codec) EncodeFrame(frame *Frame, dest io.Writer) error {
	if frame.Header.OpCode != frame.Body.Message.GetOpCode() {
		return fmt.Errorf("opcode mismatch between header and body: %s != %s", frame.Header.OpCode, frame.Body.Message.GetOpCode())
	}
	if frame.Header.Flags.Contains(primitive.HeaderFlagCompressed) {
		return c.encodeFrameCompressed(frame, dest)
	}
	return c.encodeFrameUncompressed(frame, dest)
}

func (c *codec) encodeFrameUncompressed(frame *Frame, dest io.Writer) error {
	length, err := c.uncompressedBodyLength(frame.Header, frame.Body)
	if err != nil {
		return fmt.Errorf("cannot compute body length: %w", err)
	}
	frame.Header.BodyLength = int32(length)
	if err := c.encodeHeader(frame.Header, dest); err != nil {
		return fmt.Errorf("cannot encode frame header: %w", err)
	}
	return c.encodeBodyUncompressed(frame.Header, frame.Body, dest)
}

func (c *codec) encodeFrameCompressed(frame *Frame, dest io.Writer) error {
	if c.compressor == nil {
		return dberr.ProtocolError("compressed frame requested but no compressor is configured")
	}
	uncompressedLength, err := c.uncompressedBodyLength(frame.Header, frame.Body)
	if err != nil {
		return fmt.Errorf("cannot compute body length: %w", err)
	}
	uncompressed := bytes.NewBuffer(make([]byte, 0, uncompressedLength))
	if err := c.encodeBodyUncompressed(frame.Header, frame.Body, uncompressed); err != nil {
		return fmt.Errorf("cannot encode body: %w", err)
	}
	compressed := &bytes.Buffer{}
	if err := c.compressor.Compress(uncompressed, compressed); err != nil {
		return fmt.Errorf("cannot compress body: %w", err)
	}
	frame.Header.BodyLength = int32(compressed.Len())
	if err := c.encodeHeader(frame.Header, dest); err != nil {
		return fmt.Errorf("cannot encode frame header: %w", err)
	}
	if _, err := compressed.WriteTo(dest); err != nil {
		return fmt.Errorf("cannot write compressed body: %w", err)
	}
	return nil
}

func (c *codec) encodeHeader(header *Header, dest io.Writer) error {
	versionAndDirection := uint8(header.Version)
	if header.IsResponse {
		versionAndDirection |= 0x80
	}
	if err := primitive.WriteByte(versionAndDirection, dest); err != nil {
		return fmt.Errorf("cannot encode version and direction: %w", err)
	}
	if err := primitive.WriteByte(uint8(header.Flags), dest); err != nil {
		return fmt.Errorf("cannot encode flags: %w", err)
	}
	if err := primitive.WriteShort(uint16(header.StreamId), dest); err != nil {
		return fmt.Errorf("cannot encode stream id: %w", err)
	}
	if err := primitive.WriteByte(uint8(header.OpCode), dest); err != nil {
		return fmt.Errorf("cannot encode opcode: %w", err)
	}
	if err := primitive.WriteInt(header.BodyLength, dest); err != nil {
		return fmt.Errorf("cannot encode body length: %w", err)
	}
	return nil
}

func (c *codec) encodeBodyUncompressed(header *Header, body *Body, dest io.Writer) error {
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagTracing) {
		if body.TracingId == nil {
			return dberr.ProtocolError("tracing flag set but no tracing id present")
		}
		if _, err := dest.Write(body.TracingId[:]); err != nil {
			return fmt.Errorf("cannot encode body tracing id: %w", err)
		}
	}
	if header.Flags.Contains(primitive.HeaderFlagCustomPayload) {
		if err := primitive.WriteBytesMap(body.CustomPayload, dest); err != nil {
			return fmt.Errorf("cannot encode body custom payload: %w", err)
		}
	}
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagWarning) {
		if err := primitive.WriteStringList(body.Warnings, dest); err != nil {
			return fmt.Errorf("cannot encode body warnings: %w", err)
		}
	}
	messageCodec, err := c.findMessageCodec(body.Message.GetOpCode())
	if err != nil {
		return err
	}
	if err := messageCodec.Encode(body.Message, dest, header.Version); err != nil {
		return fmt.Errorf("cannot encode body message: %w", err)
	}
	return nil
}

func (c *codec) uncompressedBodyLength(header *Header, body *Body) (int, error) {
	messageCodec, err := c.findMessageCodec(body.Message.GetOpCode())
	if err != nil {
		return -1, err
	}
	length, err := messageCodec.EncodedLength(body.Message, header.Version)
	if err != nil {
		return -1, fmt.Errorf("cannot compute message length: %w", err)
	}
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagTracing) {
		length += 16
	}
	if header.Flags.Contains(primitive.HeaderFlagCustomPayload) {
		length += primitive.LengthOfBytesMap(body.CustomPayload)
	}
	if header.IsResponse && header.Flags.Contains(primitive.HeaderFlagWarning) {
		length += primitive.LengthOfStringList(body.Warnings)
	}
	return length, nil
}
