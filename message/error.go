package message

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/primitive"
)

// Error is the ERROR message body: a CQL error code plus a human-readable
// message, carried as a single dberr.Code field since every engine error
// already resolves to one at the connection boundary.
type Error struct {
	Code    dberr.Code
	Message string
}

// FromDbError builds the wire Error for a *dberr.Error.
func FromDbError(err *dberr.Error) *Error {
	return &Error{Code: err.Code, Message: err.Message}
}

func (m *Error) IsResponse() bool {
	return true
}

func (m *Error) GetOpCode() primitive.OpCode {
	return primitive.OpCodeError
}

func (m *Error) String() string {
	return fmt.Sprintf("ERROR %s: %s", m.Code, m.Message)
}

type errorCodec struct{}

func (c *errorCodec) Encode(msg Message, dest io.Writer, _ primitive.ProtocolVersion) error {
	e, ok := msg.(*Error)
	if !ok {
		return fmt.Errorf("expected *message.Error, got %T", msg)
	}
	if err := primitive.WriteInt(int32(e.Code), dest); err != nil {
		return fmt.Errorf("cannot write ERROR code: %w", err)
	}
	if err := primitive.WriteString(e.Message, dest); err != nil {
		return fmt.Errorf("cannot write ERROR message: %w", err)
	}
	return nil
}

func (c *errorCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	e, ok := msg.(*Error)
	if !ok {
		return -1, fmt.Errorf("expected *message.Error, got %T", msg)
	}
	return primitive.LengthOfInt + primitive.LengthOfString(e.Message), nil
}

func (c *errorCodec) Decode(source io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	code, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read ERROR code: %w", err)
	}
	msg, err := primitive.ReadString(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read ERROR message: %w", err)
	}
	return &Error{Code: dberr.Code(code), Message: msg}, nil
}

func (c *errorCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeError
}
