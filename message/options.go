package message

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/primitive"
)

// Options asks the server which startup options and CQL versions it
// supports; the server replies with Supported.
type Options struct{}

func (m *Options) IsResponse() bool {
	return false
}

func (m *Options) GetOpCode() primitive.OpCode {
	return primitive.OpCodeOptions
}

func (m *Options) String() string {
	return "OPTIONS"
}

type optionsCodec struct{}

func (c *optionsCodec) Encode(msg Message, _ io.Writer, _ primitive.ProtocolVersion) error {
	if _, ok := msg.(*Options); !ok {
		return fmt.Errorf("expected *message.Options, got %T", msg)
	}
	return nil
}

func (c *optionsCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	if _, ok := msg.(*Options); !ok {
		return -1, fmt.Errorf("expected *message.Options, got %T", msg)
	}
	return 0, nil
}

func (c *optionsCodec) Decode(_ io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	return &Options{}, nil
}

func (c *optionsCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeOptions
}
