package message

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/primitive"
)

// Ready is the response sent once a Startup is accepted, since this server
// never requires authentication.
type Ready struct{}

func (m *Ready) IsResponse() bool {
	return true
}

func (m *Ready) GetOpCode() primitive.OpCode {
	return primitive.OpCodeReady
}

func (m *Ready) String() string {
	return "READY"
}

type readyCodec struct{}

func (c *readyCodec) Encode(msg Message, _ io.Writer, _ primitive.ProtocolVersion) error {
	if _, ok := msg.(*Ready); !ok {
		return fmt.Errorf("expected *message.Ready, got %T", msg)
	}
	return nil
}

func (c *readyCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	if _, ok := msg.(*Ready); !ok {
		return -1, fmt.Errorf("expected *message.Ready, got %T", msg)
	}
	return 0, nil
}

func (c *readyCodec) Decode(_ io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	return &Ready{}, nil
}

func (c *readyCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeReady
}
