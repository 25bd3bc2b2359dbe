package message

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/primitive"
)

// Startup is the first message a client must send to initiate a connection.
type Startup struct {
	Options map[string]string
}

// NewStartup builds a Startup with the CQL_VERSION option set, matching what
// real drivers send.
func NewStartup() *Startup {
	return &Startup{Options: map[string]string{"CQL_VERSION": "3.0.0"}}
}

func (m *Startup) IsResponse() bool {
	return false
}

func (m *Startup) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}

func (m *Startup) String() string {
	return fmt.Sprintf("STARTUP %v", m.Options)
}

type startupCodec struct{}

func (c *startupCodec) Encode(msg Message, dest io.Writer, _ primitive.ProtocolVersion) error {
	startup, ok := msg.(*Startup)
	if !ok {
		return fmt.Errorf("expected *message.Startup, got %T", msg)
	}
	return primitive.WriteStringMap(startup.Options, dest)
}

func (c *startupCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	startup, ok := msg.(*Startup)
	if !ok {
		return -1, fmt.Errorf("expected *message.Startup, got %T", msg)
	}
	return primitive.LengthOfStringMap(startup.Options), nil
}

func (c *startupCodec) Decode(source io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	options, err := primitive.ReadStringMap(source)
	if err != nil {
		return nil, err
	}
	return &Startup{Options: options}, nil
}

func (c *startupCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeStartup
}
