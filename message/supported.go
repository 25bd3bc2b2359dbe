package message

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/primitive"
)

// SupportedCQLVersions is the Supported.Options key listing the CQL text
// dialect versions the server accepts.
const SupportedCQLVersions = "CQL_VERSION"

// SupportedCompression is the Supported.Options key listing the body
// compression algorithms the server can decode.
const SupportedCompression = "COMPRESSION"

// Supported answers an Options request with the startup options this server
// recognizes.
type Supported struct {
	Options map[string][]string
}

// NewSupported builds the Supported response this server always sends,
// advertising CQL 3.0.0 and whichever compression algorithms are wired into
// the frame codec.
func NewSupported(compressionAlgorithms []string) *Supported {
	return &Supported{
		Options: map[string][]string{
			SupportedCQLVersions: {"3.0.0"},
			SupportedCompression: compressionAlgorithms,
		},
	}
}

func (m *Supported) IsResponse() bool {
	return true
}

func (m *Supported) GetOpCode() primitive.OpCode {
	return primitive.OpCodeSupported
}

func (m *Supported) String() string {
	return fmt.Sprintf("SUPPORTED %v", m.Options)
}

type supportedCodec struct{}

func (c *supportedCodec) Encode(msg Message, dest io.Writer, _ primitive.ProtocolVersion) error {
	supported, ok := msg.(*Supported)
	if !ok {
		return fmt.Errorf("expected *message.Supported, got %T", msg)
	}
	return primitive.WriteStringMultiMap(supported.Options, dest)
}

func (c *supportedCodec) EncodedLength(msg Message, _ primitive.ProtocolVersion) (int, error) {
	supported, ok := msg.(*Supported)
	if !ok {
		return -1, fmt.Errorf("expected *message.Supported, got %T", msg)
	}
	return primitive.LengthOfStringMultiMap(supported.Options), nil
}

func (c *supportedCodec) Decode(source io.Reader, _ primitive.ProtocolVersion) (Message, error) {
	options, err := primitive.ReadStringMultiMap(source)
	if err != nil {
		return nil, err
	}
	return &Supported{Options: options}, nil
}

func (c *supportedCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeSupported
}
