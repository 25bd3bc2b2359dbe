package frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickfast/tarrasque-go/compression/lz4"
	"github.com/rickfast/tarrasque-go/compression/snappy"
	"github.com/rickfast/tarrasque-go/message"
	"github.com/rickfast/tarrasque-go/primitive"
)

func TestCompressedFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		compressor interface {
			Algorithm() string
		}
		codec Codec
	}{
		{"snappy", snappy.BodyCompressor{}, NewCodecWithCompression(snappy.BodyCompressor{})},
		{"lz4", lz4.BodyCompressor{}, NewCodecWithCompression(lz4.BodyCompressor{})},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := NewFrame(primitive.ProtocolVersion4, 9, &message.Query{
				CqlQuery: "SELECT * FROM users WHERE id = 1",
				Options:  &message.QueryOptions{},
			})
			req.SetCompress(true)

			buf := &bytes.Buffer{}
			require.NoError(t, test.codec.EncodeFrame(req, buf))

			decoded, err := test.codec.DecodeFrame(buf)
			require.NoError(t, err)
			query, ok := decoded.Body.Message.(*message.Query)
			require.True(t, ok)
			assert.Equal(t, "SELECT * FROM users WHERE id = 1", query.CqlQuery)
		})
	}
}

func TestCompressedFrameWithoutCompressorConfiguredFails(t *testing.T) {
	codec := NewCodec()
	req := NewFrame(primitive.ProtocolVersion4, 1, &message.Options{})
	req.SetCompress(true)

	buf := &bytes.Buffer{}
	err := codec.EncodeFrame(req, buf)
	assert.Error(t, err)
}
