package message

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/primitive"
)

func roundTrip(t *testing.T, msg Message) Message {
	t.Helper()
	codec := &resultCodec{}
	buf := &bytes.Buffer{}
	require.NoError(t, codec.Encode(msg, buf, primitive.ProtocolVersion4))
	decoded, err := codec.Decode(buf, primitive.ProtocolVersion4)
	require.NoError(t, err)
	return decoded
}

func TestVoidResultRoundTrip(t *testing.T) {
	decoded := roundTrip(t, NewVoidResult())
	result, ok := decoded.(*Result)
	require.True(t, ok)
	assert.NotNil(t, result.Void)
}

func TestSetKeyspaceResultRoundTrip(t *testing.T) {
	decoded := roundTrip(t, NewSetKeyspaceResult("ks1"))
	result, ok := decoded.(*Result)
	require.True(t, ok)
	require.NotNil(t, result.SetKeyspace)
	assert.Equal(t, "ks1", result.SetKeyspace.Name)
}

func TestRowsResultRoundTripWithNulls(t *testing.T) {
	metadata := &RowsMetadata{
		GlobalTableSpec: true,
		Keyspace:        "",
		Table:           "users",
		Columns: []ResultColumn{
			{Table: "users", Name: "id", Type: coltype.Int},
			{Table: "users", Name: "name", Type: coltype.Varchar},
		},
	}
	data := [][][]byte{
		{{0, 0, 0, 1}, []byte("alice")},
		{{0, 0, 0, 2}, nil},
	}
	decoded := roundTrip(t, NewRowsResult(metadata, data))
	result, ok := decoded.(*Result)
	require.True(t, ok)
	require.NotNil(t, result.Rows)
	require.Len(t, result.Rows.Data, 2)
	assert.Equal(t, []byte("alice"), result.Rows.Data[0][1])
	assert.Nil(t, result.Rows.Data[1][1])
	require.Len(t, result.Rows.Metadata.Columns, 2)
	assert.Equal(t, coltype.Varchar, result.Rows.Metadata.Columns[1].Type)
}

func TestRowsResultNonGlobalTableSpecRoundTrip(t *testing.T) {
	metadata := &RowsMetadata{
		GlobalTableSpec: false,
		Columns: []ResultColumn{
			{Keyspace: "ks", Table: "t1", Name: "a", Type: coltype.Boolean},
		},
	}
	data := [][][]byte{{{1}}}
	decoded := roundTrip(t, NewRowsResult(metadata, data))
	result, ok := decoded.(*Result)
	require.True(t, ok)
	assert.False(t, result.Rows.Metadata.GlobalTableSpec)
	assert.Equal(t, "ks", result.Rows.Metadata.Columns[0].Keyspace)
}
