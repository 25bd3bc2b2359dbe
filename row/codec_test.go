package row

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickfast/tarrasque-go/coltype"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := Row{
		NewValue(coltype.Varchar, []byte("hello")),
		NewValue(coltype.Int, []byte{0, 0, 0, 42}),
		NewValue(coltype.Boolean, []byte{1}),
		NewValue(coltype.Bigint, []byte{0, 0, 0, 0, 0, 0, 0, 7}),
		NewValue(coltype.Blob, []byte{0xde, 0xad, 0xbe, 0xef}),
		NewValue(coltype.Uuid, make([]byte, 16)),
	}

	encoded := Encode(original)
	decoded, err := Decode(encoded, len(original))
	require.NoError(t, err)
	require.Len(t, decoded, len(original))
	for i := range original {
		assert.True(t, original[i].Equal(decoded[i]), "column %d: %s != %s", i, original[i], decoded[i])
	}
}

func TestEncodeDecodeAllTypes(t *testing.T) {
	allTypes := []coltype.Type{
		coltype.Ascii, coltype.Bigint, coltype.Blob, coltype.Boolean, coltype.Counter,
		coltype.Decimal, coltype.Double, coltype.Float, coltype.Int, coltype.Timestamp,
		coltype.Uuid, coltype.Varchar, coltype.Varint, coltype.Timeuuid, coltype.Inet,
		coltype.Date, coltype.Time, coltype.Smallint, coltype.Tinyint,
	}

	row := make(Row, len(allTypes))
	for i, typ := range allTypes {
		if width, fixed := coltype.FixedWidth(typ); fixed {
			row[i] = NewValue(typ, make([]byte, width))
		} else {
			row[i] = NewValue(typ, []byte("x"))
		}
	}

	encoded := Encode(row)
	decoded, err := Decode(encoded, len(row))
	require.NoError(t, err)
	for i := range row {
		assert.True(t, row[i].Equal(decoded[i]), "column %d (%s)", i, allTypes[i])
	}
}

func TestEncodeDecodeNullRun(t *testing.T) {
	original := Row{
		NewNull(coltype.Int),
		NewValue(coltype.Varchar, []byte("present")),
		NewNull(coltype.Varchar),
		NewNull(coltype.Boolean),
	}

	encoded := Encode(original)
	decoded, err := Decode(encoded, len(original))
	require.NoError(t, err)
	require.Len(t, decoded, len(original))

	assert.True(t, decoded[0].Null)
	assert.False(t, decoded[1].Null)
	assert.Equal(t, "present", string(decoded[1].Contents))
	assert.True(t, decoded[2].Null)
	assert.True(t, decoded[3].Null)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	original := Row{NewValue(coltype.Int, []byte{0, 0, 0, 1})}
	encoded := Encode(original)
	_, err := Decode(encoded[:len(encoded)-1], 1)
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownTypeId(t *testing.T) {
	// presence=present, type id=0x000A (the reserved gap), no payload follows.
	malformed := []byte{0x01, 0x00, 0x0A}
	_, err := Decode(malformed, 1)
	assert.Error(t, err)
}

func TestValueEqualDistinguishesType(t *testing.T) {
	a := NewValue(coltype.Int, []byte{0, 0, 0, 1})
	b := NewValue(coltype.Bigint, []byte{0, 0, 0, 1})
	assert.False(t, a.Equal(b))
}
