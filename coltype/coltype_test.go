package coltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeIdsAreStable(t *testing.T) {
	tests := []struct {
		typ Type
		id  uint16
	}{
		{Ascii, 0x0001},
		{Bigint, 0x0002},
		{Blob, 0x0003},
		{Boolean, 0x0004},
		{Counter, 0x0005},
		{Decimal, 0x0006},
		{Double, 0x0007},
		{Float, 0x0008},
		{Int, 0x0009},
		{Timestamp, 0x000B},
		{Uuid, 0x000C},
		{Varchar, 0x000D},
		{Varint, 0x000E},
		{Timeuuid, 0x000F},
		{Inet, 0x0010},
		{Date, 0x0011},
		{Time, 0x0012},
		{Smallint, 0x0013},
		{Tinyint, 0x0014},
	}
	for _, test := range tests {
		t.Run(test.typ.String(), func(t *testing.T) {
			assert.Equal(t, test.id, uint16(test.typ))
			assert.True(t, test.typ.IsValid())
		})
	}
}

func TestTypeGapIsNotValid(t *testing.T) {
	assert.False(t, Type(0x000A).IsValid())
	assert.False(t, Type(0xFFFF).IsValid())
}

func TestParseNameRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
	}{
		{"ascii", Ascii},
		{"bigint", Bigint},
		{"boolean", Boolean},
		{"bool", Boolean},
		{"text", Varchar},
		{"varchar", Varchar},
		{"INT", Int},
		{"integer", Int},
		{"uuid", Uuid},
		{"timeuuid", Timeuuid},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseName(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.typ, got)
		})
	}
}

func TestParseNameUnknown(t *testing.T) {
	_, err := ParseName("not-a-type")
	assert.Error(t, err)
}

func TestFixedWidthClassification(t *testing.T) {
	width, fixed := FixedWidth(Int)
	assert.True(t, fixed)
	assert.Equal(t, 4, width)

	_, fixed = FixedWidth(Varchar)
	assert.False(t, fixed)

	_, fixed = FixedWidth(Blob)
	assert.False(t, fixed)
}
