package row

import (
	"bytes"
	"io"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/primitive"
)

const (
	presenceNull    = byte(0x00)
	presencePresent = byte(0x01)
)

// Encode serializes r to its self-describing on-disk form: for each column,
// a presence byte, then (if present) a 2-byte type id and the payload
// (fixed-width raw bytes, or a 4-byte length prefix for variable-width
// types).
func Encode(r Row) []byte {
	buf := &bytes.Buffer{}
	for _, v := range r {
		if v.Null {
			buf.WriteByte(presenceNull)
			continue
		}
		buf.WriteByte(presencePresent)
		_ = primitive.WriteShort(uint16(v.Type), buf)
		if _, variable := coltype.FixedWidth(v.Type); !variable {
			_ = primitive.WriteInt(int32(len(v.Contents)), buf)
		}
		buf.Write(v.Contents)
	}
	return buf.Bytes()
}

// Decode parses bytes produced by Encode back into a Row. columnCount must
// match the number of columns originally encoded (the caller supplies it
// from the owning TableMetadata, since the encoding carries no row-level
// column count).
func Decode(data []byte, columnCount int) (Row, error) {
	src := bytes.NewReader(data)
	r := make(Row, 0, columnCount)
	for i := 0; i < columnCount; i++ {
		presence, err := primitive.ReadByte(src)
		if err != nil {
			return nil, dberr.ServerError("cannot read row column %d presence byte: %s", i, err)
		}
		if presence == presenceNull {
			r = append(r, Value{Null: true})
			continue
		}
		if presence != presencePresent {
			return nil, dberr.ServerError("invalid presence byte 0x%02x for row column %d", presence, i)
		}
		typeId, err := primitive.ReadShort(src)
		if err != nil {
			return nil, dberr.ServerError("cannot read row column %d type id: %s", i, err)
		}
		t := coltype.Type(typeId)
		if !t.IsValid() {
			return nil, dberr.ServerError("unknown column type id 0x%04x at row column %d", typeId, i)
		}
		var contents []byte
		if width, fixed := coltype.FixedWidth(t); fixed {
			contents = make([]byte, width)
			if _, err := io.ReadFull(src, contents); err != nil {
				return nil, dberr.ServerError("cannot read row column %d payload: %s", i, err)
			}
		} else {
			length, err := primitive.ReadInt(src)
			if err != nil {
				return nil, dberr.ServerError("cannot read row column %d payload length: %s", i, err)
			}
			if length < 0 {
				return nil, dberr.ServerError("negative payload length for row column %d", i)
			}
			contents = make([]byte, length)
			if _, err := io.ReadFull(src, contents); err != nil {
				return nil, dberr.ServerError("cannot read row column %d payload: %s", i, err)
			}
		}
		r = append(r, Value{Type: t, Contents: contents})
	}
	return r, nil
}
