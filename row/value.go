// Package row implements the row value model: a tagged-union Value over
// coltype.Type, the Row sequence built from it, and the self-describing
// on-disk encoding the KV storage engine persists (distinct from the CQL
// wire encoding used in RESULT messages).
package row

import (
	"bytes"
	"fmt"

	"github.com/rickfast/tarrasque-go/coltype"
)

// Value is a nullable, typed column value. A nil Contents with Null true
// represents SQL NULL; otherwise Contents holds the natural payload for
// Type (coltype.FixedWidth gives the byte width of fixed-width types).
type Value struct {
	Type     coltype.Type
	Null     bool
	Contents []byte
}

// NewNull builds the null Value for t.
func NewNull(t coltype.Type) Value {
	return Value{Type: t, Null: true}
}

// NewValue builds a present Value.
func NewValue(t coltype.Type, contents []byte) Value {
	return Value{Type: t, Contents: contents}
}

// Equal compares tag and payload only, per the data model: values of
// different types are never equal even if their payloads coincide.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type || v.Null != other.Null {
		return false
	}
	if v.Null {
		return true
	}
	return bytes.Equal(v.Contents, other.Contents)
}

func (v Value) String() string {
	if v.Null {
		return fmt.Sprintf("%s(NULL)", v.Type)
	}
	return fmt.Sprintf("%s(%x)", v.Type, v.Contents)
}

// Row is the ordered sequence of column values for one stored record. Its
// length and per-position type are determined by the owning table's
// declared column order; Row itself carries no schema reference.
type Row []Value
