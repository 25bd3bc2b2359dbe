// Package coltype defines the closed enumeration of CQL scalar column types
// and their stable on-disk/wire identifiers.
package coltype

import (
	"fmt"
	"strings"
)

// Type is one of the 19 scalar CQL types this server understands. Values
// are stable 16-bit identifiers persisted both in row storage and on the
// RESULT wire metadata; never renumber an existing constant.
type Type uint16

const (
	Ascii     = Type(0x0001)
	Bigint    = Type(0x0002)
	Blob      = Type(0x0003)
	Boolean   = Type(0x0004)
	Counter   = Type(0x0005)
	Decimal   = Type(0x0006)
	Double    = Type(0x0007)
	Float     = Type(0x0008)
	Int       = Type(0x0009)
	// 0x000A reserved (gap).
	Timestamp = Type(0x000B)
	Uuid      = Type(0x000C)
	Varchar   = Type(0x000D)
	Varint    = Type(0x000E)
	Timeuuid  = Type(0x000F)
	Inet      = Type(0x0010)
	Date      = Type(0x0011)
	Time      = Type(0x0012)
	Smallint  = Type(0x0013)
	Tinyint   = Type(0x0014)
)

// fixedWidths gives the raw big-endian byte width of every fixed-width
// type's payload. Types absent from this map are variable-width and use a
// 4-byte length prefix instead (see the row codec).
var fixedWidths = map[Type]int{
	Int:       4,
	Bigint:    8,
	Double:    8,
	Timestamp: 8,
	Counter:   8,
	Time:      8,
	Float:     4,
	Boolean:   1,
	Smallint:  2,
	Tinyint:   1,
	Date:      4,
	Uuid:      16,
	Timeuuid:  16,
}

// FixedWidth returns the byte width of t's payload and true if t is
// fixed-width; otherwise false, meaning t is prefixed by a 4-byte length.
func FixedWidth(t Type) (int, bool) {
	w, ok := fixedWidths[t]
	return w, ok
}

func (t Type) IsValid() bool {
	switch t {
	case Ascii, Bigint, Blob, Boolean, Counter, Decimal, Double, Float, Int,
		Timestamp, Uuid, Varchar, Varint, Timeuuid, Inet, Date, Time, Smallint, Tinyint:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t {
	case Ascii:
		return "ascii"
	case Bigint:
		return "bigint"
	case Blob:
		return "blob"
	case Boolean:
		return "boolean"
	case Counter:
		return "counter"
	case Decimal:
		return "decimal"
	case Double:
		return "double"
	case Float:
		return "float"
	case Int:
		return "int"
	case Timestamp:
		return "timestamp"
	case Uuid:
		return "uuid"
	case Varchar:
		return "varchar"
	case Varint:
		return "varint"
	case Timeuuid:
		return "timeuuid"
	case Inet:
		return "inet"
	case Date:
		return "date"
	case Time:
		return "time"
	case Smallint:
		return "smallint"
	case Tinyint:
		return "tinyint"
	default:
		return fmt.Sprintf("unknown(0x%04x)", uint16(t))
	}
}

// ParseName resolves a CQL type name, case-insensitively, to a Type. "text"
// is accepted as a synonym for "varchar" per the CQL grammar.
func ParseName(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "ascii":
		return Ascii, nil
	case "bigint":
		return Bigint, nil
	case "blob":
		return Blob, nil
	case "boolean", "bool":
		return Boolean, nil
	case "counter":
		return Counter, nil
	case "decimal":
		return Decimal, nil
	case "double":
		return Double, nil
	case "float":
		return Float, nil
	case "int", "integer":
		return Int, nil
	case "timestamp":
		return Timestamp, nil
	case "uuid":
		return Uuid, nil
	case "varchar", "text":
		return Varchar, nil
	case "varint":
		return Varint, nil
	case "timeuuid":
		return Timeuuid, nil
	case "inet":
		return Inet, nil
	case "date":
		return Date, nil
	case "time":
		return Time, nil
	case "smallint":
		return Smallint, nil
	case "tinyint":
		return Tinyint, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", name)
	}
}
