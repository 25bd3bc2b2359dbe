package primitive

import (
	"fmt"
	"io"
)

// [bytes]: an [int] length N; N < 0 means absent (nil), otherwise N raw bytes follow.

func ReadBytes(source io.Reader) ([]byte, error) {
	length, err := ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [bytes] length: %w", err)
	} else if length < 0 {
		return nil, nil
	}
	decoded := make([]byte, length)
	if _, err := io.ReadFull(source, decoded); err != nil {
		return nil, fmt.Errorf("cannot read [bytes] content: %w", err)
	}
	return decoded, nil
}

func WriteBytes(b []byte, dest io.Writer) error {
	if b == nil {
		if err := WriteInt(-1, dest); err != nil {
			return fmt.Errorf("cannot write null [bytes]: %w", err)
		}
		return nil
	}
	length := len(b)
	if err := WriteInt(int32(length), dest); err != nil {
		return fmt.Errorf("cannot write [bytes] length: %w", err)
	}
	if n, err := dest.Write(b); err != nil {
		return fmt.Errorf("cannot write [bytes] content: %w", err)
	} else if n < length {
		return fmt.Errorf("not enough capacity to write [bytes] content")
	}
	return nil
}

func LengthOfBytes(b []byte) int {
	return LengthOfInt + len(b)
}

// [short bytes]: a [short] length N followed by N raw bytes.

func ReadShortBytes(source io.Reader) ([]byte, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [short bytes] length: %w", err)
	}
	decoded := make([]byte, length)
	if _, err := io.ReadFull(source, decoded); err != nil {
		return nil, fmt.Errorf("cannot read [short bytes] content: %w", err)
	}
	return decoded, nil
}

func WriteShortBytes(b []byte, dest io.Writer) error {
	length := len(b)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write [short bytes] length: %w", err)
	}
	if n, err := dest.Write(b); err != nil {
		return fmt.Errorf("cannot write [short bytes] content: %w", err)
	} else if n < length {
		return fmt.Errorf("not enough capacity to write [short bytes] content")
	}
	return nil
}

func LengthOfShortBytes(b []byte) int {
	return LengthOfShort + len(b)
}

// ValueType distinguishes a regular [value] from a null or not-set one.
type ValueType int32

const (
	ValueTypeRegular = ValueType(0)
	ValueTypeNull    = ValueType(-1)
	ValueTypeUnset   = ValueType(-2)
)

// Value models the CQL [value] primitive: an [int] length N followed by N bytes
// when N >= 0, or one of the two negative sentinels (Null, NotSet) otherwise.
type Value struct {
	Type     ValueType
	Contents []byte
}

func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Type {
	case ValueTypeNull:
		return "NULL"
	case ValueTypeUnset:
		return "NOT_SET"
	default:
		return fmt.Sprintf("0x%x", v.Contents)
	}
}

func ReadValue(source io.Reader) (*Value, error) {
	length, err := ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [value] length: %w", err)
	}
	switch {
	case length == -1:
		return &Value{Type: ValueTypeNull}, nil
	case length == -2:
		return &Value{Type: ValueTypeUnset}, nil
	case length < -2:
		return nil, fmt.Errorf("invalid [value] length: %d", length)
	default:
		contents := make([]byte, length)
		if _, err := io.ReadFull(source, contents); err != nil {
			return nil, fmt.Errorf("cannot read [value] content: %w", err)
		}
		return &Value{Type: ValueTypeRegular, Contents: contents}, nil
	}
}

func WriteValue(v *Value, dest io.Writer) error {
	if v == nil || v.Type == ValueTypeNull {
		return WriteInt(-1, dest)
	}
	if v.Type == ValueTypeUnset {
		return WriteInt(-2, dest)
	}
	if err := WriteInt(int32(len(v.Contents)), dest); err != nil {
		return fmt.Errorf("cannot write [value] length: %w", err)
	}
	if n, err := dest.Write(v.Contents); err != nil {
		return fmt.Errorf("cannot write [value] content: %w", err)
	} else if n < len(v.Contents) {
		return fmt.Errorf("not enough capacity to write [value] content")
	}
	return nil
}

func LengthOfValue(v *Value) int {
	if v == nil || v.Type != ValueTypeRegular {
		return LengthOfInt
	}
	return LengthOfInt + len(v.Contents)
}
