// Package primitive implements the CQL v4 wire primitives: the fixed-width
// integers, length-delimited strings and byte sequences, and maps that every
// higher-level frame and message is built out of.
package primitive

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	LengthOfByte  = 1
	LengthOfShort = 2
	LengthOfInt   = 4
	LengthOfLong  = 8
)

// [byte] ([byte] is not defined in the protocol spec but is used by every other primitive)

func ReadByte(source io.Reader) (decoded uint8, err error) {
	if err = binary.Read(source, binary.BigEndian, &decoded); err != nil {
		err = fmt.Errorf("cannot read [byte]: %w", err)
	}
	return decoded, err
}

func WriteByte(b uint8, dest io.Writer) error {
	if err := binary.Write(dest, binary.BigEndian, b); err != nil {
		return fmt.Errorf("cannot write [byte]: %w", err)
	}
	return nil
}

// [short]

func ReadShort(source io.Reader) (decoded uint16, err error) {
	if err = binary.Read(source, binary.BigEndian, &decoded); err != nil {
		err = fmt.Errorf("cannot read [short]: %w", err)
	}
	return decoded, err
}

func WriteShort(i uint16, dest io.Writer) error {
	if err := binary.Write(dest, binary.BigEndian, i); err != nil {
		return fmt.Errorf("cannot write [short]: %w", err)
	}
	return nil
}

// [int]

func ReadInt(source io.Reader) (decoded int32, err error) {
	if err = binary.Read(source, binary.BigEndian, &decoded); err != nil {
		err = fmt.Errorf("cannot read [int]: %w", err)
	}
	return decoded, err
}

func WriteInt(i int32, dest io.Writer) error {
	if err := binary.Write(dest, binary.BigEndian, i); err != nil {
		return fmt.Errorf("cannot write [int]: %w", err)
	}
	return nil
}

// [long]

func ReadLong(source io.Reader) (decoded int64, err error) {
	if err = binary.Read(source, binary.BigEndian, &decoded); err != nil {
		err = fmt.Errorf("cannot read [long]: %w", err)
	}
	return decoded, err
}

func WriteLong(l int64, dest io.Writer) error {
	if err := binary.Write(dest, binary.BigEndian, l); err != nil {
		return fmt.Errorf("cannot write [long]: %w", err)
	}
	return nil
}

// bool, encoded as a single byte (0 = false, 1 = true).

func ReadBool(source io.Reader) (bool, error) {
	b, err := ReadByte(source)
	if err != nil {
		return false, fmt.Errorf("cannot read [bool]: %w", err)
	}
	return b != 0, nil
}

func WriteBool(b bool, dest io.Writer) error {
	var v uint8
	if b {
		v = 1
	}
	if err := WriteByte(v, dest); err != nil {
		return fmt.Errorf("cannot write [bool]: %w", err)
	}
	return nil
}

// float/double, IEEE-754.

func ReadFloat(source io.Reader) (decoded float32, err error) {
	if err = binary.Read(source, binary.BigEndian, &decoded); err != nil {
		err = fmt.Errorf("cannot read [float]: %w", err)
	}
	return decoded, err
}

func WriteFloat(f float32, dest io.Writer) error {
	if err := binary.Write(dest, binary.BigEndian, f); err != nil {
		return fmt.Errorf("cannot write [float]: %w", err)
	}
	return nil
}

func ReadDouble(source io.Reader) (decoded float64, err error) {
	if err = binary.Read(source, binary.BigEndian, &decoded); err != nil {
		err = fmt.Errorf("cannot read [double]: %w", err)
	}
	return decoded, err
}

func WriteDouble(d float64, dest io.Writer) error {
	if err := binary.Write(dest, binary.BigEndian, d); err != nil {
		return fmt.Errorf("cannot write [double]: %w", err)
	}
	return nil
}
