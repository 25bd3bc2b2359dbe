package primitive

import (
	"fmt"
	"io"
)

// [string]: a [short] length N followed by N UTF-8 bytes.

func ReadString(source io.Reader) (string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return "", fmt.Errorf("cannot read [string] length: %w", err)
	}
	decoded := make([]byte, length)
	if _, err := io.ReadFull(source, decoded); err != nil {
		return "", fmt.Errorf("cannot read [string] content: %w", err)
	}
	return string(decoded), nil
}

func WriteString(s string, dest io.Writer) error {
	length := len(s)
	if err := WriteShort(uint16(length), dest); err != nil {
		return fmt.Errorf("cannot write [string] length: %w", err)
	}
	if n, err := dest.Write([]byte(s)); err != nil {
		return fmt.Errorf("cannot write [string] content: %w", err)
	} else if n < length {
		return fmt.Errorf("not enough capacity to write [string] content")
	}
	return nil
}

func LengthOfString(s string) int {
	return LengthOfShort + len(s)
}

// [long string]: an [int] length N followed by N UTF-8 bytes.

func ReadLongString(source io.Reader) (string, error) {
	length, err := ReadInt(source)
	if err != nil {
		return "", fmt.Errorf("cannot read [long string] length: %w", err)
	} else if length < 0 {
		return "", fmt.Errorf("invalid [long string] length: %d", length)
	}
	decoded := make([]byte, length)
	if _, err := io.ReadFull(source, decoded); err != nil {
		return "", fmt.Errorf("cannot read [long string] content: %w", err)
	}
	return string(decoded), nil
}

func WriteLongString(s string, dest io.Writer) error {
	length := len(s)
	if err := WriteInt(int32(length), dest); err != nil {
		return fmt.Errorf("cannot write [long string] length: %w", err)
	}
	if n, err := dest.Write([]byte(s)); err != nil {
		return fmt.Errorf("cannot write [long string] content: %w", err)
	} else if n < length {
		return fmt.Errorf("not enough capacity to write [long string] content")
	}
	return nil
}

func LengthOfLongString(s string) int {
	return LengthOfInt + len(s)
}

// [string list]

func ReadStringList(source io.Reader) ([]string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [string list] length: %w", err)
	}
	list := make([]string, length)
	for i := range list {
		if list[i], err = ReadString(source); err != nil {
			return nil, fmt.Errorf("cannot read [string list] element %d: %w", i, err)
		}
	}
	return list, nil
}

func WriteStringList(list []string, dest io.Writer) error {
	if err := WriteShort(uint16(len(list)), dest); err != nil {
		return fmt.Errorf("cannot write [string list] length: %w", err)
	}
	for i, s := range list {
		if err := WriteString(s, dest); err != nil {
			return fmt.Errorf("cannot write [string list] element %d: %w", i, err)
		}
	}
	return nil
}

func LengthOfStringList(list []string) int {
	length := LengthOfShort
	for _, s := range list {
		length += LengthOfString(s)
	}
	return length
}
