package primitive

import (
	"fmt"
	"io"
)

// [string map]: a [short] count M followed by M (key, value) [string] pairs.
// Duplicate keys: last write wins, both when decoding and when encoding.

func ReadStringMap(source io.Reader) (map[string]string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [string map] length: %w", err)
	}
	decoded := make(map[string]string, length)
	for i := uint16(0); i < length; i++ {
		key, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string map] entry %d key: %w", i, err)
		}
		value, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string map] entry %d value: %w", i, err)
		}
		decoded[key] = value
	}
	return decoded, nil
}

func WriteStringMap(m map[string]string, dest io.Writer) error {
	if err := WriteShort(uint16(len(m)), dest); err != nil {
		return fmt.Errorf("cannot write [string map] length: %w", err)
	}
	for key, value := range m {
		if err := WriteString(key, dest); err != nil {
			return fmt.Errorf("cannot write [string map] entry %q key: %w", key, err)
		}
		if err := WriteString(value, dest); err != nil {
			return fmt.Errorf("cannot write [string map] entry %q value: %w", key, err)
		}
	}
	return nil
}

func LengthOfStringMap(m map[string]string) int {
	length := LengthOfShort
	for key, value := range m {
		length += LengthOfString(key) + LengthOfString(value)
	}
	return length
}

// [string multimap]: a [short] count M followed by M (key, [string list]) pairs.

func ReadStringMultiMap(source io.Reader) (map[string][]string, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [string multimap] length: %w", err)
	}
	decoded := make(map[string][]string, length)
	for i := uint16(0); i < length; i++ {
		key, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string multimap] entry %d key: %w", i, err)
		}
		value, err := ReadStringList(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [string multimap] entry %d value: %w", i, err)
		}
		decoded[key] = value
	}
	return decoded, nil
}

func WriteStringMultiMap(m map[string][]string, dest io.Writer) error {
	if err := WriteShort(uint16(len(m)), dest); err != nil {
		return fmt.Errorf("cannot write [string multimap] length: %w", err)
	}
	for key, value := range m {
		if err := WriteString(key, dest); err != nil {
			return fmt.Errorf("cannot write [string multimap] entry %q key: %w", key, err)
		}
		if err := WriteStringList(value, dest); err != nil {
			return fmt.Errorf("cannot write [string multimap] entry %q value: %w", key, err)
		}
	}
	return nil
}

func LengthOfStringMultiMap(m map[string][]string) int {
	length := LengthOfShort
	for key, value := range m {
		length += LengthOfString(key) + LengthOfStringList(value)
	}
	return length
}

// [bytes map]: like [string map] but values are [bytes].

func ReadBytesMap(source io.Reader) (map[string][]byte, error) {
	length, err := ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read [bytes map] length: %w", err)
	}
	decoded := make(map[string][]byte, length)
	for i := uint16(0); i < length; i++ {
		key, err := ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [bytes map] entry %d key: %w", i, err)
		}
		value, err := ReadBytes(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read [bytes map] entry %d value: %w", i, err)
		}
		decoded[key] = value
	}
	return decoded, nil
}

func WriteBytesMap(m map[string][]byte, dest io.Writer) error {
	if err := WriteShort(uint16(len(m)), dest); err != nil {
		return fmt.Errorf("cannot write [bytes map] length: %w", err)
	}
	for key, value := range m {
		if err := WriteString(key, dest); err != nil {
			return fmt.Errorf("cannot write [bytes map] entry %q key: %w", key, err)
		}
		if err := WriteBytes(value, dest); err != nil {
			return fmt.Errorf("cannot write [bytes map] entry %q value: %w", key, err)
		}
	}
	return nil
}

func LengthOfBytesMap(m map[string][]byte) int {
	length := LengthOfShort
	for key, value := range m {
		length += LengthOfString(key) + LengthOfBytes(value)
	}
	return length
}
