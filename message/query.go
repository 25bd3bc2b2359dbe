package message

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/primitive"
)

// Query carries a CQL statement string plus its bind options.
type Query struct {
	CqlQuery string
	Options  *QueryOptions
}

func (m *Query) IsResponse() bool {
	return false
}

func (m *Query) GetOpCode() primitive.OpCode {
	return primitive.OpCodeQuery
}

func (m *Query) String() string {
	return fmt.Sprintf("QUERY %q", m.CqlQuery)
}

// QueryOptions is the subset of CQL v4 query options this server honors:
// the consistency level (accepted but unenforced, since there is no
// replication to tune) and positional/named bound values. Paging, serial
// consistency, and default timestamps are decoded (so the flags byte stays
// self-consistent with real drivers) but otherwise ignored, since paging
// and lightweight transactions are out of scope.
type QueryOptions struct {
	Consistency      primitive.ConsistencyLevel
	PositionalValues []*primitive.Value
	NamedValues      map[string]*primitive.Value
	SkipMetadata     bool
	PageSize         int32
}

func (o *QueryOptions) flags() primitive.QueryFlag {
	var flags primitive.QueryFlag
	if o.PositionalValues != nil {
		flags = flags.Add(primitive.QueryFlagValues)
	} else if o.NamedValues != nil {
		flags = flags.Add(primitive.QueryFlagValues)
		flags = flags.Add(primitive.QueryFlagValueNames)
	}
	if o.SkipMetadata {
		flags = flags.Add(primitive.QueryFlagSkipMetadata)
	}
	if o.PageSize > 0 {
		flags = flags.Add(primitive.QueryFlagPageSize)
	}
	return flags
}

type queryCodec struct{}

func (c *queryCodec) Encode(msg Message, dest io.Writer, version primitive.ProtocolVersion) error {
	query, ok := msg.(*Query)
	if !ok {
		return fmt.Errorf("expected *message.Query, got %T", msg)
	}
	if err := primitive.WriteLongString(query.CqlQuery, dest); err != nil {
		return fmt.Errorf("cannot write QUERY query string: %w", err)
	}
	return encodeQueryOptions(query.Options, dest, version)
}

func (c *queryCodec) EncodedLength(msg Message, version primitive.ProtocolVersion) (int, error) {
	query, ok := msg.(*Query)
	if !ok {
		return -1, fmt.Errorf("expected *message.Query, got %T", msg)
	}
	length := primitive.LengthOfLongString(query.CqlQuery)
	length += lengthOfQueryOptions(query.Options)
	return length, nil
}

func (c *queryCodec) Decode(source io.Reader, version primitive.ProtocolVersion) (Message, error) {
	cqlQuery, err := primitive.ReadLongString(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read QUERY query string: %w", err)
	}
	options, err := decodeQueryOptions(source, version)
	if err != nil {
		return nil, fmt.Errorf("cannot read QUERY options: %w", err)
	}
	return &Query{CqlQuery: cqlQuery, Options: options}, nil
}

func (c *queryCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeQuery
}

func encodeQueryOptions(o *QueryOptions, dest io.Writer, _ primitive.ProtocolVersion) error {
	if o == nil {
		o = &QueryOptions{}
	}
	if err := primitive.WriteShort(uint16(o.Consistency), dest); err != nil {
		return fmt.Errorf("cannot write consistency: %w", err)
	}
	flags := o.flags()
	if err := primitive.WriteByte(uint8(flags), dest); err != nil {
		return fmt.Errorf("cannot write query flags: %w", err)
	}
	if flags.Contains(primitive.QueryFlagValues) {
		if flags.Contains(primitive.QueryFlagValueNames) {
			if err := primitive.WriteShort(uint16(len(o.NamedValues)), dest); err != nil {
				return fmt.Errorf("cannot write named values count: %w", err)
			}
			for name, value := range o.NamedValues {
				if err := primitive.WriteString(name, dest); err != nil {
					return fmt.Errorf("cannot write named value %q name: %w", name, err)
				}
				if err := primitive.WriteValue(value, dest); err != nil {
					return fmt.Errorf("cannot write named value %q: %w", name, err)
				}
			}
		} else {
			if err := primitive.WriteShort(uint16(len(o.PositionalValues)), dest); err != nil {
				return fmt.Errorf("cannot write positional values count: %w", err)
			}
			for i, value := range o.PositionalValues {
				if err := primitive.WriteValue(value, dest); err != nil {
					return fmt.Errorf("cannot write positional value %d: %w", i, err)
				}
			}
		}
	}
	if flags.Contains(primitive.QueryFlagPageSize) {
		if err := primitive.WriteInt(o.PageSize, dest); err != nil {
			return fmt.Errorf("cannot write page size: %w", err)
		}
	}
	return nil
}

func lengthOfQueryOptions(o *QueryOptions) int {
	if o == nil {
		o = &QueryOptions{}
	}
	length := primitive.LengthOfShort // consistency
	length += primitive.LengthOfByte  // flags
	flags := o.flags()
	if flags.Contains(primitive.QueryFlagValues) {
		length += primitive.LengthOfShort
		if flags.Contains(primitive.QueryFlagValueNames) {
			for name, value := range o.NamedValues {
				length += primitive.LengthOfString(name) + primitive.LengthOfValue(value)
			}
		} else {
			for _, value := range o.PositionalValues {
				length += primitive.LengthOfValue(value)
			}
		}
	}
	if flags.Contains(primitive.QueryFlagPageSize) {
		length += primitive.LengthOfInt
	}
	return length
}

func decodeQueryOptions(source io.Reader, _ primitive.ProtocolVersion) (*QueryOptions, error) {
	consistency, err := primitive.ReadShort(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read consistency: %w", err)
	}
	flagByte, err := primitive.ReadByte(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read query flags: %w", err)
	}
	flags := primitive.QueryFlag(flagByte)
	o := &QueryOptions{Consistency: primitive.ConsistencyLevel(consistency)}
	if flags.Contains(primitive.QueryFlagValues) {
		count, err := primitive.ReadShort(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read values count: %w", err)
		}
		if flags.Contains(primitive.QueryFlagValueNames) {
			o.NamedValues = make(map[string]*primitive.Value, count)
			for i := uint16(0); i < count; i++ {
				name, err := primitive.ReadString(source)
				if err != nil {
					return nil, fmt.Errorf("cannot read named value %d name: %w", i, err)
				}
				value, err := primitive.ReadValue(source)
				if err != nil {
					return nil, fmt.Errorf("cannot read named value %d: %w", i, err)
				}
				o.NamedValues[name] = value
			}
		} else {
			o.PositionalValues = make([]*primitive.Value, count)
			for i := uint16(0); i < count; i++ {
				value, err := primitive.ReadValue(source)
				if err != nil {
					return nil, fmt.Errorf("cannot read positional value %d: %w", i, err)
				}
				o.PositionalValues[i] = value
			}
		}
	}
	if flags.Contains(primitive.QueryFlagSkipMetadata) {
		o.SkipMetadata = true
	}
	if flags.Contains(primitive.QueryFlagPageSize) {
		if o.PageSize, err = primitive.ReadInt(source); err != nil {
			return nil, fmt.Errorf("cannot read page size: %w", err)
		}
	}
	if flags.Contains(primitive.QueryFlagPagingState) {
		if _, err := primitive.ReadBytes(source); err != nil {
			return nil, fmt.Errorf("cannot read paging state: %w", err)
		}
	}
	if flags.Contains(primitive.QueryFlagSerialConsistency) {
		if _, err := primitive.ReadShort(source); err != nil {
			return nil, fmt.Errorf("cannot read serial consistency: %w", err)
		}
	}
	if flags.Contains(primitive.QueryFlagDefaultTimestamp) {
		if _, err := primitive.ReadLong(source); err != nil {
			return nil, fmt.Errorf("cannot read default timestamp: %w", err)
		}
	}
	return o, nil
}
