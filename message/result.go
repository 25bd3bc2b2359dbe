package message

import (
	"fmt"
	"io"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/primitive"
)

// Result is any of the three RESULT body shapes this server produces;
// exactly one of the fields below is non-nil.
type Result struct {
	Void        *VoidResult
	Rows        *RowsResult
	SetKeyspace *SetKeyspaceResult
}

func (m *Result) IsResponse() bool {
	return true
}

func (m *Result) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func (m *Result) String() string {
	switch {
	case m.Void != nil:
		return "RESULT Void"
	case m.SetKeyspace != nil:
		return fmt.Sprintf("RESULT SetKeyspace(%s)", m.SetKeyspace.Name)
	case m.Rows != nil:
		return fmt.Sprintf("RESULT Rows(%d columns, %d rows)", len(m.Rows.Metadata.Columns), len(m.Rows.Data))
	default:
		return "RESULT <empty>"
	}
}

func NewVoidResult() *Result {
	return &Result{Void: &VoidResult{}}
}

func NewSetKeyspaceResult(name string) *Result {
	return &Result{SetKeyspace: &SetKeyspaceResult{Name: name}}
}

func NewRowsResult(metadata *RowsMetadata, data [][][]byte) *Result {
	return &Result{Rows: &RowsResult{Metadata: metadata, Data: data}}
}

// VoidResult carries no payload.
type VoidResult struct{}

// SetKeyspaceResult names the keyspace a USE statement switched to. This
// server has no keyspace concept; it is carried only for wire completeness
// (no statement this server parses ever produces it).
type SetKeyspaceResult struct {
	Name string
}

// RowsResult is a RESULT body of kind Rows: column metadata plus the row
// data, each cell already serialized into its wire [bytes] encoding.
type RowsResult struct {
	Metadata *RowsMetadata
	Data     [][][]byte
}

// RowsMetadata describes the columns of a Rows result. GlobalTableSpec is
// honored whenever every column in Columns shares one keyspace/table name,
// which is always true for this server (it has no cross-table projections).
type RowsMetadata struct {
	GlobalTableSpec bool
	Keyspace        string
	Table           string
	Columns         []ResultColumn
}

// ResultColumn describes one projected column's name and wire type. Only
// scalar, unparameterized types are in scope, so the type-parameter tail
// the wire format reserves for collections is never emitted.
type ResultColumn struct {
	Keyspace string
	Table    string
	Name     string
	Type     coltype.Type
}

type resultCodec struct{}

func (c *resultCodec) Encode(msg Message, dest io.Writer, version primitive.ProtocolVersion) error {
	r, ok := msg.(*Result)
	if !ok {
		return fmt.Errorf("expected *message.Result, got %T", msg)
	}
	switch {
	case r.Void != nil:
		return primitive.WriteInt(int32(primitive.ResultTypeVoid), dest)
	case r.SetKeyspace != nil:
		if err := primitive.WriteInt(int32(primitive.ResultTypeSetKeyspace), dest); err != nil {
			return fmt.Errorf("cannot write RESULT kind: %w", err)
		}
		if err := primitive.WriteString(r.SetKeyspace.Name, dest); err != nil {
			return fmt.Errorf("cannot write RESULT SetKeyspace name: %w", err)
		}
		return nil
	case r.Rows != nil:
		if err := primitive.WriteInt(int32(primitive.ResultTypeRows), dest); err != nil {
			return fmt.Errorf("cannot write RESULT kind: %w", err)
		}
		return encodeRows(r.Rows, dest)
	default:
		return fmt.Errorf("empty *message.Result has no wire representation")
	}
}

func (c *resultCodec) EncodedLength(msg Message, version primitive.ProtocolVersion) (int, error) {
	r, ok := msg.(*Result)
	if !ok {
		return -1, fmt.Errorf("expected *message.Result, got %T", msg)
	}
	switch {
	case r.Void != nil:
		return primitive.LengthOfInt, nil
	case r.SetKeyspace != nil:
		return primitive.LengthOfInt + primitive.LengthOfString(r.SetKeyspace.Name), nil
	case r.Rows != nil:
		return primitive.LengthOfInt + lengthOfRows(r.Rows), nil
	default:
		return -1, fmt.Errorf("empty *message.Result has no wire representation")
	}
}

func (c *resultCodec) Decode(source io.Reader, version primitive.ProtocolVersion) (Message, error) {
	kind, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read RESULT kind: %w", err)
	}
	switch kind {
	case int32(primitive.ResultTypeVoid):
		return &Result{Void: &VoidResult{}}, nil
	case int32(primitive.ResultTypeSetKeyspace):
		name, err := primitive.ReadString(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read RESULT SetKeyspace name: %w", err)
		}
		return &Result{SetKeyspace: &SetKeyspaceResult{Name: name}}, nil
	case int32(primitive.ResultTypeRows):
		rows, err := decodeRows(source)
		if err != nil {
			return nil, err
		}
		return &Result{Rows: rows}, nil
	default:
		return nil, fmt.Errorf("unknown RESULT kind 0x%08x", kind)
	}
}

func (c *resultCodec) GetOpCode() primitive.OpCode {
	return primitive.OpCodeResult
}

func encodeRows(rows *RowsResult, dest io.Writer) error {
	var flags int32
	if rows.Metadata.GlobalTableSpec {
		flags |= primitive.RowsFlagGlobalTablesSpec
	}
	if err := primitive.WriteInt(flags, dest); err != nil {
		return fmt.Errorf("cannot write ROWS flags: %w", err)
	}
	if err := primitive.WriteInt(int32(len(rows.Metadata.Columns)), dest); err != nil {
		return fmt.Errorf("cannot write ROWS column_count: %w", err)
	}
	if rows.Metadata.GlobalTableSpec {
		if err := primitive.WriteString(rows.Metadata.Keyspace, dest); err != nil {
			return fmt.Errorf("cannot write ROWS global keyspace: %w", err)
		}
		if err := primitive.WriteString(rows.Metadata.Table, dest); err != nil {
			return fmt.Errorf("cannot write ROWS global table: %w", err)
		}
	}
	for i, col := range rows.Metadata.Columns {
		if !rows.Metadata.GlobalTableSpec {
			if err := primitive.WriteString(col.Keyspace, dest); err != nil {
				return fmt.Errorf("cannot write column %d keyspace: %w", i, err)
			}
			if err := primitive.WriteString(col.Table, dest); err != nil {
				return fmt.Errorf("cannot write column %d table: %w", i, err)
			}
		}
		if err := primitive.WriteString(col.Name, dest); err != nil {
			return fmt.Errorf("cannot write column %d name: %w", i, err)
		}
		if err := primitive.WriteShort(uint16(col.Type), dest); err != nil {
			return fmt.Errorf("cannot write column %d type id: %w", i, err)
		}
	}
	if err := primitive.WriteInt(int32(len(rows.Data)), dest); err != nil {
		return fmt.Errorf("cannot write ROWS row_count: %w", err)
	}
	for r, row := range rows.Data {
		for c, cell := range row {
			if err := primitive.WriteBytes(cell, dest); err != nil {
				return fmt.Errorf("cannot write row %d column %d: %w", r, c, err)
			}
		}
	}
	return nil
}

func lengthOfRows(rows *RowsResult) int {
	length := primitive.LengthOfInt * 2 // flags, column_count
	if rows.Metadata.GlobalTableSpec {
		length += primitive.LengthOfString(rows.Metadata.Keyspace)
		length += primitive.LengthOfString(rows.Metadata.Table)
	}
	for _, col := range rows.Metadata.Columns {
		if !rows.Metadata.GlobalTableSpec {
			length += primitive.LengthOfString(col.Keyspace)
			length += primitive.LengthOfString(col.Table)
		}
		length += primitive.LengthOfString(col.Name)
		length += primitive.LengthOfShort
	}
	length += primitive.LengthOfInt // row_count
	for _, row := range rows.Data {
		for _, cell := range row {
			length += primitive.LengthOfBytes(cell)
		}
	}
	return length
}

func decodeRows(source io.Reader) (*RowsResult, error) {
	flags, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read ROWS flags: %w", err)
	}
	columnCount, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read ROWS column_count: %w", err)
	}
	global := flags&primitive.RowsFlagGlobalTablesSpec != 0
	metadata := &RowsMetadata{GlobalTableSpec: global}
	if global {
		if metadata.Keyspace, err = primitive.ReadString(source); err != nil {
			return nil, fmt.Errorf("cannot read ROWS global keyspace: %w", err)
		}
		if metadata.Table, err = primitive.ReadString(source); err != nil {
			return nil, fmt.Errorf("cannot read ROWS global table: %w", err)
		}
	}
	metadata.Columns = make([]ResultColumn, columnCount)
	for i := int32(0); i < columnCount; i++ {
		col := ResultColumn{Keyspace: metadata.Keyspace, Table: metadata.Table}
		if !global {
			if col.Keyspace, err = primitive.ReadString(source); err != nil {
				return nil, fmt.Errorf("cannot read column %d keyspace: %w", i, err)
			}
			if col.Table, err = primitive.ReadString(source); err != nil {
				return nil, fmt.Errorf("cannot read column %d table: %w", i, err)
			}
		}
		if col.Name, err = primitive.ReadString(source); err != nil {
			return nil, fmt.Errorf("cannot read column %d name: %w", i, err)
		}
		typeId, err := primitive.ReadShort(source)
		if err != nil {
			return nil, fmt.Errorf("cannot read column %d type id: %w", i, err)
		}
		col.Type = coltype.Type(typeId)
		metadata.Columns[i] = col
	}
	rowCount, err := primitive.ReadInt(source)
	if err != nil {
		return nil, fmt.Errorf("cannot read ROWS row_count: %w", err)
	}
	data := make([][][]byte, rowCount)
	for r := int32(0); r < rowCount; r++ {
		row := make([][]byte, columnCount)
		for c := int32(0); c < columnCount; c++ {
			cell, err := primitive.ReadBytes(source)
			if err != nil {
				return nil, fmt.Errorf("cannot read row %d column %d: %w", r, c, err)
			}
			row[c] = cell
		}
		data[r] = row
	}
	return &RowsResult{Metadata: metadata, Data: data}, nil
}
