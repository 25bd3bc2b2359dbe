package parser

import (
	"github.com/pingcap/tidb/pkg/parser/ast"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/schema"
)

// lowerCreateTable builds a schema.TableMetadata from a CREATE TABLE AST
// node. A column marked PRIMARY KEY becomes the sole partition key; this
// server does not yet parse composite or clustering-key PRIMARY KEY
// clauses. A CREATE TABLE with no PRIMARY KEY column is legal: the first
// declared column is used as the partition key, so every row still lands
// under a distinct storage key.
func lowerCreateTable(stmt *ast.CreateTableStmt) (*schema.TableMetadata, error) {
	table := &schema.TableMetadata{
		Name:    stmt.Table.Name.L,
		Columns: schema.NewOrderedColumns(),
	}
	cols := make([]schema.ColumnMetadata, 0, len(stmt.Cols))
	partitionKeyIndex := -1
	for i, col := range stmt.Cols {
		name := col.Name.Name.L
		typeName, err := baseTypeName(col)
		if err != nil {
			return nil, err
		}
		colType, err := coltype.ParseName(typeName)
		if err != nil {
			return nil, dberr.Invalid("column %q: %s", name, err)
		}
		for _, opt := range col.Options {
			if opt.Tp == ast.ColumnOptionPrimaryKey {
				partitionKeyIndex = i
			}
		}
		cols = append(cols, schema.ColumnMetadata{Name: name, Type: colType, Kind: schema.KindRegular})
	}
	if len(cols) == 0 {
		return nil, dberr.Invalid("CREATE TABLE %q: no columns declared", table.Name)
	}
	if partitionKeyIndex == -1 {
		partitionKeyIndex = 0
	}
	cols[partitionKeyIndex].Kind = schema.KindPartitionKey
	table.PartitionKey = append(table.PartitionKey, cols[partitionKeyIndex].Name)
	for _, col := range cols {
		table.Columns.Append(col)
	}
	return table, nil
}

// baseTypeName strips any length/precision parameterization TiDB's type
// printer appends (e.g. "varchar(255)" -> "varchar"); this server's scalar
// types carry no such parameters.
func baseTypeName(col *ast.ColumnDef) (string, error) {
	full := col.Tp.String()
	for i, r := range full {
		if r == '(' || r == ' ' {
			return full[:i], nil
		}
	}
	return full, nil
}
