package parser

import (
	"strconv"

	"github.com/pingcap/tidb/pkg/parser/ast"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/row"
	"github.com/rickfast/tarrasque-go/schema"
)

// lowerInsert resolves each named column against table, coerces its literal
// into a typed Value, and classifies which columns belong to the
// partition/clustering key — needed by the executor to compute the storage
// key without re-consulting the catalog.
func lowerInsert(stmt *ast.InsertStmt, table *schema.TableMetadata) (*ParsedInsert, error) {
	if len(stmt.Lists) != 1 {
		return nil, dberr.Invalid("INSERT supports exactly one VALUES row, got %d", len(stmt.Lists))
	}
	values := stmt.Lists[0]
	if len(stmt.Columns) != len(values) {
		return nil, dberr.Invalid("INSERT column count (%d) does not match VALUES count (%d)", len(stmt.Columns), len(values))
	}

	insert := &ParsedInsert{Table: table.Name}
	insert.Columns = make([]string, len(stmt.Columns))
	insert.Values = make([]ParsedExpr, len(values))

	for i, colName := range stmt.Columns {
		name := colName.Name.L
		col, ok := table.Columns.Lookup(name)
		if !ok {
			return nil, dberr.Invalid("unknown column %q in table %q", name, table.Name)
		}
		insert.Columns[i] = name

		valueExpr, ok := values[i].(ast.ExprNode)
		if !ok {
			return nil, dberr.Invalid("unsupported VALUES expression for column %q", name)
		}
		lit, err := CoerceLiteral(valueExpr, col.Type)
		if err != nil {
			return nil, err
		}
		litCopy := lit
		insert.Values[i] = ParsedExpr{Literal: &litCopy}

		switch col.Kind {
		case schema.KindPartitionKey:
			insert.PartitionKey = append(insert.PartitionKey, literalText(lit))
		case schema.KindClustering:
			insert.ClusteringKey = append(insert.ClusteringKey, literalText(lit))
		}
	}
	return insert, nil
}

// literalText is the textual representation of a resolved literal used for
// storage-key concatenation: integer-shaped types (including date, time and
// timestamp) render as signed decimal text and booleans as "true"/"false";
// every other type uses its payload bytes as-is, which is exact for
// varchar/ascii (the key is opaque to the storage engine; only equality and
// prefix matter).
func literalText(v row.Value) string {
	if v.Null {
		return ""
	}
	switch v.Type {
	case coltype.Int, coltype.Bigint, coltype.Smallint, coltype.Tinyint, coltype.Counter,
		coltype.Date, coltype.Time, coltype.Timestamp:
		var n int64
		for i, b := range v.Contents {
			if i == 0 {
				n = int64(int8(b))
			} else {
				n = n<<8 | int64(b)
			}
		}
		return strconv.FormatInt(n, 10)
	case coltype.Boolean:
		return strconv.FormatBool(len(v.Contents) == 1 && v.Contents[0] != 0)
	}
	return string(v.Contents)
}
