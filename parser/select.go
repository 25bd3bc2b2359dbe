package parser

import (
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/opcode"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/schema"
)

// lowerSelect resolves every projected expression against table and, when
// the WHERE clause has the shape `partition_key = <literal>`, records that
// literal as the partition-key prefix the executor uses for key selection.
// A `column = literal` or `column != literal` comparison on any other column
// is still recorded in Filters and, per the decided residual-filter-evaluation
// behavior (see the executor), applied in-stream rather than used for key
// selection; every other WHERE shape is rejected as Invalid.
func lowerSelect(stmt *ast.SelectStmt, table *schema.TableMetadata) (*ParsedQuery, error) {
	if stmt.From == nil {
		return nil, dberr.Invalid("SELECT without FROM is not supported")
	}

	query := &ParsedQuery{
		Table:       table.Name,
		Filters:     make(map[string]ParsedFilter),
		ColumnCount: table.Columns.Len(),
	}

	if stmt.Fields == nil || len(stmt.Fields.Fields) == 0 {
		return nil, dberr.Invalid("SELECT requires an explicit projection list")
	}
	for _, field := range stmt.Fields.Fields {
		if field.WildCard != nil {
			for _, col := range table.Columns.All() {
				query.Projection = append(query.Projection, ParsedExpr{Column: &ProjectedColumn{TargetColumn: col.Name}})
			}
			continue
		}
		expr, err := lowerProjectedExpr(field.Expr, table)
		if err != nil {
			return nil, err
		}
		query.Projection = append(query.Projection, expr)
	}

	if stmt.Where != nil {
		if err := lowerWhere(stmt.Where, table, query); err != nil {
			return nil, err
		}
	}

	return query, nil
}

func lowerProjectedExpr(expr ast.ExprNode, table *schema.TableMetadata) (ParsedExpr, error) {
	switch e := expr.(type) {
	case *ast.ColumnNameExpr:
		name := e.Name.Name.L
		if _, ok := table.Columns.Lookup(name); !ok {
			return ParsedExpr{}, dberr.Invalid("unknown column %q in table %q", name, table.Name)
		}
		return ParsedExpr{Column: &ProjectedColumn{TargetColumn: name}}, nil
	case *ast.FuncCallExpr:
		name := e.FnName.L
		if _, err := LookupFilter(name); err != nil {
			return ParsedExpr{}, err
		}
		// Literal arguments take the type of the call's column argument, so
		// eq(id, 1) compares an int column against an int literal.
		var litType coltype.Type
		for _, argExpr := range e.Args {
			if c, ok := argExpr.(*ast.ColumnNameExpr); ok {
				col, _ := table.Columns.Lookup(c.Name.Name.L)
				litType = col.Type
			}
		}
		args := make([]ParsedExpr, len(e.Args))
		for i, argExpr := range e.Args {
			if _, ok := argExpr.(ast.ValueExpr); ok {
				lit, err := CoerceLiteral(argExpr, litType)
				if err != nil {
					return ParsedExpr{}, err
				}
				args[i] = ParsedExpr{Literal: &lit}
				continue
			}
			arg, err := lowerProjectedExpr(argExpr, table)
			if err != nil {
				return ParsedExpr{}, err
			}
			args[i] = arg
		}
		return ParsedExpr{Function: &ParsedFunction{Name: name, Args: args}}, nil
	default:
		return ParsedExpr{}, dberr.Invalid("unsupported expression in projection")
	}
}

// lowerWhere handles the one supported WHERE shape, `column = literal` (and
// its `!=` sibling), classifying it as the partition-key prefix when column
// is the table's sole partition key, and recording it as a residual filter
// regardless.
func lowerWhere(where ast.ExprNode, table *schema.TableMetadata, query *ParsedQuery) error {
	bin, ok := where.(*ast.BinaryOperationExpr)
	if !ok {
		return dberr.Invalid("unsupported WHERE clause shape")
	}

	colExpr, ok := bin.L.(*ast.ColumnNameExpr)
	if !ok {
		return dberr.Invalid("WHERE clause must compare a column to a literal")
	}
	colName := colExpr.Name.Name.L
	col, ok := table.Columns.Lookup(colName)
	if !ok {
		return dberr.Invalid("unknown column %q in WHERE clause", colName)
	}

	var funcName string
	switch bin.Op {
	case opcode.EQ:
		funcName = "eq"
	case opcode.NE:
		funcName = "neq"
	default:
		return dberr.Invalid("unsupported WHERE comparison operator")
	}

	lit, err := CoerceLiteral(bin.R, col.Type)
	if err != nil {
		return err
	}
	litCopy := lit
	filter := ParsedFilter{
		Column: colName,
		Func:   funcName,
		Args: []ParsedExpr{
			{Column: &ProjectedColumn{TargetColumn: colName}},
			{Literal: &litCopy},
		},
	}
	query.Filters[colName] = filter

	for _, pk := range table.PartitionKey {
		if pk == colName && funcName == "eq" {
			query.PartitionKey = append(query.PartitionKey, literalText(lit))
		}
	}
	return nil
}
