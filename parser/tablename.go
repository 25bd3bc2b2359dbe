package parser

import (
	"github.com/pingcap/tidb/pkg/parser/ast"

	"github.com/rickfast/tarrasque-go/dberr"
)

// tableNameFrom extracts the single table name out of a FROM/INTO clause.
// Joins, subqueries, and multi-table references are not in scope; any shape
// other than "a single bare table reference" is an Invalid statement.
func tableNameFrom(refs *ast.TableRefsClause) (string, error) {
	if refs == nil || refs.TableRefs == nil {
		return "", dberr.Invalid("missing table reference")
	}
	join := refs.TableRefs
	if join.Right != nil {
		return "", dberr.Invalid("joins are not supported")
	}
	source, ok := join.Left.(*ast.TableSource)
	if !ok {
		return "", dberr.Invalid("unsupported table reference shape")
	}
	name, ok := source.Source.(*ast.TableName)
	if !ok {
		return "", dberr.Invalid("subqueries are not supported in FROM/INTO")
	}
	return name.Name.L, nil
}
