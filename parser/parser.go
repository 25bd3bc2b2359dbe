package parser

import (
	tidb "github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/schema"
)

// Parser wraps a TiDB SQL parser instance, which keeps scratch state between
// calls: one instance may be reused for sequential Parse calls but must not
// be shared by concurrent goroutines (the server gives every connection
// handler its own parser.New()).
type Parser struct {
	inner *tidb.Parser
}

func New() *Parser {
	return &Parser{inner: tidb.New()}
}

// Parse parses cql and lowers it into a ParsedStatement, consulting catalog
// to resolve table/column references. Exactly one statement is accepted;
// anything else (empty input, multiple statements) is Invalid.
func (p *Parser) Parse(cql string, catalog *schema.Catalog) (*ParsedStatement, error) {
	stmts, _, err := p.inner.Parse(cql, "", "")
	if err != nil {
		return nil, dberr.SyntaxError("%s", err)
	}
	if len(stmts) != 1 {
		return nil, dberr.Invalid("exactly one statement is supported per request, got %d", len(stmts))
	}

	switch stmt := stmts[0].(type) {
	case *ast.CreateTableStmt:
		table, err := lowerCreateTable(stmt)
		if err != nil {
			return nil, err
		}
		return &ParsedStatement{Create: table}, nil

	case *ast.InsertStmt:
		tableName, err := tableNameFrom(stmt.Table)
		if err != nil {
			return nil, err
		}
		table, err := catalog.Lookup(tableName)
		if err != nil {
			return nil, err
		}
		insert, err := lowerInsert(stmt, table)
		if err != nil {
			return nil, err
		}
		return &ParsedStatement{Insert: insert}, nil

	case *ast.SelectStmt:
		tableName, err := tableNameFrom(stmt.From)
		if err != nil {
			return nil, err
		}
		table, err := catalog.Lookup(tableName)
		if err != nil {
			return nil, err
		}
		query, err := lowerSelect(stmt, table)
		if err != nil {
			return nil, err
		}
		return &ParsedStatement{Select: query}, nil

	default:
		return nil, dberr.Invalid("unsupported statement type %T", stmt)
	}
}
