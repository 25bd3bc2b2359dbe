// Package parser turns CQL statement text plus a live schema.Catalog into a
// typed, executable ParsedStatement. It uses the generic SQL parser
// available in this project's dependency set — github.com/pingcap/tidb's
// parser package, configured for its default (MySQL-family) dialect, the
// closest available stand-in for "a dialect permitting identifiers
// beginning with letters and containing letters/digits/underscore."
package parser

import (
	"github.com/rickfast/tarrasque-go/row"
	"github.com/rickfast/tarrasque-go/schema"
)

// ParsedStatement is the sum of the three statement shapes this server
// accepts.
type ParsedStatement struct {
	Select *ParsedQuery
	Create *schema.TableMetadata
	Insert *ParsedInsert
}

// ProjectedColumn names a column referenced from a SELECT projection or a
// Function argument.
type ProjectedColumn struct {
	TargetColumn string
}

// ParsedExpr is the closed sum type for everything that can appear in a
// SELECT projection or as a Function argument: a bare column reference, a
// function call over nested expressions, or a literal value. Functions are
// resolved by stable string name against the built-in catalog (builtins.go)
// rather than by pointer, so a ParsedExpr never outlives the catalog it was
// built from but also never needs to reference it directly.
type ParsedExpr struct {
	Column   *ProjectedColumn
	Function *ParsedFunction
	Literal  *row.Value
}

// ParsedFunction is a named built-in invocation with its (already parsed)
// argument expressions.
type ParsedFunction struct {
	Name string
	Args []ParsedExpr
}

// ParsedFilter is one WHERE-clause predicate: a named built-in comparison
// function applied to the column's runtime value and the given argument
// expressions.
type ParsedFilter struct {
	Column string
	Func   string
	Args   []ParsedExpr
}

// ParsedQuery is the lowered form of a SELECT statement.
type ParsedQuery struct {
	Table         string
	PartitionKey  []string
	ClusteringKey []string
	Projection    []ParsedExpr
	Filters       map[string]ParsedFilter
	ColumnCount   int
}

// ParsedInsert is the lowered form of an INSERT statement.
type ParsedInsert struct {
	Table         string
	PartitionKey  []string
	ClusteringKey []string
	Columns       []string
	Values        []ParsedExpr
}
