// Package exec implements the executor (C7): CREATE/INSERT/SELECT against
// the schema catalog and KV storage engine, including expression evaluation
// for projections and WHERE filters.
package exec

import (
	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/parser"
	"github.com/rickfast/tarrasque-go/row"
)

// evalExpr evaluates a ParsedExpr against a hydrated row (column name ->
// value): a bare Column looks itself up, a Literal passes through
// untouched, and a Function evaluates its arguments and invokes the named
// built-in, materializing its bool result as a Boolean value so the same
// evaluator serves both WHERE filters and projected function calls.
func evalExpr(expr parser.ParsedExpr, values map[string]row.Value) (row.Value, error) {
	switch {
	case expr.Column != nil:
		v, ok := values[expr.Column.TargetColumn]
		if !ok {
			return row.Value{}, dberr.ServerError("column %q missing from hydrated row", expr.Column.TargetColumn)
		}
		return v, nil
	case expr.Literal != nil:
		return *expr.Literal, nil
	case expr.Function != nil:
		args := make([]row.Value, len(expr.Function.Args))
		for i, argExpr := range expr.Function.Args {
			v, err := evalExpr(argExpr, values)
			if err != nil {
				return row.Value{}, err
			}
			args[i] = v
		}
		fn, err := parser.LookupFilter(expr.Function.Name)
		if err != nil {
			return row.Value{}, err
		}
		result, err := fn(args)
		if err != nil {
			return row.Value{}, err
		}
		b := byte(0)
		if result {
			b = 1
		}
		return row.NewValue(coltype.Boolean, []byte{b}), nil
	default:
		return row.Value{}, dberr.ServerError("empty ParsedExpr")
	}
}

// evalFilter evaluates a ParsedFilter as a boolean predicate.
func evalFilter(filter parser.ParsedFilter, values map[string]row.Value) (bool, error) {
	v, err := evalExpr(parser.ParsedExpr{Function: &parser.ParsedFunction{Name: filter.Func, Args: filter.Args}}, values)
	if err != nil {
		return false, err
	}
	return len(v.Contents) == 1 && v.Contents[0] != 0, nil
}
