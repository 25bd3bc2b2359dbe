package parser

import (
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/row"
)

// FilterFunc evaluates a built-in filter predicate over already-resolved
// argument values.
type FilterFunc func(args []row.Value) (bool, error)

// filterCatalog is the small, immutable, name-keyed set of built-in filter
// functions: functions are resolved by stable string name, never by
// pointer, so a ParsedFilter can be stored and compared without any
// lifetime tie to the catalog.
var filterCatalog = map[string]FilterFunc{
	"eq":  filterEq,
	"neq": filterNeq,
}

// reservedFilterNames are filter names the CQL grammar recognizes as
// comparison operators but that this server does not implement: using them
// is rejected with Invalid rather than silently mis-evaluated.
var reservedFilterNames = map[string]bool{
	"gt":  true,
	"gte": true,
	"lt":  true,
	"lte": true,
}

func filterEq(args []row.Value) (bool, error) {
	if len(args) != 2 {
		return false, dberr.Invalid("eq filter requires exactly 2 arguments, got %d", len(args))
	}
	a, b := args[0], args[1]
	if a.Null && b.Null {
		return true, nil
	}
	if a.Null || b.Null {
		return false, nil
	}
	return a.Equal(b), nil
}

func filterNeq(args []row.Value) (bool, error) {
	eq, err := filterEq(args)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// LookupFilter resolves name against the built-in filter catalog, returning
// an Invalid error that distinguishes "reserved but unimplemented" from
// "unknown function entirely."
func LookupFilter(name string) (FilterFunc, error) {
	if fn, ok := filterCatalog[name]; ok {
		return fn, nil
	}
	if reservedFilterNames[name] {
		return nil, dberr.Invalid("comparison filter %q is reserved and not yet implemented", name)
	}
	return nil, dberr.Invalid("unknown filter function %q", name)
}
