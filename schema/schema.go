// Package schema implements the in-memory catalog: insertion-ordered table
// metadata behind a readers-writer lock, since DDL is rare but SELECT/INSERT
// planning happens on every request.
package schema

import (
	"sync"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/dberr"
)

// ColumnKind distinguishes the role a column plays in its table.
type ColumnKind int

const (
	KindRegular ColumnKind = iota
	KindPartitionKey
	KindClustering
	KindStatic
)

// ColumnMetadata describes one declared column.
type ColumnMetadata struct {
	Name string
	Type coltype.Type
	Kind ColumnKind
}

// OrderedColumns is an insertion-ordered column list with O(1) name lookup.
// No ordered-map library exists in this project's dependency set (see
// DESIGN.md); this is the minimal structure that preserves the row codec's
// load-bearing iteration order while still supporting name resolution.
type OrderedColumns struct {
	columns []ColumnMetadata
	index   map[string]int
}

func NewOrderedColumns() *OrderedColumns {
	return &OrderedColumns{index: make(map[string]int)}
}

// Append adds col to the end of the column order. Callers must not call
// this after the owning TableMetadata has been published to the catalog.
func (c *OrderedColumns) Append(col ColumnMetadata) {
	c.index[col.Name] = len(c.columns)
	c.columns = append(c.columns, col)
}

// Lookup returns the column named name and whether it exists.
func (c *OrderedColumns) Lookup(name string) (ColumnMetadata, bool) {
	i, ok := c.index[name]
	if !ok {
		return ColumnMetadata{}, false
	}
	return c.columns[i], true
}

// IndexOf returns the declared position of name, or -1 if absent.
func (c *OrderedColumns) IndexOf(name string) int {
	i, ok := c.index[name]
	if !ok {
		return -1
	}
	return i
}

// All returns the columns in declaration order. The returned slice must
// not be mutated by callers.
func (c *OrderedColumns) All() []ColumnMetadata {
	return c.columns
}

func (c *OrderedColumns) Len() int {
	return len(c.columns)
}

// TableMetadata is the catalog entry for one table.
type TableMetadata struct {
	Name          string
	Columns       *OrderedColumns
	PartitionKey  []string
	ClusteringKey []string
}

// Catalog is the process-global table-name -> TableMetadata mapping,
// guarded by a RWMutex so concurrent SELECT/INSERT planners (read share)
// never block each other; only CREATE TABLE (exclusive) blocks readers.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*TableMetadata
}

func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*TableMetadata)}
}

// CreateTable inserts (or overwrites, last-writer-wins) table into the
// catalog.
func (c *Catalog) CreateTable(table *TableMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[table.Name] = table
}

// Lookup returns the metadata for name under a read lock, or an Invalid
// error if the table is unknown.
func (c *Catalog) Lookup(name string) (*TableMetadata, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[name]
	if !ok {
		return nil, dberr.Invalid("unknown table %q", name)
	}
	return t, nil
}
