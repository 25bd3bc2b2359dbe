package exec

import (
	"strings"

	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/parser"
	"github.com/rickfast/tarrasque-go/row"
	"github.com/rickfast/tarrasque-go/schema"
	"github.com/rickfast/tarrasque-go/storage"
)

// Executor runs lowered statements against the catalog and storage engine.
// It holds no per-connection state and is safe for concurrent use by every
// connection handler.
type Executor struct {
	Catalog *schema.Catalog
	Storage *storage.Engine
}

func New(catalog *schema.Catalog, store *storage.Engine) *Executor {
	return &Executor{Catalog: catalog, Storage: store}
}

// ExecuteCreate publishes table to the catalog. Re-declaring a table
// overwrites the previous definition, last-writer-wins.
func (e *Executor) ExecuteCreate(table *schema.TableMetadata) error {
	e.Catalog.CreateTable(table)
	return nil
}

// ExecuteInsert writes one row into the table's partition. The storage key
// is the concatenation of the partition-key literal(s) followed by the
// clustering-key literal(s), in declared order; columns the statement does
// not mention are stored as explicit nulls so the row codec's column count
// always matches the table's declared width.
func (e *Executor) ExecuteInsert(insert *parser.ParsedInsert, table *schema.TableMetadata) error {
	values := make(map[string]row.Value, len(insert.Columns))
	for i, name := range insert.Columns {
		v, err := evalExpr(insert.Values[i], nil)
		if err != nil {
			return err
		}
		values[name] = v
	}

	cols := table.Columns.All()
	rowValues := make(row.Row, len(cols))
	for i, col := range cols {
		if v, ok := values[col.Name]; ok {
			rowValues[i] = v
		} else {
			rowValues[i] = row.NewNull(col.Type)
		}
	}

	key := partitionKeyString(insert.PartitionKey) + clusteringKeyString(insert.ClusteringKey)

	partition, err := e.Storage.OpenPartition(table.Name)
	if err != nil {
		return err
	}
	if err := partition.Insert(key, row.Encode(rowValues)); err != nil {
		return dberr.WriteFailure("insert into %q failed: %s", table.Name, err)
	}
	return nil
}

// ExecuteSelect scans the table's partition, applying residual WHERE
// filters in-stream and projecting each surviving row. When query carries a
// partition-key equality, the scan is narrowed to that key's prefix;
// otherwise every row in the partition is visited.
func (e *Executor) ExecuteSelect(query *parser.ParsedQuery, table *schema.TableMetadata) ([]row.Row, error) {
	partition, err := e.Storage.OpenPartition(table.Name)
	if err != nil {
		return nil, err
	}

	var kvs []storage.KV
	if len(query.PartitionKey) > 0 {
		kvs = partition.Prefix(partitionKeyString(query.PartitionKey))
	} else {
		kvs = partition.Iter()
	}

	cols := table.Columns.All()
	results := make([]row.Row, 0, len(kvs))
	for _, kv := range kvs {
		decoded, err := row.Decode(kv.Value, len(cols))
		if err != nil {
			return nil, dberr.ServerError("corrupt row in table %q: %s", table.Name, err)
		}

		values := make(map[string]row.Value, len(cols))
		for i, col := range cols {
			values[col.Name] = decoded[i]
		}

		keep := true
		for _, filter := range query.Filters {
			ok, err := evalFilter(filter, values)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}

		projected := make(row.Row, len(query.Projection))
		for i, expr := range query.Projection {
			v, err := evalExpr(expr, values)
			if err != nil {
				return nil, err
			}
			projected[i] = v
		}
		results = append(results, projected)
	}
	return results, nil
}

func partitionKeyString(parts []string) string {
	return strings.Join(parts, "")
}

func clusteringKeyString(parts []string) string {
	return strings.Join(parts, "")
}
