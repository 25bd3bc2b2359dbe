package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickfast/tarrasque-go/parser"
	"github.com/rickfast/tarrasque-go/schema"
	"github.com/rickfast/tarrasque-go/storage"
)

func newTestExecutor(t *testing.T) (*Executor, *parser.Parser, *schema.Catalog) {
	t.Helper()
	store, err := storage.NewEngine(t.TempDir())
	require.NoError(t, err)
	catalog := schema.NewCatalog()
	return New(catalog, store), parser.New(), catalog
}

func TestExecuteCreateThenInsertThenSelect(t *testing.T) {
	executor, p, catalog := newTestExecutor(t)

	createStmt, err := p.Parse("CREATE TABLE users (id int, name text, active boolean)", catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteCreate(createStmt.Create))

	table, err := catalog.Lookup("users")
	require.NoError(t, err)

	insertStmt, err := p.Parse(`INSERT INTO users (id, name, active) VALUES (1, 'alice', true)`, catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteInsert(insertStmt.Insert, table))

	insertStmt2, err := p.Parse(`INSERT INTO users (id, name, active) VALUES (2, 'bob', false)`, catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteInsert(insertStmt2.Insert, table))

	selectStmt, err := p.Parse("SELECT id, name FROM users", catalog)
	require.NoError(t, err)
	rows, err := executor.ExecuteSelect(selectStmt.Select, table)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExecuteSelectByPartitionKey(t *testing.T) {
	executor, p, catalog := newTestExecutor(t)

	createStmt, err := p.Parse("CREATE TABLE users (id int, name text)", catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteCreate(createStmt.Create))
	table, err := catalog.Lookup("users")
	require.NoError(t, err)

	for _, insertCql := range []string{
		`INSERT INTO users (id, name) VALUES (1, 'alice')`,
		`INSERT INTO users (id, name) VALUES (2, 'bob')`,
	} {
		stmt, err := p.Parse(insertCql, catalog)
		require.NoError(t, err)
		require.NoError(t, executor.ExecuteInsert(stmt.Insert, table))
	}

	selectStmt, err := p.Parse("SELECT name FROM users WHERE id = 2", catalog)
	require.NoError(t, err)
	rows, err := executor.ExecuteSelect(selectStmt.Select, table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bob", string(rows[0][0].Contents))
}

func TestExecuteSelectWithResidualFilter(t *testing.T) {
	executor, p, catalog := newTestExecutor(t)

	createStmt, err := p.Parse("CREATE TABLE users (id int, name text)", catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteCreate(createStmt.Create))
	table, err := catalog.Lookup("users")
	require.NoError(t, err)

	for _, insertCql := range []string{
		`INSERT INTO users (id, name) VALUES (1, 'alice')`,
		`INSERT INTO users (id, name) VALUES (2, 'bob')`,
	} {
		stmt, err := p.Parse(insertCql, catalog)
		require.NoError(t, err)
		require.NoError(t, executor.ExecuteInsert(stmt.Insert, table))
	}

	selectStmt, err := p.Parse("SELECT id FROM users WHERE name = 'bob'", catalog)
	require.NoError(t, err)
	rows, err := executor.ExecuteSelect(selectStmt.Select, table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExecuteSelectWithFunctionProjection(t *testing.T) {
	executor, p, catalog := newTestExecutor(t)

	createStmt, err := p.Parse("CREATE TABLE users (id int, name text)", catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteCreate(createStmt.Create))
	table, err := catalog.Lookup("users")
	require.NoError(t, err)

	stmt, err := p.Parse(`INSERT INTO users (id, name) VALUES (1, 'alice')`, catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteInsert(stmt.Insert, table))

	selectStmt, err := p.Parse("SELECT eq(id, 1) FROM users", catalog)
	require.NoError(t, err)
	rows, err := executor.ExecuteSelect(selectStmt.Select, table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []byte{1}, rows[0][0].Contents)
}

func TestExecuteInsertFillsMissingColumnsWithNull(t *testing.T) {
	executor, p, catalog := newTestExecutor(t)

	createStmt, err := p.Parse("CREATE TABLE users (id int, name text, active boolean)", catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteCreate(createStmt.Create))
	table, err := catalog.Lookup("users")
	require.NoError(t, err)

	stmt, err := p.Parse(`INSERT INTO users (id) VALUES (1)`, catalog)
	require.NoError(t, err)
	require.NoError(t, executor.ExecuteInsert(stmt.Insert, table))

	selectStmt, err := p.Parse("SELECT name, active FROM users WHERE id = 1", catalog)
	require.NoError(t, err)
	rows, err := executor.ExecuteSelect(selectStmt.Select, table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0][0].Null)
	assert.True(t, rows[0][1].Null)
}
