package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/schema"
)

func usersTable() *schema.TableMetadata {
	cols := schema.NewOrderedColumns()
	cols.Append(schema.ColumnMetadata{Name: "id", Type: coltype.Int, Kind: schema.KindPartitionKey})
	cols.Append(schema.ColumnMetadata{Name: "name", Type: coltype.Varchar, Kind: schema.KindRegular})
	cols.Append(schema.ColumnMetadata{Name: "active", Type: coltype.Boolean, Kind: schema.KindRegular})
	return &schema.TableMetadata{Name: "users", Columns: cols, PartitionKey: []string{"id"}}
}

func TestParseCreateTable(t *testing.T) {
	catalog := schema.NewCatalog()
	p := New()

	stmt, err := p.Parse("CREATE TABLE users (id int, name text, active boolean)", catalog)
	require.NoError(t, err)
	require.NotNil(t, stmt.Create)
	assert.Equal(t, "users", stmt.Create.Name)
	assert.Equal(t, 3, stmt.Create.Columns.Len())

	col, ok := stmt.Create.Columns.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, coltype.Varchar, col.Type)
}

func TestParseInsert(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	stmt, err := p.Parse(`INSERT INTO users (id, name, active) VALUES (1, 'alice', true)`, catalog)
	require.NoError(t, err)
	require.NotNil(t, stmt.Insert)
	assert.Equal(t, "users", stmt.Insert.Table)
	assert.Equal(t, []string{"id", "name", "active"}, stmt.Insert.Columns)
	assert.Equal(t, []string{"1"}, stmt.Insert.PartitionKey)
}

func TestParseInsertUnknownColumn(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	_, err := p.Parse(`INSERT INTO users (id, ghost) VALUES (1, 'x')`, catalog)
	assert.Error(t, err)
}

func TestParseInsertUnknownTable(t *testing.T) {
	catalog := schema.NewCatalog()
	p := New()

	_, err := p.Parse(`INSERT INTO ghosts (id) VALUES (1)`, catalog)
	assert.Error(t, err)
}

func TestParseSelectWildcard(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	stmt, err := p.Parse("SELECT * FROM users", catalog)
	require.NoError(t, err)
	require.NotNil(t, stmt.Select)
	assert.Len(t, stmt.Select.Projection, 3)
}

func TestParseSelectWithPartitionKeyEquality(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	stmt, err := p.Parse("SELECT id, name FROM users WHERE id = 7", catalog)
	require.NoError(t, err)
	require.NotNil(t, stmt.Select)
	assert.Equal(t, []string{"7"}, stmt.Select.PartitionKey)
	assert.Len(t, stmt.Select.Filters, 1)
	assert.Contains(t, stmt.Select.Filters, "id")
}

func TestParseSelectWithNonKeyFilterIsResidualOnly(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	stmt, err := p.Parse("SELECT id FROM users WHERE name = 'alice'", catalog)
	require.NoError(t, err)
	assert.Empty(t, stmt.Select.PartitionKey)
	assert.Contains(t, stmt.Select.Filters, "name")
}

func TestParseSelectWithFunctionProjection(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	stmt, err := p.Parse("SELECT eq(id, 1) FROM users", catalog)
	require.NoError(t, err)
	require.Len(t, stmt.Select.Projection, 1)
	require.NotNil(t, stmt.Select.Projection[0].Function)
	assert.Equal(t, "eq", stmt.Select.Projection[0].Function.Name)
}

func TestParseRejectsMultipleStatements(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	_, err := p.Parse("SELECT * FROM users; SELECT * FROM users;", catalog)
	assert.Error(t, err)
}

func TestParseRejectsUnsupportedReservedComparison(t *testing.T) {
	catalog := schema.NewCatalog()
	catalog.CreateTable(usersTable())
	p := New()

	_, err := p.Parse("SELECT id FROM users WHERE id > 1", catalog)
	assert.Error(t, err)
}
