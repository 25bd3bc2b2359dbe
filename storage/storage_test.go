package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndIter(t *testing.T) {
	engine, err := NewEngine(t.TempDir())
	require.NoError(t, err)

	partition, err := engine.OpenPartition("users")
	require.NoError(t, err)

	require.NoError(t, partition.Insert("b", []byte("second")))
	require.NoError(t, partition.Insert("a", []byte("first")))

	kvs := partition.Iter()
	require.Len(t, kvs, 2)
	assert.Equal(t, "a", kvs[0].Key)
	assert.Equal(t, "b", kvs[1].Key)
}

func TestInsertOverwritesLastWriterWins(t *testing.T) {
	engine, err := NewEngine(t.TempDir())
	require.NoError(t, err)

	partition, err := engine.OpenPartition("users")
	require.NoError(t, err)

	require.NoError(t, partition.Insert("a", []byte("v1")))
	require.NoError(t, partition.Insert("a", []byte("v2")))

	kvs := partition.Iter()
	require.Len(t, kvs, 1)
	assert.Equal(t, []byte("v2"), kvs[0].Value)
}

func TestPrefixLaw(t *testing.T) {
	engine, err := NewEngine(t.TempDir())
	require.NoError(t, err)

	partition, err := engine.OpenPartition("users")
	require.NoError(t, err)

	require.NoError(t, partition.Insert("alice1", []byte("a1")))
	require.NoError(t, partition.Insert("alice2", []byte("a2")))
	require.NoError(t, partition.Insert("bob1", []byte("b1")))

	kvs := partition.Prefix("alice")
	require.Len(t, kvs, 2)
	for _, kv := range kvs {
		assert.Contains(t, kv.Key, "alice")
	}

	assert.Empty(t, partition.Prefix("carol"))
}

func TestReplayRebuildsIndexOnReopen(t *testing.T) {
	dir := t.TempDir()

	engine, err := NewEngine(dir)
	require.NoError(t, err)
	partition, err := engine.OpenPartition("users")
	require.NoError(t, err)
	require.NoError(t, partition.Insert("a", []byte("v1")))

	reopened, err := NewEngine(dir)
	require.NoError(t, err)
	reloaded, err := reopened.OpenPartition("users")
	require.NoError(t, err)

	kvs := reloaded.Iter()
	require.Len(t, kvs, 1)
	assert.Equal(t, "a", kvs[0].Key)
	assert.Equal(t, []byte("v1"), kvs[0].Value)
}

func TestOpenPartitionIsCached(t *testing.T) {
	engine, err := NewEngine(t.TempDir())
	require.NoError(t, err)

	p1, err := engine.OpenPartition("users")
	require.NoError(t, err)
	p2, err := engine.OpenPartition("users")
	require.NoError(t, err)

	assert.Same(t, p1, p2)
}
