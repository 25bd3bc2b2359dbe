// Package storage implements the key-value engine the executor treats as an
// external collaborator, exposing exactly the four operations it needs:
// open partition, insert, prefix scan, full iteration. No embeddable LSM
// library exists anywhere in this module's dependency set (see DESIGN.md),
// so this package backs the contract with a genuine log-structured
// partition: an append-only on-disk log of key/value records, replayed
// into an in-memory sorted index on open.
package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rickfast/tarrasque-go/dberr"
)

// Engine owns every partition's on-disk directory under a single base
// directory: one subdirectory per table, one logical partition per table.
type Engine struct {
	baseDir string

	mu         sync.Mutex
	partitions map[string]*Partition
}

// NewEngine opens (creating if necessary) a storage engine rooted at
// baseDir, the local-disk directory holding all persisted table state.
func NewEngine(baseDir string) (*Engine, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, dberr.ServerError("cannot create storage base directory %q: %s", baseDir, err)
	}
	return &Engine{baseDir: baseDir, partitions: make(map[string]*Partition)}, nil
}

// OpenPartition opens (creating if necessary) the named partition. Callers
// obtain one partition per table, opened lazily and cached for the
// process's lifetime.
func (e *Engine) OpenPartition(name string) (*Partition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.partitions[name]; ok {
		return p, nil
	}
	p, err := openPartition(filepath.Join(e.baseDir, name))
	if err != nil {
		return nil, err
	}
	e.partitions[name] = p
	return p, nil
}

// entry is one record in both the on-disk log and the in-memory index.
type entry struct {
	key   string
	value []byte
}

// Partition is one table's log-structured key space: an append-only log
// file on disk plus an in-memory index, rebuilt by replaying the log on
// open, sorted by key for prefix and range operations.
type Partition struct {
	mu      sync.RWMutex
	logPath string
	log     *os.File
	index   map[string][]byte
	order   []string // sorted keys, rebuilt lazily when dirty
	dirty   bool
}

func openPartition(dir string) (*Partition, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, dberr.ServerError("cannot create partition directory %q: %s", dir, err)
	}
	logPath := filepath.Join(dir, "data.log")
	p := &Partition{logPath: logPath, index: make(map[string][]byte)}
	if err := p.replay(); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, dberr.WriteFailure("cannot open partition log %q: %s", logPath, err)
	}
	p.log = f
	return p, nil
}

// replay rebuilds the in-memory index by reading every record in the log,
// last write for a given key winning.
func (p *Partition) replay() error {
	f, err := os.OpenFile(p.logPath, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return dberr.ReadFailure("cannot open partition log %q for replay: %s", p.logPath, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)
	for {
		e, err := readEntry(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return dberr.ReadFailure("corrupt partition log %q: %s", p.logPath, err)
		}
		p.index[e.key] = e.value
	}
	return nil
}

// readEntry parses one length-prefixed (key, value) record: 4-byte key
// length, key bytes, 4-byte value length, value bytes.
func readEntry(r io.Reader) (entry, error) {
	var keyLen uint32
	if err := binary.Read(r, binary.BigEndian, &keyLen); err != nil {
		return entry{}, err
	}
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return entry{}, fmt.Errorf("truncated key: %w", err)
	}
	var valLen uint32
	if err := binary.Read(r, binary.BigEndian, &valLen); err != nil {
		return entry{}, fmt.Errorf("truncated value length: %w", err)
	}
	value := make([]byte, valLen)
	if _, err := io.ReadFull(r, value); err != nil {
		return entry{}, fmt.Errorf("truncated value: %w", err)
	}
	return entry{key: string(key), value: value}, nil
}

func writeEntry(w io.Writer, key string, value []byte) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(key))); err != nil {
		return err
	}
	if _, err := w.Write([]byte(key)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(value))); err != nil {
		return err
	}
	if _, err := w.Write(value); err != nil {
		return err
	}
	return nil
}

// Insert durably writes key -> value, appending to the log and updating
// the in-memory index.
func (p *Partition) Insert(key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := writeEntry(p.log, key, value); err != nil {
		return dberr.WriteFailure("cannot append to partition log %q: %s", p.logPath, err)
	}
	if err := p.log.Sync(); err != nil {
		return dberr.WriteFailure("cannot sync partition log %q: %s", p.logPath, err)
	}
	p.index[key] = value
	p.dirty = true
	return nil
}

func (p *Partition) rebuildOrderLocked() {
	if !p.dirty && p.order != nil {
		return
	}
	p.order = make([]string, 0, len(p.index))
	for k := range p.index {
		p.order = append(p.order, k)
	}
	sort.Strings(p.order)
	p.dirty = false
}

// Iter returns every (key, value) pair in the partition, ordered by key.
func (p *Partition) Iter() []KV {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rebuildOrderLocked()
	out := make([]KV, 0, len(p.order))
	for _, k := range p.order {
		out = append(out, KV{Key: k, Value: p.index[k]})
	}
	return out
}

// Prefix returns every (key, value) pair whose key starts with prefix,
// ordered by key.
func (p *Partition) Prefix(prefix string) []KV {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rebuildOrderLocked()
	out := make([]KV, 0)
	for _, k := range p.order {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, KV{Key: k, Value: p.index[k]})
		}
	}
	return out
}

// KV is one key/value pair returned by Iter/Prefix.
type KV struct {
	Key   string
	Value []byte
}
