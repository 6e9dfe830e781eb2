// Package table defines the ServerTable collaborator — the opaque
// per-table storage engine a server shard mutates and reads — and the
// dense, append-only Store that maps table ids to ServerTable handles.
//
// ServerTable's real implementation (the parameter storage engine) is an
// external collaborator per the core's scope: this package only defines
// the interface the server depends on, plus MemTable, an in-memory
// reference implementation used by tests and the single-process demo.
package table

import (
	"bytes"
)

// ServerTable is the per-table storage handle the server mutates and reads.
// Both methods must be pure functions of table state plus input: no
// invariant beyond that is enforced by this package.
type ServerTable interface {
	// ProcessGet appends bytes describing the result of in (a read
	// selector) to out.
	ProcessGet(in []byte, out *[]byte)
	// ProcessAdd mutates the table in place by applying the delta in.
	ProcessAdd(in []byte)
}

// Store is a dense, append-only mapping from table id to ServerTable
// handle. Ids are issued monotonically by Register; no table is ever
// removed.
type Store struct {
	tables []ServerTable
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Register appends table to the store and returns its newly assigned id.
func (s *Store) Register(t ServerTable) int {
	s.tables = append(s.tables, t)
	return len(s.tables) - 1
}

// Get returns the table registered under id, or false if id is out of
// range.
func (s *Store) Get(id int) (ServerTable, bool) {
	if id < 0 || id >= len(s.tables) {
		return nil, false
	}
	return s.tables[id], true
}

// Len returns the number of registered tables.
func (s *Store) Len() int {
	return len(s.tables)
}

// MemTable is a minimal in-memory ServerTable: it treats its entire value
// as one opaque blob, replying with its current bytes to any Get selector
// (the selector itself is ignored, even when empty) and overwriting (rather than merging) on Add. It exists so
// this module's tests and demo command have something concrete to plug
// into Store.Register; a real deployment supplies its own ServerTable
// backed by the actual parameter storage engine.
type MemTable struct {
	value []byte
}

// NewMemTable returns a MemTable with no stored value.
func NewMemTable() *MemTable {
	return &MemTable{}
}

// ProcessGet appends the table's current value to out.
func (m *MemTable) ProcessGet(_ []byte, out *[]byte) {
	*out = append(*out, m.value...)
}

// ProcessAdd replaces the table's value with delta, copying it so the
// caller's slice can be reused.
func (m *MemTable) ProcessAdd(delta []byte) {
	m.value = bytes.Clone(delta)
}

// Value returns the table's current raw bytes, for test assertions.
func (m *MemTable) Value() []byte {
	return m.value
}
