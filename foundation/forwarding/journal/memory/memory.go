// Package memory implements the ability to read and write settlement
// records to memory using a slice.
package memory

import (
	"errors"
	"sync"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Memory represents the journal implementation for reading and storing
// settlement records in memory using a slice. This implements the
// ledger.Journal interface.
type Memory struct {
	mu      sync.RWMutex
	records []ledger.Record
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified record and stores it in memory.
func (m *Memory) Write(record ledger.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := len(m.records)
	if l+1 != int(record.Header.Seq) {
		return errors.New("record is out of order")
	}

	m.records = append(m.records, record)

	return nil
}

// GetRecord searches the journal to locate and return the contents of the
// specified record by sequence number.
func (m *Memory) GetRecord(seq uint64) (ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l := uint64(len(m.records))
	if seq == 0 || seq > l {
		return ledger.Record{}, errors.New("record does not exist")
	}

	return m.records[seq-1], nil
}

// ForEach returns an iterator to walk through all the records starting
// with record number 1.
func (m *Memory) ForEach() ledger.Iterator {
	return &memoryIterator{journal: m}
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through and reading records in memory. This implements the ledger
// Iterator interface.
type memoryIterator struct {
	journal *Memory // Access to the journal API.
	current uint64  // Current record number being iterated over.
	eoc     bool    // Represents the iterator is at the end of the journal.
}

// Next retrieves the next record from memory.
func (mi *memoryIterator) Next() (ledger.Record, error) {
	if mi.eoc {
		return ledger.Record{}, errors.New("end of journal")
	}

	mi.current++
	record, err := mi.journal.GetRecord(mi.current)
	if err != nil {
		mi.eoc = true
	}

	return record, err
}

// Done returns the end of journal value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
