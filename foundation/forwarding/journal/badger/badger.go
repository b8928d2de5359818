// Package badger implements the ability to read and write settlement
// records to disk using the badger key/value store.
package badger

import (
	"encoding/json"
	"errors"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v3"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Badger represents the journal implementation for reading and storing
// settlement records in a badger database. This implements the
// ledger.Journal interface.
type Badger struct {
	db *badgerdb.DB
}

// New constructs a Badger value for use.
func New(journalPath string) (*Badger, error) {

	// Sync writes are turned on so a record handed back to the ledger as
	// written is actually on disk.
	opts := badgerdb.DefaultOptions(journalPath).WithLogger(nil).WithSyncWrites(true)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Badger{db: db}, nil
}

// Close releases the underlying badger database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Write takes the specified record and stores it under a key based on the
// record sequence number.
func (b *Badger) Write(record ledger.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(getKey(record.Header.Seq), data)
	})
}

// GetRecord searches the journal to locate and return the contents of the
// specified record by sequence number.
func (b *Badger) GetRecord(seq uint64) (ledger.Record, error) {
	var record ledger.Record

	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(getKey(seq))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return ledger.Record{}, err
	}

	return record, nil
}

// ForEach returns an iterator to walk through all the records starting
// with record number 1.
func (b *Badger) ForEach() ledger.Iterator {
	return &badgerIterator{journal: b}
}

// getKey forms the key for the specified record. The sequence number is
// zero padded so the keys sort in record order.
func getKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("record/%016d", seq))
}

// =============================================================================

// badgerIterator represents the iteration implementation for walking
// through and reading records from the badger database. This implements
// the ledger Iterator interface.
type badgerIterator struct {
	journal *Badger // Access to the journal API.
	current uint64  // Current record number being iterated over.
	eoc     bool    // Represents the iterator is at the end of the journal.
}

// Next retrieves the next record from the database.
func (bi *badgerIterator) Next() (ledger.Record, error) {
	if bi.eoc {
		return ledger.Record{}, errors.New("end of journal")
	}

	bi.current++
	record, err := bi.journal.GetRecord(bi.current)
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		bi.eoc = true
	}

	return record, err
}

// Done returns the end of journal value.
func (bi *badgerIterator) Done() bool {
	return bi.eoc
}
