// Package disk implements the ability to read and write settlement
// records to disk using one file per record.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Disk represents the journal implementation for reading and storing
// settlement records in their own separate files on disk. This implements
// the ledger.Journal interface.
type Disk struct {
	journalPath string
}

// New constructs a Disk value for use.
func New(journalPath string) (*Disk, error) {
	if err := os.MkdirAll(journalPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{journalPath: journalPath}, nil
}

// Close in this implementation has nothing to do since a new file is
// written to disk for each record and then immediately closed.
func (d *Disk) Close() error {
	return nil
}

// Write takes the specified record and stores it on disk in a file
// labeled with the record sequence number.
func (d *Disk) Write(record ledger.Record) error {

	// Marshal the record for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	// Create a new file for this record and name it based on the
	// record sequence number.
	f, err := os.OpenFile(d.getPath(record.Header.Seq), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write the new record to disk.
	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// GetRecord searches the journal on disk to locate and return the
// contents of the specified record by sequence number.
func (d *Disk) GetRecord(seq uint64) (ledger.Record, error) {

	// Open the record file for the specified sequence number.
	f, err := os.OpenFile(d.getPath(seq), os.O_RDONLY, 0600)
	if err != nil {
		return ledger.Record{}, err
	}
	defer f.Close()

	// Decode the contents of the record.
	var record ledger.Record
	if err := json.NewDecoder(f).Decode(&record); err != nil {
		return ledger.Record{}, err
	}

	return record, nil
}

// ForEach returns an iterator to walk through all the records starting
// with record number 1.
func (d *Disk) ForEach() ledger.Iterator {
	return &diskIterator{journal: d}
}

// getPath forms the path to the specified record.
func (d *Disk) getPath(seq uint64) string {
	name := strconv.FormatUint(seq, 10)
	return path.Join(d.journalPath, fmt.Sprintf("%s.json", name))
}

// =============================================================================

// diskIterator represents the iteration implementation for walking
// through and reading records on disk. This implements the ledger
// Iterator interface.
type diskIterator struct {
	journal *Disk  // Access to the journal API.
	current uint64 // Current record number being iterated over.
	eoc     bool   // Represents the iterator is at the end of the journal.
}

// Next retrieves the next record from disk.
func (di *diskIterator) Next() (ledger.Record, error) {
	if di.eoc {
		return ledger.Record{}, errors.New("end of journal")
	}

	di.current++
	record, err := di.journal.GetRecord(di.current)
	if errors.Is(err, fs.ErrNotExist) {
		di.eoc = true
	}

	return record, err
}

// Done returns the end of journal value.
func (di *diskIterator) Done() bool {
	return di.eoc
}
