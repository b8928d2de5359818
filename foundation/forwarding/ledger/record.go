package ledger

import (
	"fmt"
	"time"

	"github.com/relaylabs/relay/foundation/forwarding/signature"
)

// RecordHeader represents common information required for each settlement
// record written to the journal.
type RecordHeader struct {
	Seq       uint64 `json:"seq"`       // Position of the record in the journal.
	PrevHash  string `json:"prev_hash"` // Hash of the previous record in the journal.
	TimeStamp uint64 `json:"timestamp"` // Time the record was committed.
}

// Record represents the set of operations committed by a single ledger
// transaction. The record hash covers the operations as well as the header
// so the journal chain commits to every balance change.
type Record struct {
	Header RecordHeader `json:"header"`
	Spends []Spend      `json:"spends,omitempty"`
	Moves  []Move       `json:"moves,omitempty"`
	Closed []AccountID  `json:"closed,omitempty"`
}

// Spend represents the consumption of an account nonce.
type Spend struct {
	AccountID AccountID `json:"account"`
	Nonce     uint64    `json:"nonce"`
}

// Move represents value moving from one account to another.
type Move struct {
	FromID AccountID `json:"from"`
	ToID   AccountID `json:"to"`
	Value  uint64    `json:"value"`
}

// newRecord constructs the next record in the journal from the operations
// staged by a transaction.
func newRecord(prevRecord Record, spends []Spend, moves []Move, closed []AccountID) Record {

	// When committing the first record, the previous record's hash will
	// be zero.
	prevHash := signature.ZeroHash
	if prevRecord.Header.Seq > 0 {
		prevHash = prevRecord.Hash()
	}

	return Record{
		Header: RecordHeader{
			Seq:       prevRecord.Header.Seq + 1,
			PrevHash:  prevHash,
			TimeStamp: uint64(time.Now().UTC().Unix()),
		},
		Spends: spends,
		Moves:  moves,
		Closed: closed,
	}
}

// Hash returns the unique hash for the record.
func (r Record) Hash() string {
	if r.Header.Seq == 0 {
		return signature.ZeroHash
	}

	return signature.Hash(r)
}

// ValidateRecord takes a record read back from the journal and validates it
// chains from the previous record.
func (r Record) ValidateRecord(prevRecord Record, evHandler func(v string, args ...any)) error {
	evHandler("ledger: ValidateRecord: validate: rec[%d]: check: record number is the next number", r.Header.Seq)

	nextSeq := prevRecord.Header.Seq + 1
	if r.Header.Seq != nextSeq {
		return fmt.Errorf("this record is not the next number, got %d, exp %d", r.Header.Seq, nextSeq)
	}

	evHandler("ledger: ValidateRecord: validate: rec[%d]: check: parent hash does match parent record", r.Header.Seq)

	if r.Header.PrevHash != prevRecord.Hash() {
		return fmt.Errorf("parent record hash doesn't match our known parent, got %s, exp %s", r.Header.PrevHash, prevRecord.Hash())
	}

	if prevRecord.Header.TimeStamp > 0 {
		evHandler("ledger: ValidateRecord: validate: rec[%d]: check: record's timestamp is not before parent record's timestamp", r.Header.Seq)

		// Records committed in the same second share a timestamp, so
		// equality is allowed.
		parentTime := time.Unix(int64(prevRecord.Header.TimeStamp), 0)
		recordTime := time.Unix(int64(r.Header.TimeStamp), 0)
		if recordTime.Before(parentTime) {
			return fmt.Errorf("record timestamp is before parent record, parent %s, record %s", parentTime, recordTime)
		}
	}

	return nil
}
