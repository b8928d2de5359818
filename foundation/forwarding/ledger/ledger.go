// Package ledger handles all the lower level support for maintaining the
// account balances in memory and the settlement journal that records every
// committed transaction.
package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/relaylabs/relay/foundation/forwarding/genesis"
)

// Journal interface represents the behavior required to be implemented by
// any package providing support for storing and reading settlement records.
type Journal interface {
	Write(record Record) error
	GetRecord(seq uint64) (Record, error)
	ForEach() Iterator
	Close() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the settlement records.
type Iterator interface {
	Next() (Record, error)
	Done() bool
}

// =============================================================================

// Ledger manages the account balances and the settlement journal. All
// changes happen through Transact, which runs transactions one at a time.
type Ledger struct {
	mu sync.RWMutex

	genesis      genesis.Genesis
	latestRecord Record
	accounts     map[AccountID]Account
	closed       map[AccountID]bool

	journal   Journal
	evHandler func(v string, args ...any)
}

// New constructs a new ledger, applies the account balances from genesis
// and replays any settlement records the journal already holds.
func New(genesis genesis.Genesis, journal Journal, evHandler func(v string, args ...any)) (*Ledger, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	l := Ledger{
		genesis:  genesis,
		accounts: make(map[AccountID]Account),
		closed:   make(map[AccountID]bool),

		journal:   journal,
		evHandler: ev,
	}

	// Update the ledger with account balance information from genesis.
	for accountStr, balance := range genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}
		l.accounts[accountID] = newAccount(accountID, balance)
	}

	// Read all the records from the journal and re-apply them through the
	// same staging path live transactions use. A record that fails to
	// validate or apply means the journal doesn't represent this genesis.
	iter := l.journal.ForEach()
	for record, err := iter.Next(); !iter.Done(); record, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := record.ValidateRecord(l.latestRecord, ev); err != nil {
			return nil, err
		}

		if err := l.applyRecord(record); err != nil {
			return nil, err
		}

		l.latestRecord = record
	}

	return &l, nil
}

// Close closes the underlying journal.
func (l *Ledger) Close() {
	l.journal.Close()
}

// applyRecord re-stages the operations a record holds and commits them.
// Spends are applied first, then moves, then closes, which reproduces any
// transaction the ledger is able to commit.
func (l *Ledger) applyRecord(record Record) error {
	tx := newTx(l)

	for _, spend := range record.Spends {
		if err := tx.Spend(spend.AccountID, spend.Nonce); err != nil {
			return fmt.Errorf("record %d: %w", record.Header.Seq, err)
		}
	}

	for _, move := range record.Moves {
		if err := tx.Move(move.FromID, move.ToID, move.Value); err != nil {
			return fmt.Errorf("record %d: %w", record.Header.Seq, err)
		}
	}

	for _, accountID := range record.Closed {
		if err := tx.Close(accountID); err != nil {
			return fmt.Errorf("record %d: %w", record.Header.Seq, err)
		}
	}

	tx.commit()

	return nil
}

// Transact runs fn against a staged view of the accounts. If fn returns an
// error, every operation it staged is discarded and the accounts are left
// untouched. Otherwise the staged operations are written to the journal as
// the next settlement record and then applied. A failed journal write
// discards the transaction as well, so the accounts never run ahead of the
// journal.
func (l *Ledger) Transact(fn func(tx *Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := newTx(l)

	if err := fn(tx); err != nil {
		l.evHandler("ledger: transact: rec[%d]: rolled back: %s", l.latestRecord.Header.Seq+1, err)
		return err
	}

	// A transaction that staged no operations has nothing to journal.
	if tx.empty() {
		return nil
	}

	record := newRecord(l.latestRecord, tx.spends, tx.moves, tx.tombs)

	if err := l.journal.Write(record); err != nil {
		l.evHandler("ledger: transact: rec[%d]: journal write failed: rolled back: %s", record.Header.Seq, err)
		return fmt.Errorf("journal write: %w", err)
	}

	tx.commit()
	l.latestRecord = record

	l.evHandler("ledger: transact: rec[%d]: committed: spends[%d] moves[%d] closed[%d]", record.Header.Seq, len(tx.spends), len(tx.moves), len(tx.tombs))

	return nil
}

// =============================================================================

// Balance returns the balance of the specified account. Unknown and closed
// accounts read as zero.
func (l *Ledger) Balance(accountID AccountID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.accounts[accountID].Balance
}

// IsClosed reports whether the specified account has been closed.
func (l *Ledger) IsClosed(accountID AccountID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.closed[accountID]
}

// CopyAccounts makes a copy of the current accounts in the ledger.
func (l *Ledger) CopyAccounts() map[AccountID]Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts := make(map[AccountID]Account)
	for accountID, account := range l.accounts {
		accounts[accountID] = account
	}

	return accounts
}

// Accounts returns the current set of accounts sorted by account id.
func (l *Ledger) Accounts() []Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts := make([]Account, 0, len(l.accounts))
	for _, account := range l.accounts {
		accounts = append(accounts, account)
	}
	sort.Sort(byAccount(accounts))

	return accounts
}

// LatestRecord returns the latest committed settlement record.
func (l *Ledger) LatestRecord() Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.latestRecord
}

// GetRecord reads the record with the specified sequence number back from
// the journal.
func (l *Ledger) GetRecord(seq uint64) (Record, error) {
	return l.journal.GetRecord(seq)
}

// ForEach returns an iterator to walk through all the settlement records
// starting with record number 1.
func (l *Ledger) ForEach() Iterator {
	return l.journal.ForEach()
}
