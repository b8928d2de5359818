package ledger

import (
	"fmt"
)

// Tx provides a staged view of the accounts for the duration of a single
// ledger transaction. Operations validate and apply against the staged view
// and are recorded in the order they were staged. Nothing touches the ledger
// until the transaction commits.
type Tx struct {
	ledger   *Ledger
	accounts map[AccountID]Account
	closed   map[AccountID]bool
	spends   []Spend
	moves    []Move
	tombs    []AccountID
}

// newTx constructs a transaction with an empty staging area over the
// specified ledger.
func newTx(ledger *Ledger) *Tx {
	return &Tx{
		ledger:   ledger,
		accounts: make(map[AccountID]Account),
		closed:   make(map[AccountID]bool),
	}
}

// account returns the staged copy of the specified account, capturing a
// copy from the ledger on first touch.
func (tx *Tx) account(accountID AccountID) Account {
	if account, exists := tx.accounts[accountID]; exists {
		return account
	}

	if account, exists := tx.ledger.accounts[accountID]; exists {
		return account
	}

	return newAccount(accountID, 0)
}

// isClosed reports whether the specified account is closed in the staged
// view.
func (tx *Tx) isClosed(accountID AccountID) bool {
	if tx.closed[accountID] {
		return true
	}

	return tx.ledger.closed[accountID]
}

// Balance returns the balance of the specified account as seen by the
// staged view. Unknown accounts read as zero.
func (tx *Tx) Balance(accountID AccountID) uint64 {
	return tx.account(accountID).Balance
}

// Spend consumes a nonce for the specified account. The nonce must be
// larger than the last nonce the account spent.
func (tx *Tx) Spend(accountID AccountID, nonce uint64) error {
	if tx.isClosed(accountID) {
		return fmt.Errorf("spend invalid, account %s is closed", accountID)
	}

	account := tx.account(accountID)
	if nonce <= account.Nonce {
		return fmt.Errorf("spend invalid, nonce too small, current %d, provided %d", account.Nonce, nonce)
	}

	account.Nonce = nonce
	tx.accounts[accountID] = account

	tx.spends = append(tx.spends, Spend{AccountID: accountID, Nonce: nonce})

	return nil
}

// Move transfers value from one account to another. A move of zero value
// is valid and stages no balance change beyond touching both accounts.
func (tx *Tx) Move(fromID AccountID, toID AccountID, value uint64) error {
	if fromID == toID {
		return fmt.Errorf("move invalid, moving value to yourself, from %s, to %s", fromID, toID)
	}

	if tx.isClosed(fromID) {
		return fmt.Errorf("move invalid, account %s is closed", fromID)
	}

	if tx.isClosed(toID) {
		return fmt.Errorf("move invalid, account %s is closed", toID)
	}

	from := tx.account(fromID)
	to := tx.account(toID)

	if value > from.Balance {
		return fmt.Errorf("move invalid, insufficient funds, bal %d, needed %d", from.Balance, value)
	}

	from.Balance -= value
	to.Balance += value

	tx.accounts[fromID] = from
	tx.accounts[toID] = to

	tx.moves = append(tx.moves, Move{FromID: fromID, ToID: toID, Value: value})

	return nil
}

// Close marks the specified account closed. The account must hold a zero
// balance and a closed account rejects every later spend and move.
func (tx *Tx) Close(accountID AccountID) error {
	if tx.isClosed(accountID) {
		return fmt.Errorf("close invalid, account %s is already closed", accountID)
	}

	account := tx.account(accountID)
	if account.Balance != 0 {
		return fmt.Errorf("close invalid, account %s still holds %d", accountID, account.Balance)
	}

	tx.closed[accountID] = true
	tx.tombs = append(tx.tombs, accountID)

	return nil
}

// =============================================================================

// empty reports whether the transaction staged any operations.
func (tx *Tx) empty() bool {
	return len(tx.spends) == 0 && len(tx.moves) == 0 && len(tx.tombs) == 0
}

// commit applies the staged view to the ledger. Closed accounts drop their
// account record and leave a tombstone behind.
func (tx *Tx) commit() {
	for accountID, account := range tx.accounts {
		tx.ledger.accounts[accountID] = account
	}

	for _, accountID := range tx.tombs {
		delete(tx.ledger.accounts, accountID)
		tx.ledger.closed[accountID] = true
	}
}
