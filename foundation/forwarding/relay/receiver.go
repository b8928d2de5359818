package relay

import (
	"fmt"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Receiver represents the entity that ends up holding every unit of value
// the relay forwards. A receiver can also accept value paid to it directly.
type Receiver struct {
	ledger    Ledger
	accountID ledger.AccountID
}

// NewReceiver constructs a new receiver bound to the specified account.
// Construction performs no ledger writes, so a receiver that fails to
// construct leaves nothing behind.
func NewReceiver(lgr Ledger, accountID ledger.AccountID) (*Receiver, error) {
	if lgr == nil {
		return nil, fmt.Errorf("ledger is required")
	}

	if !accountID.IsAccountID() {
		return nil, fmt.Errorf("account id %q is not properly formatted", accountID)
	}

	r := Receiver{
		ledger:    lgr,
		accountID: accountID,
	}

	return &r, nil
}

// AccountID returns the account the receiver holds value in.
func (r *Receiver) AccountID() ledger.AccountID {
	return r.accountID
}

// Balance returns the value the receiver currently holds.
func (r *Receiver) Balance() uint64 {
	return r.ledger.Balance(r.accountID)
}

// AcceptValue takes a signed transfer addressed to the receiver and commits
// it in a single ledger transaction.
func (r *Receiver) AcceptValue(str ledger.SignedTransfer) error {
	if err := str.Validate(); err != nil {
		return err
	}

	fromID, err := str.FromAccount()
	if err != nil {
		return fmt.Errorf("unable to recover the signing account: %w", err)
	}

	if str.ToID != r.accountID {
		return fmt.Errorf("transfer is addressed to %s, not the receiver", str.ToID)
	}

	return r.ledger.Transact(func(tx *ledger.Tx) error {
		if err := tx.Spend(fromID, str.Nonce); err != nil {
			return err
		}

		return r.accept(tx, fromID, str.Value)
	})
}

// accept runs the receiver's side of a forward inside the transaction the
// caller opened. The move fails if the receiver's account no longer accepts
// value, which fails the whole transaction.
func (r *Receiver) accept(tx *ledger.Tx, fromID ledger.AccountID, value uint64) error {
	return tx.Move(fromID, r.accountID, value)
}

// decommission drains the receiver into the beneficiary and closes its
// account, all inside the transaction the caller opened.
func (r *Receiver) decommission(tx *ledger.Tx, beneficiaryID ledger.AccountID) error {
	if balance := tx.Balance(r.accountID); balance > 0 {
		if err := tx.Move(r.accountID, beneficiaryID, balance); err != nil {
			return err
		}
	}

	return tx.Close(r.accountID)
}
