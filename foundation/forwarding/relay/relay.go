package relay

import (
	"fmt"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Ledger represents the behavior the relay pair requires from the service
// holding its balances. The concrete ledger is injected at construction,
// so the pair never depends on who hosts it.
type Ledger interface {
	Transact(fn func(tx *ledger.Tx) error) error
	Balance(accountID ledger.AccountID) uint64
	IsClosed(accountID ledger.AccountID) bool
}

// EventHandler defines a function that is called when events occur in the
// processing of transfers.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to construct a relay.
type Config struct {
	Ledger     Ledger
	AccountID  ledger.AccountID
	ReceiverID ledger.AccountID
	EvHandler  EventHandler
}

// Relay represents the forwarding entity. A relay accepts signed transfers
// addressed to its account and forwards every unit to the receiver it
// constructed, keeping nothing for itself.
type Relay struct {
	ledger    Ledger
	accountID ledger.AccountID
	receiver  *Receiver
	evHandler EventHandler
}

// New constructs a relay and the receiver it owns.
//
// CORE NOTE: Construction writes nothing to the ledger. The relay and
// receiver accounts spring into existence on the first value they are
// credited, so a constructor failure at any point, including inside the
// receiver's own construction, leaves the ledger exactly as it was.
func New(cfg Config) (*Relay, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}

	if !cfg.AccountID.IsAccountID() {
		return nil, fmt.Errorf("account id %q is not properly formatted", cfg.AccountID)
	}

	if cfg.AccountID == cfg.ReceiverID {
		return nil, fmt.Errorf("relay and receiver can't share account %s", cfg.AccountID)
	}

	// The relay owns its receiver. A receiver that fails to construct
	// fails the relay's construction with it.
	receiver, err := NewReceiver(cfg.Ledger, cfg.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("constructing receiver: %w", err)
	}

	r := Relay{
		ledger:    cfg.Ledger,
		accountID: cfg.AccountID,
		receiver:  receiver,
		evHandler: ev,
	}

	return &r, nil
}

// AccountID returns the account the relay accepts transfers on.
func (r *Relay) AccountID() ledger.AccountID {
	return r.accountID
}

// Receiver returns the receiver the relay forwards to.
func (r *Relay) Receiver() *Receiver {
	return r.receiver
}

// Balance returns the value the relay currently holds. Outside of a
// transaction this is zero, since every accepted transfer is forwarded in
// the transaction that accepts it.
func (r *Relay) Balance() uint64 {
	return r.ledger.Balance(r.accountID)
}

// ReceiverBalance returns the value the relay's receiver currently holds.
func (r *Relay) ReceiverBalance() uint64 {
	return r.receiver.Balance()
}

// Decommissioned reports whether the relay has been taken out of service.
func (r *Relay) Decommissioned() bool {
	return r.ledger.IsClosed(r.accountID)
}

// AcceptValue takes a signed transfer addressed to the relay, accepts the
// value and forwards all of it to the receiver. The caller's spend, the
// move into the relay and the move into the receiver commit as a single
// ledger transaction, so either the receiver ends up holding the value or
// every balance is left untouched.
func (r *Relay) AcceptValue(str ledger.SignedTransfer) error {
	if err := str.Validate(); err != nil {
		return err
	}

	fromID, err := str.FromAccount()
	if err != nil {
		return fmt.Errorf("unable to recover the signing account: %w", err)
	}

	if str.ToID != r.accountID {
		return fmt.Errorf("transfer is addressed to %s, not the relay", str.ToID)
	}

	r.evHandler("relay: AcceptValue: started: tr[%s] value[%d]", str, str.Value)

	err = r.ledger.Transact(func(tx *ledger.Tx) error {
		if err := tx.Spend(fromID, str.Nonce); err != nil {
			return err
		}

		if err := tx.Move(fromID, r.accountID, str.Value); err != nil {
			return err
		}

		return r.receiver.accept(tx, r.accountID, str.Value)
	})
	if err != nil {
		r.evHandler("relay: AcceptValue: rejected: tr[%s]: %s", str, err)
		return err
	}

	r.evHandler("relay: AcceptValue: forwarded: from[%s] to[%s] value[%d]", fromID, r.receiver.AccountID(), str.Value)

	return nil
}

// Decommission drains the receiver and the relay into the beneficiary and
// closes both accounts in a single ledger transaction. A decommissioned
// pair rejects every later transfer. Whether a caller is allowed to order
// a decommission is decided by whoever hosts the relay.
func (r *Relay) Decommission(beneficiaryID ledger.AccountID) error {
	if !beneficiaryID.IsAccountID() {
		return fmt.Errorf("beneficiary id %q is not properly formatted", beneficiaryID)
	}

	if beneficiaryID == r.accountID || beneficiaryID == r.receiver.AccountID() {
		return fmt.Errorf("beneficiary %s can't be part of the relay pair", beneficiaryID)
	}

	r.evHandler("relay: Decommission: started: beneficiary[%s]", beneficiaryID)

	err := r.ledger.Transact(func(tx *ledger.Tx) error {
		if err := r.receiver.decommission(tx, beneficiaryID); err != nil {
			return err
		}

		if balance := tx.Balance(r.accountID); balance > 0 {
			if err := tx.Move(r.accountID, beneficiaryID, balance); err != nil {
				return err
			}
		}

		return tx.Close(r.accountID)
	})
	if err != nil {
		r.evHandler("relay: Decommission: rejected: %s", err)
		return err
	}

	r.evHandler("relay: Decommission: completed: beneficiary[%s]", beneficiaryID)

	return nil
}
