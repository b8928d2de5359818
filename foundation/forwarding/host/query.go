package host

import (
	"errors"

	"github.com/relaylabs/relay/foundation/forwarding/genesis"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// QueryLatest represents a query for the latest record in the journal.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// QueryRelayBalance returns the value the relay currently holds.
func (h *Host) QueryRelayBalance() uint64 {
	return h.relay.Balance()
}

// QueryReceiverBalance returns the value the receiver currently holds.
func (h *Host) QueryReceiverBalance() uint64 {
	return h.relay.ReceiverBalance()
}

// RelayAccountID returns the account the relay accepts transfers on.
func (h *Host) RelayAccountID() ledger.AccountID {
	return h.relay.AccountID()
}

// ReceiverAccountID returns the account the receiver holds value in.
func (h *Host) ReceiverAccountID() ledger.AccountID {
	return h.relay.Receiver().AccountID()
}

// Decommissioned reports whether the relay pair has been taken out of
// service.
func (h *Host) Decommissioned() bool {
	return h.relay.Decommissioned()
}

// Genesis returns a copy of the genesis information.
func (h *Host) Genesis() genesis.Genesis {
	return h.genesis
}

// QueryAccount returns a copy of the specified account from the ledger.
func (h *Host) QueryAccount(accountID ledger.AccountID) (ledger.Account, error) {
	accounts := h.ledger.CopyAccounts()

	if info, exists := accounts[accountID]; exists {
		return info, nil
	}

	return ledger.Account{}, errors.New("not found")
}

// Accounts returns the current set of accounts sorted by account id.
func (h *Host) Accounts() []ledger.Account {
	return h.ledger.Accounts()
}

// LatestRecord returns a copy of the latest settlement record.
func (h *Host) LatestRecord() ledger.Record {
	return h.ledger.LatestRecord()
}

// QueryRecordsBySeq returns the set of records based on sequence numbers.
// This function reads the journal first.
func (h *Host) QueryRecordsBySeq(from uint64, to uint64) []ledger.Record {
	if from == QueryLatest {
		from = h.ledger.LatestRecord().Header.Seq
		to = from
	}
	if to == QueryLatest {
		to = h.ledger.LatestRecord().Header.Seq
	}

	var out []ledger.Record
	for i := from; i <= to; i++ {
		record, err := h.ledger.GetRecord(i)
		if err != nil {
			h.evHandler("host: getrecord: ERROR: %s", err)
			return nil
		}
		out = append(out, record)
	}

	return out
}
