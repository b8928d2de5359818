package host

import (
	"errors"
	"fmt"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// ErrNotOwner is returned when a decommission order is signed by an
// account other than the owner named in the genesis file.
var ErrNotOwner = errors.New("not signed by the owner")

// SubmitTransfer takes a signed transfer addressed to the relay and runs
// it through the relay's acceptance chain.
func (h *Host) SubmitTransfer(str ledger.SignedTransfer) error {
	return h.relay.AcceptValue(str)
}

// SubmitReceiverTransfer takes a signed transfer addressed directly to
// the receiver and commits it.
func (h *Host) SubmitReceiverTransfer(str ledger.SignedTransfer) error {
	return h.relay.Receiver().AcceptValue(str)
}

// SubmitDecommission verifies the order was signed by the owner named in
// the genesis file and takes the relay pair out of service.
func (h *Host) SubmitDecommission(order SignedOrder) error {
	if err := order.Validate(); err != nil {
		return err
	}

	fromID, err := order.FromAccount()
	if err != nil {
		return fmt.Errorf("unable to recover the signing account: %w", err)
	}

	ownerID, err := ledger.ToAccountID(h.genesis.Owner)
	if err != nil {
		return fmt.Errorf("no owner is configured for this relay: %w", err)
	}

	if fromID != ownerID {
		h.evHandler("host: SubmitDecommission: rejected: signed by %s, not the owner", fromID)
		return fmt.Errorf("order signed by %s: %w", fromID, ErrNotOwner)
	}

	return h.relay.Decommission(order.Beneficiary)
}
