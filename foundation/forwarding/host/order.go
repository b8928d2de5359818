package host

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
	"github.com/relaylabs/relay/foundation/forwarding/signature"
)

// Order represents a decommission order for the relay pair. The order
// names the account the drained value is paid out to.
type Order struct {
	Beneficiary ledger.AccountID `json:"beneficiary"`
}

// NewOrder constructs a new decommission order.
func NewOrder(beneficiary ledger.AccountID) (Order, error) {
	if !beneficiary.IsAccountID() {
		return Order{}, fmt.Errorf("beneficiary account is not properly formatted")
	}

	return Order{Beneficiary: beneficiary}, nil
}

// Sign uses the specified private key to sign the order.
func (o Order) Sign(privateKey *ecdsa.PrivateKey) (SignedOrder, error) {
	if !o.Beneficiary.IsAccountID() {
		return SignedOrder{}, fmt.Errorf("beneficiary account is not properly formatted")
	}

	v, r, s, err := signature.Sign(o, privateKey)
	if err != nil {
		return SignedOrder{}, err
	}

	signedOrder := SignedOrder{
		Order: o,
		V:     v,
		R:     r,
		S:     s,
	}

	return signedOrder, nil
}

// =============================================================================

// SignedOrder is a signed version of the decommission order. An order is
// only honored when its signature recovers to the owner account named in
// the genesis file.
type SignedOrder struct {
	Order
	V *big.Int `json:"v"` // Recovery identifier, either 31 or 32 with relayID.
	R *big.Int `json:"r"` // First coordinate of the ECDSA signature.
	S *big.Int `json:"s"` // Second coordinate of the ECDSA signature.
}

// Validate verifies the order has a proper signature and a properly
// formatted beneficiary account.
func (so SignedOrder) Validate() error {
	if !so.Beneficiary.IsAccountID() {
		return fmt.Errorf("invalid account for beneficiary")
	}

	if err := signature.VerifySignature(so.V, so.R, so.S); err != nil {
		return err
	}

	return nil
}

// FromAccount extracts the account id that signed the order.
func (so SignedOrder) FromAccount() (ledger.AccountID, error) {
	address, err := signature.FromAddress(so.Order, so.V, so.R, so.S)
	return ledger.AccountID(address), err
}
