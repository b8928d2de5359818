package ledger

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/relaylabs/relay/foundation/forwarding/signature"
)

// Transfer is the transfer of value between two parties.
type Transfer struct {
	Nonce uint64    `json:"nonce"` // Unique id for the transfer supplied by the caller.
	ToID  AccountID `json:"to"`    // Account receiving the value.
	Value uint64    `json:"value"` // Amount of value being transferred.
}

// NewTransfer constructs a new transfer.
func NewTransfer(nonce uint64, toID AccountID, value uint64) (Transfer, error) {
	if !toID.IsAccountID() {
		return Transfer{}, fmt.Errorf("to account is not properly formatted")
	}

	tr := Transfer{
		Nonce: nonce,
		ToID:  toID,
		Value: value,
	}

	return tr, nil
}

// Sign uses the specified private key to sign the transfer.
func (tr Transfer) Sign(privateKey *ecdsa.PrivateKey) (SignedTransfer, error) {

	// Validate the to account address is a valid address.
	if !tr.ToID.IsAccountID() {
		return SignedTransfer{}, fmt.Errorf("to account is not properly formatted")
	}

	// Sign the transfer with the private key to produce a signature.
	v, r, s, err := signature.Sign(tr, privateKey)
	if err != nil {
		return SignedTransfer{}, err
	}

	// Construct the signed transfer by adding the signature
	// in the [R|S|V] format.
	signedTr := SignedTransfer{
		Transfer: tr,
		V:        v,
		R:        r,
		S:        s,
	}

	return signedTr, nil
}

// =============================================================================

// SignedTransfer is a signed version of the transfer. This is how callers
// provide transfers for the relay to forward.
type SignedTransfer struct {
	Transfer
	V *big.Int `json:"v"` // Recovery identifier, either 31 or 32 with relayID.
	R *big.Int `json:"r"` // First coordinate of the ECDSA signature.
	S *big.Int `json:"s"` // Second coordinate of the ECDSA signature.
}

// Validate verifies the transfer has a proper signature that conforms to our
// standards and is associated with the data claimed to be signed. It also
// checks the format of the to account.
func (tr SignedTransfer) Validate() error {
	if !tr.ToID.IsAccountID() {
		return errors.New("invalid account for to account")
	}

	if err := signature.VerifySignature(tr.V, tr.R, tr.S); err != nil {
		return err
	}

	return nil
}

// FromAccount extracts the account id that signed the transfer.
func (tr SignedTransfer) FromAccount() (AccountID, error) {
	address, err := signature.FromAddress(tr.Transfer, tr.V, tr.R, tr.S)
	return AccountID(address), err
}

// SignatureString returns the signature as a string.
func (tr SignedTransfer) SignatureString() string {
	return signature.SignatureString(tr.V, tr.R, tr.S)
}

// String implements the fmt.Stringer interface for logging.
func (tr SignedTransfer) String() string {
	from, err := tr.FromAccount()
	if err != nil {
		from = "unknown"
	}

	return fmt.Sprintf("%s:%d", from, tr.Nonce)
}
