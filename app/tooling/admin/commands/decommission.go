package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/relaylabs/relay/foundation/forwarding/host"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Decommission signs an order with the owner's key and submits it to the
// running service: admin decommission <owner-key> <beneficiary> [url]
func Decommission(args []string, accountsFolder string) error {
	if len(args) < 4 {
		return errors.New("usage: admin decommission <owner-key> <beneficiary> [url]")
	}

	url := "http://localhost:8080"
	if len(args) > 4 {
		url = args[4]
	}

	privateKey, err := crypto.LoadECDSA(fmt.Sprintf("%s%s.ecdsa", accountsFolder, args[2]))
	if err != nil {
		return fmt.Errorf("unable to load private key for the owner: %w", err)
	}

	beneficiaryID, err := ledger.ToAccountID(args[3])
	if err != nil {
		return err
	}

	order, err := host.NewOrder(beneficiaryID)
	if err != nil {
		return err
	}

	signedOrder, err := order.Sign(privateKey)
	if err != nil {
		return err
	}

	data, err := json.Marshal(signedOrder)
	if err != nil {
		return err
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/relay/decommission", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	io.Copy(os.Stdout, resp.Body)
	fmt.Println()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("decommission rejected with status %d", resp.StatusCode)
	}

	return nil
}
