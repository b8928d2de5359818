// Package commands contains the admin command functions.
package commands

import (
	"fmt"

	"github.com/relaylabs/relay/foundation/forwarding/host"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Balances prints the current set of balances.
func Balances(args []string, hst *host.Host) error {
	var onlyAct string
	if len(args) == 3 {
		onlyAct = args[2]
	}

	fmt.Printf("LatestRecordHash: %s\n", hst.LatestRecord().Hash())
	fmt.Printf("Relay: %s  Receiver: %s  Decommissioned: %v\n\n",
		hst.RelayAccountID(), hst.ReceiverAccountID(), hst.Decommissioned())

	if onlyAct != "" {
		accountID, err := ledger.ToAccountID(onlyAct)
		if err != nil {
			return err
		}

		act, err := hst.QueryAccount(accountID)
		if err != nil {
			return err
		}

		fmt.Printf("Account: %s  Nonce: %d  Balance: %d\n", act.AccountID, act.Nonce, act.Balance)
		return nil
	}

	for _, act := range hst.Accounts() {
		fmt.Printf("Account: %s  Nonce: %d  Balance: %d\n", act.AccountID, act.Nonce, act.Balance)
	}

	return nil
}
