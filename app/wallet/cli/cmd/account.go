package cmd

import (
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the account id for this wallet",
	Run:   accountRun,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func accountRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	accountID := ledger.PublicKeyToAccountID(privateKey.PublicKey)
	fmt.Println(accountID)
}
