package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/relaylabs/relay/foundation/forwarding/denomination"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

type account struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	Balance uint64 `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

type accounts struct {
	LatestRecord string    `json:"latest_record"`
	Accounts     []account `json:"accounts"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&unit, "unit", "d", denomination.Rel, "Denomination to print the balance in.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	accountID := ledger.PublicKeyToAccountID(privateKey.PublicKey)
	fmt.Println("For Account:", accountID)

	resp, err := http.Get(fmt.Sprintf("%s/v1/accounts/list/%s", url, accountID))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	var accounts accounts
	if err := decoder.Decode(&accounts); err != nil {
		log.Fatal(err)
	}

	for _, account := range accounts.Accounts {
		amount, err := denomination.Format(account.Balance, unit)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s %s\n", amount, unit)
	}
}
