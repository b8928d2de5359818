package cmd

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/relaylabs/relay/foundation/forwarding/denomination"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

var (
	nonce  uint64
	to     string
	amount string
	unit   string
	direct bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign and submit a transfer",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}

		sendWithDetails(privateKey)
	},
}

func sendWithDetails(privateKey *ecdsa.PrivateKey) {
	value, err := denomination.Parse(amount, unit)
	if err != nil {
		log.Fatal(err)
	}

	toID, err := ledger.ToAccountID(to)
	if err != nil {
		log.Fatal(err)
	}

	tx, err := ledger.NewTransfer(nonce, toID, value)
	if err != nil {
		log.Fatal(err)
	}

	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.Marshal(signedTx)
	if err != nil {
		log.Fatal(err)
	}

	endpoint := "/v1/relay/accept"
	if direct {
		endpoint = "/v1/receiver/accept"
	}

	resp, err := http.Post(fmt.Sprintf("%s%s", url, endpoint), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	io.Copy(os.Stdout, resp.Body)
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().Uint64VarP(&nonce, "nonce", "n", 0, "Unique id for the transfer.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account receiving the value.")
	sendCmd.Flags().StringVarP(&amount, "value", "v", "0", "Value to send.")
	sendCmd.Flags().StringVarP(&unit, "unit", "d", denomination.Rel, "Denomination the value is expressed in: "+denomination.Units())
	sendCmd.Flags().BoolVar(&direct, "direct", false, "Send to the receiver without going through the relay.")
}
