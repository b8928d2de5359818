// This program performs administrative tasks for the relay service.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/relaylabs/relay/app/tooling/admin/commands"
	"github.com/relaylabs/relay/foundation/forwarding/genesis"
	"github.com/relaylabs/relay/foundation/forwarding/host"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
	"github.com/relaylabs/relay/foundation/logger"
)

// These match the defaults the relay service runs with. Override with the
// matching environment variables when the service runs elsewhere.
const (
	accountsFolder = "zrelay/accounts/"
	genesisPath    = "zrelay/genesis.json"
	journalKind    = host.JournalBadger
	journalPath    = "zrelay/journal/"
)

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	if len(os.Args) < 2 {
		return errors.New("expected a command: bals, journal, decommission")
	}

	return processCommands(os.Args)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args []string) error {
	switch args[1] {
	case "bals":
		hst, err := openHost()
		if err != nil {
			return err
		}
		defer hst.Shutdown()

		if err := commands.Balances(args, hst); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}

	case "journal":
		hst, err := openHost()
		if err != nil {
			return err
		}
		defer hst.Shutdown()

		if err := commands.Journal(args, hst); err != nil {
			return fmt.Errorf("getting journal records: %w", err)
		}

	case "decommission":
		if err := commands.Decommission(args, accountsFolder); err != nil {
			return fmt.Errorf("decommissioning the pair: %w", err)
		}

	default:
		return fmt.Errorf("unknown command %q", args[1])
	}

	return nil
}

// openHost builds the relay pair over the journal on disk. The journal
// backend takes an exclusive lock, so these commands only run while the
// service is stopped.
func openHost() (*host.Host, error) {
	relayKey, err := crypto.LoadECDSA(accountsFolder + "relay.ecdsa")
	if err != nil {
		return nil, fmt.Errorf("unable to load private key for the relay: %w", err)
	}

	receiverKey, err := crypto.LoadECDSA(accountsFolder + "receiver.ecdsa")
	if err != nil {
		return nil, fmt.Errorf("unable to load private key for the receiver: %w", err)
	}

	gen, err := genesis.Load(genesisPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load genesis file: %w", err)
	}

	return host.New(host.Config{
		RelayID:     ledger.PublicKeyToAccountID(relayKey.PublicKey),
		ReceiverID:  ledger.PublicKeyToAccountID(receiverKey.PublicKey),
		Genesis:     gen,
		JournalKind: journalKind,
		JournalPath: journalPath,
	})
}
