// Package nameservice reads a folder of ecdsa key files and creates a
// name service lookup for the accounts the keys control.
package nameservice

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	accounts map[ledger.AccountID]string
}

// New constructs a name service with accounts from the specified folder.
// The name of each account is the name of its key file.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[ledger.AccountID]string),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if path.Ext(fileName) != ".ecdsa" {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return err
		}

		accountID := ledger.PublicKeyToAccountID(privateKey.PublicKey)
		ns.accounts[accountID] = strings.TrimSuffix(path.Base(fileName), ".ecdsa")

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account.
func (ns *NameService) Lookup(accountID ledger.AccountID) string {
	name, exists := ns.accounts[accountID]
	if !exists {
		return string(accountID)
	}
	return name
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[ledger.AccountID]string {
	cpy := make(map[ledger.AccountID]string, len(ns.accounts))
	for accountID, name := range ns.accounts {
		cpy[accountID] = name
	}
	return cpy
}
