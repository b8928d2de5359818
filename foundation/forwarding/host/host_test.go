package host_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/relaylabs/relay/foundation/forwarding/genesis"
	"github.com/relaylabs/relay/foundation/forwarding/host"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// The private key below signs as the owner account, which is also the
// caller funding the transfers in these tests.
const (
	ownerHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"

	ownerID       = ledger.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	relayID       = ledger.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	receiverID    = ledger.AccountID("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
	beneficiaryID = ledger.AccountID("0x6Fe6CF3c83cC1c958F7b5D92B6DD1A6Dd64F89bC")
)

// =============================================================================

func Test_SubmitTransfer(t *testing.T) {
	t.Log("Given the need to run transfers through a hosted relay pair.")
	{
		t.Logf("\tTest 0:\tWhen submitting a transfer to the relay.")
		{
			h := newHost(t, host.JournalMemory, "")
			defer h.Shutdown()

			if err := h.SubmitTransfer(signTransfer(t, ownerHexKey, 1, relayID, 100)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the transfer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to submit the transfer.", success)

			if balance := h.QueryRelayBalance(); balance != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould hold nothing in the relay, got %d.", failed, balance)
			}
			t.Logf("\t%s\tTest 0:\tShould hold nothing in the relay.", success)

			if balance := h.QueryReceiverBalance(); balance != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould hold 100 in the receiver, got %d.", failed, balance)
			}
			t.Logf("\t%s\tTest 0:\tShould hold 100 in the receiver.", success)
		}

		t.Logf("\tTest 1:\tWhen submitting a transfer to the receiver directly.")
		{
			h := newHost(t, host.JournalMemory, "")
			defer h.Shutdown()

			if err := h.SubmitReceiverTransfer(signTransfer(t, ownerHexKey, 1, receiverID, 75)); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to submit the transfer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to submit the transfer.", success)

			if balance := h.QueryReceiverBalance(); balance != 75 {
				t.Fatalf("\t%s\tTest 1:\tShould hold 75 in the receiver, got %d.", failed, balance)
			}
			t.Logf("\t%s\tTest 1:\tShould hold 75 in the receiver.", success)
		}
	}
}

func Test_SubmitDecommission(t *testing.T) {
	t.Log("Given the need to restrict decommission to the owner.")
	{
		t.Logf("\tTest 0:\tWhen the order is signed by someone else.")
		{
			h := newHost(t, host.JournalMemory, "")
			defer h.Shutdown()

			if err := h.SubmitTransfer(signTransfer(t, ownerHexKey, 1, relayID, 100)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit a transfer: %v", failed, err)
			}

			intruder, err := crypto.GenerateKey()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to generate a private key: %v", failed, err)
			}

			order, err := host.NewOrder(beneficiaryID)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the order: %v", failed, err)
			}

			signedOrder, err := order.Sign(intruder)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to sign the order: %v", failed, err)
			}

			if err := h.SubmitDecommission(signedOrder); !errors.Is(err, host.ErrNotOwner) {
				t.Fatalf("\t%s\tTest 0:\tShould not be able to decommission the pair: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould not be able to decommission the pair.", success)

			if h.Decommissioned() {
				t.Fatalf("\t%s\tTest 0:\tShould leave the pair in service.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the pair in service.", success)

			if balance := h.QueryReceiverBalance(); balance != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the receiver balance untouched, got %d.", failed, balance)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the receiver balance untouched.", success)
		}

		t.Logf("\tTest 1:\tWhen the order is signed by the owner.")
		{
			h := newHost(t, host.JournalMemory, "")
			defer h.Shutdown()

			if err := h.SubmitTransfer(signTransfer(t, ownerHexKey, 1, relayID, 100)); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to submit a transfer: %v", failed, err)
			}

			signedOrder := signOrder(t, ownerHexKey, beneficiaryID)

			if err := h.SubmitDecommission(signedOrder); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to decommission the pair: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to decommission the pair.", success)

			if !h.Decommissioned() {
				t.Fatalf("\t%s\tTest 1:\tShould report the pair as decommissioned.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould report the pair as decommissioned.", success)

			if err := h.SubmitDecommission(signedOrder); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould not be able to replay the order.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not be able to replay the order.", success)
		}
	}
}

func Test_HostRestart(t *testing.T) {
	t.Log("Given the need to rebuild the pair's balances after a restart.")
	{
		t.Logf("\tTest 0:\tWhen restarting over a disk journal.")
		{
			journalPath := t.TempDir()

			h := newHost(t, host.JournalDisk, journalPath)

			if err := h.SubmitTransfer(signTransfer(t, ownerHexKey, 1, relayID, 100)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit a transfer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to submit a transfer.", success)

			if err := h.Shutdown(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to shut the host down: %v", failed, err)
			}

			h = newHost(t, host.JournalDisk, journalPath)
			defer h.Shutdown()
			t.Logf("\t%s\tTest 0:\tShould be able to restart the host.", success)

			if balance := h.QueryReceiverBalance(); balance != 100 {
				t.Fatalf("\t%s\tTest 0:\tShould hold 100 in the receiver after the restart, got %d.", failed, balance)
			}
			t.Logf("\t%s\tTest 0:\tShould hold 100 in the receiver after the restart.", success)
		}
	}
}

func Test_Queries(t *testing.T) {
	t.Log("Given the need to query the hosted ledger.")
	{
		t.Logf("\tTest 0:\tWhen reading accounts and records.")
		{
			h := newHost(t, host.JournalMemory, "")
			defer h.Shutdown()

			if err := h.SubmitTransfer(signTransfer(t, ownerHexKey, 1, relayID, 100)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the first transfer: %v", failed, err)
			}
			if err := h.SubmitTransfer(signTransfer(t, ownerHexKey, 2, relayID, 50)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the second transfer: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to submit two transfers.", success)

			account, err := h.QueryAccount(ownerID)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to query the caller account: %v", failed, err)
			}
			if account.Balance != 850 || account.Nonce != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have balance 850 and nonce 2, got %d and %d.", failed, account.Balance, account.Nonce)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to query the caller account.", success)

			if _, err := h.QueryAccount(beneficiaryID); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould not be able to query an unknown account.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not be able to query an unknown account.", success)

			records := h.QueryRecordsBySeq(1, host.QueryLatest)
			if len(records) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould read two records from the journal, got %d.", failed, len(records))
			}
			t.Logf("\t%s\tTest 0:\tShould read two records from the journal.", success)

			records = h.QueryRecordsBySeq(host.QueryLatest, host.QueryLatest)
			if len(records) != 1 || records[0].Header.Seq != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould read the latest record from the journal.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould read the latest record from the journal.", success)
		}
	}
}

// =============================================================================

func newHost(t *testing.T, journalKind string, journalPath string) *host.Host {
	t.Helper()

	h, err := host.New(host.Config{
		RelayID:    relayID,
		ReceiverID: receiverID,
		Genesis: genesis.Genesis{
			Owner:    string(ownerID),
			Balances: map[string]uint64{string(ownerID): 1000},
		},
		JournalKind: journalKind,
		JournalPath: journalPath,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the host: %v", failed, err)
	}

	return h
}

func signTransfer(t *testing.T, hexKey string, nonce uint64, toID ledger.AccountID, value uint64) ledger.SignedTransfer {
	t.Helper()

	pk, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to parse the private key: %v", failed, err)
	}

	tr, err := ledger.NewTransfer(nonce, toID, value)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the transfer: %v", failed, err)
	}

	str, err := tr.Sign(pk)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign the transfer: %v", failed, err)
	}

	return str
}

func signOrder(t *testing.T, hexKey string, beneficiary ledger.AccountID) host.SignedOrder {
	t.Helper()

	pk, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to parse the private key: %v", failed, err)
	}

	order, err := host.NewOrder(beneficiary)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the order: %v", failed, err)
	}

	signedOrder, err := order.Sign(pk)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign the order: %v", failed, err)
	}

	return signedOrder
}
