// Package host is the core API for running a relay pair. It owns the
// ledger the pair settles against, opens the configured journal backend
// and enforces the hosting policies, like who may order a decommission.
package host

import (
	"fmt"

	"github.com/relaylabs/relay/foundation/forwarding/genesis"
	"github.com/relaylabs/relay/foundation/forwarding/journal/badger"
	"github.com/relaylabs/relay/foundation/forwarding/journal/disk"
	"github.com/relaylabs/relay/foundation/forwarding/journal/memory"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
	"github.com/relaylabs/relay/foundation/forwarding/relay"
)

// EventHandler defines a function that is called when events occur in the
// processing of transfers.
type EventHandler func(v string, args ...any)

// Set of journal backends the host can open.
const (
	JournalDisk   = "disk"
	JournalMemory = "memory"
	JournalBadger = "badger"
)

// =============================================================================

// Config represents the configuration required to start the host.
type Config struct {
	RelayID     ledger.AccountID
	ReceiverID  ledger.AccountID
	Genesis     genesis.Genesis
	JournalKind string
	JournalPath string
	EvHandler   EventHandler
}

// Host manages the ledger and the relay pair settling against it.
type Host struct {
	genesis   genesis.Genesis
	evHandler func(v string, args ...any)

	ledger *ledger.Ledger
	relay  *relay.Relay
}

// New constructs a host with a relay pair ready to accept transfers.
func New(cfg Config) (*Host, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Open the journal backend the configuration asks for.
	jrnl, err := openJournal(cfg.JournalKind, cfg.JournalPath)
	if err != nil {
		return nil, err
	}

	// Construct the ledger, which seeds the genesis balances and replays
	// any records the journal already holds.
	lgr, err := ledger.New(cfg.Genesis, jrnl, ev)
	if err != nil {
		jrnl.Close()
		return nil, err
	}

	// Construct the relay pair over the ledger.
	rly, err := relay.New(relay.Config{
		Ledger:     lgr,
		AccountID:  cfg.RelayID,
		ReceiverID: cfg.ReceiverID,
		EvHandler:  ev,
	})
	if err != nil {
		lgr.Close()
		return nil, err
	}

	host := Host{
		genesis:   cfg.Genesis,
		evHandler: ev,

		ledger: lgr,
		relay:  rly,
	}

	return &host, nil
}

// Shutdown cleanly brings the host down.
func (h *Host) Shutdown() error {

	// Make sure the journal is properly closed.
	defer func() {
		h.ledger.Close()
	}()

	return nil
}

// =============================================================================

// openJournal opens the specified journal backend.
func openJournal(kind string, path string) (ledger.Journal, error) {
	switch kind {
	case JournalDisk:
		return disk.New(path)

	case JournalBadger:
		return badger.New(path)

	case JournalMemory:
		return memory.New()
	}

	return nil, fmt.Errorf("unknown journal kind %q", kind)
}
