package relaygrp

import (
	"math/big"

	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// submitTx is what a caller posts to move value to the pair. The fields
// mirror the signed transfer wire format so the signature still verifies
// after the rebuild.
type submitTx struct {
	Nonce uint64   `json:"nonce" validate:"required"`
	To    string   `json:"to" validate:"required,len=42"`
	Value uint64   `json:"value"`
	V     *big.Int `json:"v" validate:"required"`
	R     *big.Int `json:"r" validate:"required"`
	S     *big.Int `json:"s" validate:"required"`
}

// submitOrder is what the owner posts to take the pair out of service.
type submitOrder struct {
	Beneficiary string   `json:"beneficiary" validate:"required,len=42"`
	V           *big.Int `json:"v" validate:"required"`
	R           *big.Int `json:"r" validate:"required"`
	S           *big.Int `json:"s" validate:"required"`
}

// info describes an account and its balance.
type info struct {
	Account ledger.AccountID `json:"account"`
	Name    string           `json:"name"`
	Balance uint64           `json:"balance"`
	Nonce   uint64           `json:"nonce"`
}

// actInfo is the payload returned from an accounts query.
type actInfo struct {
	LatestRecord string `json:"latest_record"`
	Accounts     []info `json:"accounts"`
}

// pairStatus describes the relay pair and where its journal stands.
type pairStatus struct {
	Relay          ledger.AccountID `json:"relay"`
	Receiver       ledger.AccountID `json:"receiver"`
	Decommissioned bool             `json:"decommissioned"`
	LatestSeq      uint64           `json:"latest_seq"`
	LatestRecord   string           `json:"latest_record"`
}
