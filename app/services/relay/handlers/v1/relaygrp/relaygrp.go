// Package relaygrp maintains the group of handlers for relay pair access.
package relaygrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/relaylabs/relay/business/sys/validate"
	"github.com/relaylabs/relay/business/web/errs"
	"github.com/relaylabs/relay/foundation/events"
	"github.com/relaylabs/relay/foundation/forwarding/host"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
	"github.com/relaylabs/relay/foundation/nameservice"
	"github.com/relaylabs/relay/foundation/web"
)

// Handlers manages the set of relay pair endpoints.
type Handlers struct {
	Log  *zap.SugaredLogger
	Host *host.Host
	NS   *nameservice.NameService
	WS   websocket.Upgrader
	Evts *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransfer runs a signed transfer through the relay, which forwards
// the value to its receiver in the same operation.
func (h Handlers) SubmitTransfer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx submitTx
	if err := web.Decode(r, &tx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if err := validate.Check(tx); err != nil {
		return err
	}

	signedTx := toSignedTransfer(tx)

	h.Log.Infow("accept value", "traceid", v.TraceID, "nonce", signedTx.Nonce, "to", signedTx.ToID, "value", signedTx.Value)
	if err := h.Host.SubmitTransfer(signedTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status          string `json:"status"`
		RelayBalance    uint64 `json:"relay_balance"`
		ReceiverBalance uint64 `json:"receiver_balance"`
	}{
		Status:          "value forwarded",
		RelayBalance:    h.Host.QueryRelayBalance(),
		ReceiverBalance: h.Host.QueryReceiverBalance(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitReceiverTransfer runs a signed transfer addressed directly to the
// receiver, bypassing the relay.
func (h Handlers) SubmitReceiverTransfer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx submitTx
	if err := web.Decode(r, &tx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if err := validate.Check(tx); err != nil {
		return err
	}

	signedTx := toSignedTransfer(tx)

	h.Log.Infow("accept value direct", "traceid", v.TraceID, "nonce", signedTx.Nonce, "to", signedTx.ToID, "value", signedTx.Value)
	if err := h.Host.SubmitReceiverTransfer(signedTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status          string `json:"status"`
		ReceiverBalance uint64 `json:"receiver_balance"`
	}{
		Status:          "value accepted",
		ReceiverBalance: h.Host.QueryReceiverBalance(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitDecommission takes a signed order and, when the owner signed it,
// closes out the relay pair with the remaining value moved to the
// beneficiary named in the order.
func (h Handlers) SubmitDecommission(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ord submitOrder
	if err := web.Decode(r, &ord); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if err := validate.Check(ord); err != nil {
		return err
	}

	signedOrder := host.SignedOrder{
		Order: host.Order{
			Beneficiary: ledger.AccountID(ord.Beneficiary),
		},
		V: ord.V,
		R: ord.R,
		S: ord.S,
	}

	h.Log.Infow("decommission", "traceid", v.TraceID, "beneficiary", signedOrder.Beneficiary)
	if err := h.Host.SubmitDecommission(signedOrder); err != nil {
		if errors.Is(err, host.ErrNotOwner) {
			return errs.NewTrusted(err, http.StatusForbidden)
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status      string           `json:"status"`
		Beneficiary ledger.AccountID `json:"beneficiary"`
	}{
		Status:      "pair decommissioned",
		Beneficiary: signedOrder.Beneficiary,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RelayBalance returns the value the relay currently holds, which stays at
// zero outside of a forwarding operation.
func (h Handlers) RelayBalance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Account ledger.AccountID `json:"account"`
		Balance uint64           `json:"balance"`
	}{
		Account: h.Host.RelayAccountID(),
		Balance: h.Host.QueryRelayBalance(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// ReceiverBalance returns the value the receiver has accumulated.
func (h Handlers) ReceiverBalance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Account ledger.AccountID `json:"account"`
		Balance uint64           `json:"balance"`
	}{
		Account: h.Host.ReceiverAccountID(),
		Balance: h.Host.QueryReceiverBalance(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Status returns the current status of the relay pair.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.Host.LatestRecord()

	resp := pairStatus{
		Relay:          h.Host.RelayAccountID(),
		Receiver:       h.Host.ReceiverAccountID(),
		Decommissioned: h.Host.Decommissioned(),
		LatestSeq:      latest.Header.Seq,
		LatestRecord:   latest.Hash(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.Host.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Accounts returns the current account balances known to the ledger.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	var accounts []ledger.Account
	switch account {
	case "":
		accounts = h.Host.Accounts()

	default:
		accountID, err := ledger.ToAccountID(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		act, err := h.Host.QueryAccount(accountID)
		if err != nil {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		accounts = append(accounts, act)
	}

	acts := make([]info, 0, len(accounts))
	for _, act := range accounts {
		acts = append(acts, info{
			Account: act.AccountID,
			Name:    h.NS.Lookup(act.AccountID),
			Balance: act.Balance,
			Nonce:   act.Nonce,
		})
	}

	ai := actInfo{
		LatestRecord: h.Host.LatestRecord().Hash(),
		Accounts:     acts,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}

// RecordsBySeq returns journal records based on the specified from/to values.
func (h Handlers) RecordsBySeq(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	if fromStr == "latest" || fromStr == "" {
		fromStr = fmt.Sprintf("%d", host.QueryLatest)
	}

	toStr := web.Param(r, "to")
	if toStr == "latest" || toStr == "" {
		toStr = fmt.Sprintf("%d", host.QueryLatest)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}
	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if from > to {
		return errs.NewTrusted(errors.New("from greater than to"), http.StatusBadRequest)
	}

	records := h.Host.QueryRecordsBySeq(from, to)
	if len(records) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, records, http.StatusOK)
}

// =============================================================================

// toSignedTransfer rebuilds the wire transfer the caller signed.
func toSignedTransfer(tx submitTx) ledger.SignedTransfer {
	return ledger.SignedTransfer{
		Transfer: ledger.Transfer{
			Nonce: tx.Nonce,
			ToID:  ledger.AccountID(tx.To),
			Value: tx.Value,
		},
		V: tx.V,
		R: tx.R,
		S: tx.S,
	}
}
