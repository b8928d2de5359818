// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/relaylabs/relay/app/services/relay/handlers/v1/relaygrp"
	"github.com/relaylabs/relay/foundation/events"
	"github.com/relaylabs/relay/foundation/forwarding/host"
	"github.com/relaylabs/relay/foundation/nameservice"
	"github.com/relaylabs/relay/foundation/web"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log  *zap.SugaredLogger
	Host *host.Host
	NS   *nameservice.NameService
	Evts *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	rlg := relaygrp.Handlers{
		Log:  cfg.Log,
		Host: cfg.Host,
		NS:   cfg.NS,
		Evts: cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", rlg.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", rlg.Genesis)
	app.Handle(http.MethodGet, version, "/accounts/list", rlg.Accounts)
	app.Handle(http.MethodGet, version, "/accounts/list/:account", rlg.Accounts)
	app.Handle(http.MethodGet, version, "/journal/list/:from/:to", rlg.RecordsBySeq)
	app.Handle(http.MethodGet, version, "/pair/status", rlg.Status)

	app.Handle(http.MethodGet, version, "/relay/balance", rlg.RelayBalance)
	app.Handle(http.MethodGet, version, "/relay/receiver/balance", rlg.ReceiverBalance)
	app.Handle(http.MethodGet, version, "/receiver/balance", rlg.ReceiverBalance)

	app.Handle(http.MethodPost, version, "/relay/accept", rlg.SubmitTransfer)
	app.Handle(http.MethodPost, version, "/receiver/accept", rlg.SubmitReceiverTransfer)
	app.Handle(http.MethodPost, version, "/relay/decommission", rlg.SubmitDecommission)
}
