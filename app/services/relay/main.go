package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/relaylabs/relay/app/services/relay/handlers"
	"github.com/relaylabs/relay/foundation/events"
	"github.com/relaylabs/relay/foundation/forwarding/genesis"
	"github.com/relaylabs/relay/foundation/forwarding/host"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
	"github.com/relaylabs/relay/foundation/logger"
	"github.com/relaylabs/relay/foundation/nameservice"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("RELAY")
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

	// =========================================================================
	// Configuration

	// This is all the configuration for the application and the default values.
	// Configuration values will be passed through the application as individual
	// values.
	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:8080"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
		}
		Relay struct {
			RelayName    string `conf:"default:relay"`
			ReceiverName string `conf:"default:receiver"`
			GenesisPath  string `conf:"default:zrelay/genesis.json"`
			JournalKind  string `conf:"default:badger"`
			JournalPath  string `conf:"default:zrelay/journal/"`
		}
		NameService struct {
			Folder string `conf:"default:zrelay/accounts/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "RELAY"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	fmt.Println(` ____  _____ _        _ __   __`)
	fmt.Println(`|  _ \| ____| |      / \ \ \ / /`)
	fmt.Println(`| |_) |  _| | |     / _ \ \ V /`)
	fmt.Println(`|  _ <| |___| |___ / ___ \ | |`)
	fmt.Println(`|_| \_\_____|_____/_/   \_\|_|`)
	fmt.Print("\n")

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	// The nameservice package provides name resolution for account addresses.
	// The names come from the file names in the zrelay/accounts folder.
	ns, err := nameservice.New(cfg.NameService.Folder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	// Logging the accounts for documentation in the logs.
	for account, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "account", account)
	}

	// =========================================================================
	// Relay Pair Support

	// Load the private key files for the pair so the two account ids can
	// be derived. The keys never sign anything, holding them proves the
	// operator controls the accounts value is forwarded through.
	relayPath := fmt.Sprintf("%s%s.ecdsa", cfg.NameService.Folder, cfg.Relay.RelayName)
	relayKey, err := crypto.LoadECDSA(relayPath)
	if err != nil {
		return fmt.Errorf("unable to load private key for the relay: %w", err)
	}

	receiverPath := fmt.Sprintf("%s%s.ecdsa", cfg.NameService.Folder, cfg.Relay.ReceiverName)
	receiverKey, err := crypto.LoadECDSA(receiverPath)
	if err != nil {
		return fmt.Errorf("unable to load private key for the receiver: %w", err)
	}

	// Load the genesis file with the owner account and opening balances.
	gen, err := genesis.Load(cfg.Relay.GenesisPath)
	if err != nil {
		return fmt.Errorf("unable to load genesis file: %w", err)
	}

	// The forwarding packages accept a function of this signature to allow
	// the application to log. These raw messages are also sent to any
	// websocket client connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	// The host value owns the ledger and the relay pair settling against
	// it, and provides an API for application support.
	hst, err := host.New(host.Config{
		RelayID:     ledger.PublicKeyToAccountID(relayKey.PublicKey),
		ReceiverID:  ledger.PublicKeyToAccountID(receiverKey.PublicKey),
		Genesis:     gen,
		JournalKind: cfg.Relay.JournalKind,
		JournalPath: cfg.Relay.JournalPath,
		EvHandler:   ev,
	})
	if err != nil {
		return err
	}
	defer hst.Shutdown()

	log.Infow("startup", "status", "relay pair ready",
		"relay", hst.RelayAccountID(), "receiver", hst.ReceiverAccountID(),
		"journal", cfg.Relay.JournalKind, "latest", hst.LatestRecord().Header.Seq)

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, hst)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	// Construct the mux for the API calls.
	apiMux := handlers.APIMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Host:     hst,
		NS:       ns,
		Evts:     evts,
	})

	// Construct a server to service the requests against the mux.
	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown API started")
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop service gracefully: %w", err)
		}
	}

	return nil
}
