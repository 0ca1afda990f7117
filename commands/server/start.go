package server

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// Options are the settings an application is started with.
type Options struct {
	Home   string
	Logger log.Logger

	// DBPath is where the application state is persisted. Empty keeps the
	// state in memory.
	DBPath string

	// Bind is the address the ABCI server listens on.
	Bind string
	// Debug returns call stacks in error responses.
	Debug bool
	// MetricsAddr is the HTTP address serving /metrics. Empty disables it.
	MetricsAddr string

	// Registry collects the application metrics.
	Registry *prometheus.Registry
}

// AppGenerator lets us lazily initialize the app, using the home directory
// and a logger initialized with other flags.
type AppGenerator func(*Options) (abci.Application, error)

// ParseStartFlags overrides the defaults with command line flags.
func ParseStartFlags(args []string, defaults Options) (*Options, error) {
	opts := defaults
	flags := flag.NewFlagSet("start", flag.ContinueOnError)
	flags.StringVar(&opts.Bind, flagBind, defaults.Bind, "address server listens on")
	flags.BoolVar(&opts.Debug, flagDebug, defaults.Debug, "call stack returned on error")
	flags.StringVar(&opts.MetricsAddr, flagMetrics, defaults.MetricsAddr, "address serving prometheus metrics, empty to disable")
	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if opts.Bind == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "bind address")
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	return &opts, nil
}

// StartCmd creates the application and serves it over an ABCI socket until
// the process is signalled.
func StartCmd(gen AppGenerator, opts *Options) error {
	app, err := gen(opts)
	if err != nil {
		return err
	}
	logger := opts.Logger

	logger.Info("Starting ABCI app", "bind", opts.Bind)
	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}

	metrics := serveMetrics(opts, logger)

	cmn.TrapSignal(logger, func() {
		if metrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metrics.Shutdown(ctx); err != nil {
				logger.Error("Metrics server shutdown", "err", err)
			}
		}
		if err := svr.Stop(); err != nil {
			logger.Error("ABCI server shutdown", "err", err)
		}
	})

	// Run forever, the signal handler exits the process.
	select {}
}

func serveMetrics(opts *Options, logger log.Logger) *http.Server {
	if opts.MetricsAddr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: opts.MetricsAddr, Handler: mux}
	go func() {
		logger.Info("Serving metrics", "addr", opts.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server", "err", err)
		}
	}()
	return srv
}
