package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradestats"
	"github.com/etnz/tradestats/logger"
	"github.com/etnz/tradestats/server"
	"github.com/google/subcommands"
)

// serveCmd holds the flags for the 'serve' subcommand. Flags override the
// PNL_* environment.
type serveCmd struct {
	addr   string
	ledger string
	fees   string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the P&L dashboard" }
func (*serveCmd) Usage() string {
	return `pnl serve [-addr :8080] [-f <ledger>] [-fees <schedule.yaml>]

  Serves the dashboard: upload a ledger, filter it and browse its report.
  With -f, the ledger is shown by default and reloaded when it changes.

  The server reads PNL_* environment variables, and a .env file if present:
  PNL_ADDR, PNL_LEDGER, PNL_FEE_FILE, PNL_MAX_UPLOAD_BYTES,
  PNL_DEFAULT_CAPITAL, PNL_DEFAULT_BROKERAGE, PNL_DEFAULT_PROFIT_SHARING,
  PNL_LOG_LEVEL, PNL_LOG_FORMAT, PNL_LOG_TRACING.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, PNL_ADDR or :8080 by default.")
	f.StringVar(&c.ledger, "f", "", "Ledger to load and watch.")
	f.StringVar(&c.fees, "fees", "", "YAML fee schedule.")
}

// config merges the flags over the environment.
func (c *serveCmd) config() (server.Config, error) {
	cfg, err := server.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	if c.ledger != "" {
		cfg.Ledger = c.ledger
	}
	if c.fees != "" {
		cfg.FeeFile = c.fees
	}
	return cfg, nil
}

func (c *serveCmd) run(ctx context.Context) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log, os.Stderr); err != nil {
		return err
	}
	defer logger.Shutdown(context.Background())

	fees := tradestats.DefaultFees()
	if cfg.FeeFile != "" {
		if fees, err = tradestats.LoadFees(cfg.FeeFile); err != nil {
			return err
		}
	}
	srv := server.New(cfg, fees)
	if cfg.Ledger != "" {
		if err := srv.LoadLedger(ctx, cfg.Ledger); err != nil {
			return err
		}
		go func() {
			if err := srv.WatchLedger(ctx, cfg.Ledger); err != nil {
				logger.Error(ctx, "ledger watch stopped", err)
			}
		}()
	}
	return srv.ListenAndServe(ctx)
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
