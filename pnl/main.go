package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/etnz/tradestats/cmd"
	"github.com/etnz/tradestats/logger"
	"github.com/google/subcommands"
)

var (
	logLevel  = flag.String("log-level", "WARN", "Log level: DEBUG, INFO, WARN or ERROR.")
	logFormat = flag.String("log-format", "text", "Log format: text or json.")
)

func main() {
	cmd.Complete("pnl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat}, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
