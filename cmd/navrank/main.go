// Command navrank fetches AMFI NAV snapshots and recommends mutual funds
// for an investor profile.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/config"
)

var (
	verbose  = flag.Bool("v", false, "Enable debug logging.")
	jsonLogs = flag.Bool("json-logs", false, "Write logs as JSON instead of console text.")
	dataDir  = flag.String("data-dir", "", "Override the snapshot directory ("+config.EnvDataDir+").")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&fetchCmd{}, "data")
	commander.Register(&scheduleCmd{}, "data")
	commander.Register(&recommendCmd{}, "recommend")
	commander.Register(&serveCmd{}, "recommend")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	setupLogging(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx, &cfg)
	stop()
	os.Exit(int(status))
}

func setupLogging(cfg *config.Config) {
	level := cfg.Level()
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if *jsonLogs {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}
