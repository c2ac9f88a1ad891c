package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/0xcro3dile/navrank-go/internal/adapters/amfi"
	"github.com/0xcro3dile/navrank-go/internal/adapters/signals"
	"github.com/0xcro3dile/navrank-go/internal/adapters/snapshot"
	"github.com/0xcro3dile/navrank-go/internal/config"
	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// configFrom extracts the config passed to commander.Execute.
func configFrom(args []interface{}) (*config.Config, error) {
	if len(args) == 0 {
		return nil, errors.New("missing configuration")
	}
	cfg, ok := args[0].(*config.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected argument %T", args[0])
	}
	return cfg, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func newSignalProvider(cfg *config.Config) *signals.SeededProvider {
	return signals.NewSeededProvider(cfg.SignalSeed)
}

// fetchSnapshot downloads the NAV file and stores it in the data directory.
func fetchSnapshot(ctx context.Context, cfg *config.Config) (*entities.Snapshot, error) {
	client := amfi.NewClient(cfg.AMFIURL, cfg.FetchTimeout)
	snap, err := client.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	path, err := snapshot.NewFileStore(cfg.DataDir).Save(ctx, snap)
	if err != nil {
		return nil, err
	}
	snap.Path = path
	return snap, nil
}

// loadSnapshot reads path, or the latest snapshot in the data directory when path is empty.
func loadSnapshot(ctx context.Context, cfg *config.Config, path string) (*entities.Snapshot, error) {
	files := snapshot.NewFileStore(cfg.DataDir)
	if path == "" {
		return files.Latest(ctx)
	}
	return files.Load(ctx, path)
}
