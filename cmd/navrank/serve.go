package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/0xcro3dile/navrank-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/navrank-go/internal/adapters/snapshot"
	"github.com/0xcro3dile/navrank-go/internal/adapters/store"
	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
	"github.com/0xcro3dile/navrank-go/internal/domain/ports"
	"github.com/0xcro3dile/navrank-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/navrank-go/internal/infrastructure/http"
)

var newWatcher = func() (ports.FileWatcher, error) {
	return filewatcher.NewFSNotifyWatcher(nil)
}

type serveCmd struct {
	noSchedule bool
	noWatch    bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serves recommendations over HTTP" }
func (*serveCmd) Usage() string {
	return `navrank serve [-no-schedule] [-no-watch]

Loads the latest snapshot from the data directory and serves the JSON API:

  POST /api/recommend   profile fields as a JSON object
  GET  /api/funds       current universe, optional ?category=
  GET  /api/health

New snapshot files in the data directory are ingested as they appear, and
the NAV file is fetched daily unless -no-schedule is set.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noSchedule, "no-schedule", false, "Do not fetch the NAV file daily.")
	f.BoolVar(&c.noWatch, "no-watch", false, "Do not reload when snapshot files change.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := configFrom(args)
	if err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fail(err)
	}

	funds := store.NewInMemoryStore()
	cache := store.NewRecommendationCache(cfg.CacheTTL)
	snapshots := snapshot.NewFileStore(cfg.DataDir)
	ingest := usecases.NewIngestUseCase(newSignalProvider(cfg), funds)

	snap, err := snapshots.Latest(ctx)
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		log.Warn().Str("dir", cfg.DataDir).Msg("no NAV snapshot yet, serving empty universe")
	case err != nil:
		return fail(err)
	default:
		n, err := ingest.Ingest(ctx, snap)
		switch {
		case errors.Is(err, usecases.ErrEmptySnapshot):
			log.Warn().Str("path", snap.Path).Msg("latest snapshot is empty, serving empty universe")
		case err != nil:
			return fail(err)
		default:
			log.Info().Str("path", snap.Path).Int("funds", n).Msg("fund universe loaded")
		}
	}

	var watcher ports.FileWatcher
	if !c.noWatch {
		if watcher, err = newWatcher(); err != nil {
			return fail(err)
		}
		defer watcher.Stop()
	}

	server := httpserver.NewServer(usecases.NewRecommendUseCase(cfg.TopN), funds, cache, cfg.HTTPAddr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Start(ctx) })

	if watcher != nil {
		g.Go(func() error {
			return ingest.Watch(ctx, watcher, snapshots, cfg.DataDir, func(*entities.Snapshot, int) {
				cache.Flush()
			})
		})
	}

	if !c.noSchedule {
		g.Go(func() error {
			return dailyFetcher(cfg).Run(ctx, "amfi-fetch", func(ctx context.Context) error {
				_, err := fetchSnapshot(ctx, cfg)
				return err
			})
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
