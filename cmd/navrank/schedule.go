package main

import (
	"context"
	"errors"
	"flag"

	"github.com/google/subcommands"

	"github.com/0xcro3dile/navrank-go/internal/config"
	"github.com/0xcro3dile/navrank-go/internal/infrastructure/scheduler"
)

type scheduleCmd struct{}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "fetches the NAV file every day at a fixed time" }
func (*scheduleCmd) Usage() string {
	return `navrank schedule

Runs until interrupted, fetching the AMFI NAV file once a day at the
time set by ` + config.EnvFetchAt + ` (local time, default 18:00).
A failed fetch is logged and retried the next day.
`
}

func (*scheduleCmd) SetFlags(*flag.FlagSet) {}

func (c *scheduleCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := configFrom(args)
	if err != nil {
		return fail(err)
	}

	err = dailyFetcher(cfg).Run(ctx, "amfi-fetch", func(ctx context.Context) error {
		_, err := fetchSnapshot(ctx, cfg)
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func dailyFetcher(cfg *config.Config) *scheduler.Daily {
	hour, minute := cfg.FetchClock()
	return scheduler.NewDaily(hour, minute)
}
