package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/domain/usecases"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "downloads the latest AMFI NAV file into the data directory" }
func (*fetchCmd) Usage() string {
	return `navrank fetch

Downloads the NAV file for all schemes published by AMFI and saves it as
AMFI_NAV_<date>.csv in the data directory. The date is read from the
file itself, or defaults to yesterday when none is present.
`
}

func (*fetchCmd) SetFlags(*flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := configFrom(args)
	if err != nil {
		return fail(err)
	}

	snap, err := fetchSnapshot(ctx, cfg)
	if err != nil {
		return fail(err)
	}

	records := usecases.ParseNAV(snap.Raw)
	log.Info().Int("rows", len(records)).Str("path", snap.Path).Msg("loaded valid rows")
	fmt.Fprintf(stdout, "Saved NAV data for %s to %s\n", snap.Date.Format("2006-01-02"), snap.Path)
	return subcommands.ExitSuccess
}
