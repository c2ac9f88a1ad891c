package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/adapters/export"
	"github.com/0xcro3dile/navrank-go/internal/adapters/render"
	"github.com/0xcro3dile/navrank-go/internal/adapters/snapshot"
	"github.com/0xcro3dile/navrank-go/internal/config"
	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
	"github.com/0xcro3dile/navrank-go/internal/domain/usecases"
)

type recommendCmd struct {
	snapshot    string
	profileFile string
	interactive bool

	fundType  string
	risk      string
	goal      string
	horizon   string
	knowledge string
	ageIncome string

	out      string
	noExport bool
	explain  bool
	asJSON   bool
	style    string
	width    int
}

func (*recommendCmd) Name() string     { return "recommend" }
func (*recommendCmd) Synopsis() string { return "ranks funds of a NAV snapshot for an investor profile" }
func (*recommendCmd) Usage() string {
	return `navrank recommend [-snapshot file] [-profile file.yaml | -interactive] [-risk R -goal G -fund-type T]

Cleans and categorizes a NAV snapshot, attaches return signals and prints
the top funds for the profile. Profile fields are read from a YAML file,
an interactive prompt, and flags, in that order; later sources win.

When no snapshot is given the latest one in the data directory is used.
The ranked table is also written as CSV unless -no-export is set.
`
}

func (c *recommendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.snapshot, "snapshot", "", "NAV snapshot file. Defaults to the latest in the data directory.")
	f.StringVar(&c.profileFile, "profile", "", "YAML file with profile fields.")
	f.BoolVar(&c.interactive, "interactive", false, "Prompt for the profile on the terminal.")

	f.StringVar(&c.fundType, "fund-type", "", "Equity, Debt, Hybrid or Any.")
	f.StringVar(&c.risk, "risk", "", "Low, Medium or High.")
	f.StringVar(&c.goal, "goal", "", "Growth, Income or Balanced.")
	f.StringVar(&c.horizon, "horizon", "", "Short or Long (informational).")
	f.StringVar(&c.knowledge, "knowledge", "", "Beginner, Intermediate or Expert (informational).")
	f.StringVar(&c.ageIncome, "age-income", "", "Age group / income level (informational).")

	f.StringVar(&c.out, "out", "", "CSV output path. Defaults to <data-dir>/"+export.DefaultFileName+".")
	f.BoolVar(&c.noExport, "no-export", false, "Do not write the CSV output.")
	f.BoolVar(&c.explain, "explain", false, "Describe the scoring model before the results.")
	f.BoolVar(&c.asJSON, "json", false, "Print the recommendation as JSON.")
	f.StringVar(&c.style, "style", "", "glamour style (dark, light, notty). Empty picks one automatically.")
	f.IntVar(&c.width, "width", 120, "Word wrap width for terminal output.")
}

func (c *recommendCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := configFrom(args)
	if err != nil {
		return fail(err)
	}

	fields, err := c.profileFields()
	if err != nil {
		return fail(err)
	}
	profile := usecases.BuildProfile(fields)

	funds, err := c.universe(ctx, cfg)
	if err != nil {
		return fail(err)
	}

	rec := usecases.NewRecommendUseCase(cfg.TopN).Recommend(funds, profile)

	if c.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fail(err)
		}
	} else if err := c.print(rec); err != nil {
		return fail(err)
	}

	if rec.Empty() || c.noExport {
		return subcommands.ExitSuccess
	}

	out := c.out
	if out == "" {
		out = filepath.Join(cfg.DataDir, export.DefaultFileName)
	}
	if err := export.WriteFile(out, rec.Funds); err != nil {
		return fail(err)
	}
	log.Info().Str("path", out).Int("funds", len(rec.Funds)).Msg("recommendations saved")
	return subcommands.ExitSuccess
}

func (c *recommendCmd) profileFields() (map[string]string, error) {
	fields := map[string]string{}

	if c.profileFile != "" {
		fromFile, err := readProfileFile(c.profileFile)
		if err != nil {
			return nil, err
		}
		fields = mergeFields(fields, fromFile)
	}

	if c.interactive {
		answers, err := promptProfile(stdin, stdout)
		if err != nil {
			return nil, err
		}
		fields = mergeFields(fields, answers)
	}

	return mergeFields(fields, map[string]string{
		"FundType":  c.fundType,
		"Risk":      c.risk,
		"Goal":      c.goal,
		"Horizon":   c.horizon,
		"Knowledge": c.knowledge,
		"AgeIncome": c.ageIncome,
	}), nil
}

// universe loads and enriches the snapshot. A missing snapshot yields no funds.
func (c *recommendCmd) universe(ctx context.Context, cfg *config.Config) ([]entities.FundRecord, error) {
	snap, err := loadSnapshot(ctx, cfg, c.snapshot)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		log.Warn().Str("dir", cfg.DataDir).Msg("no NAV snapshot found, run navrank fetch first")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", snap.Path).Msg("cleaning and parsing AMFI data")
	funds, err := usecases.NewIngestUseCase(newSignalProvider(cfg), nil).Enrich(ctx, snap.Raw)
	if err != nil {
		return nil, err
	}
	log.Info().Int("funds", len(funds)).Msg("cleaned entries")
	return funds, nil
}

func (c *recommendCmd) print(rec *entities.Recommendation) error {
	md, err := render.Markdown(rec)
	if err != nil {
		return err
	}
	if c.explain {
		md = render.ExplainModel() + "\n" + md
	}

	out, err := render.Terminal(md, c.style, c.width)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(stdout, out)
	return err
}
