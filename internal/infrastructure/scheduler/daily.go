// Package scheduler runs a job once a day at a fixed local time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is the work run on every tick.
type Job func(ctx context.Context) error

// Daily fires a job every day at Hour:Minute in the scheduler's location.
type Daily struct {
	Hour     int
	Minute   int
	Location *time.Location

	now      func() time.Time
	schedule cron.Schedule // overrides the daily spec when set
}

// NewDaily creates a scheduler for hour:minute local time.
func NewDaily(hour, minute int) *Daily {
	return &Daily{
		Hour:     hour,
		Minute:   minute,
		Location: time.Local,
		now:      time.Now,
	}
}

// Spec returns the cron expression for the daily run.
func (d *Daily) Spec() string {
	return fmt.Sprintf("%d %d * * *", d.Minute, d.Hour)
}

func (d *Daily) cronSchedule() (cron.Schedule, error) {
	if d.schedule != nil {
		return d.schedule, nil
	}
	return cron.ParseStandard(d.Spec())
}

// Next returns the first run time strictly after from.
func (d *Daily) Next(from time.Time) (time.Time, error) {
	s, err := d.cronSchedule()
	if err != nil {
		return time.Time{}, err
	}
	return s.Next(from.In(d.Location)), nil
}

// Run blocks, firing job on schedule until ctx is cancelled. Job errors are
// logged and the next run is still scheduled. A run still in progress when
// the next one is due causes that tick to be skipped.
func (d *Daily) Run(ctx context.Context, name string, job Job) error {
	s, err := d.cronSchedule()
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := cronLogger{name: name}
	c := cron.New(
		cron.WithLocation(d.Location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(s, cron.FuncJob(func() {
		start := d.now()
		if err := job(ctx); err != nil {
			log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
			return
		}
		log.Info().Str("job", name).Dur("took", d.now().Sub(start)).Msg("scheduled job finished")
	}))

	log.Info().Str("job", name).Time("next", s.Next(d.now().In(d.Location))).Msg("job scheduled")
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

// cronLogger routes cron's own messages to zerolog.
type cronLogger struct {
	name string
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Str("job", l.name).Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Str("job", l.name).Fields(keysAndValues).Msg("cron: " + msg)
}
