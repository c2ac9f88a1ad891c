package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
	"github.com/0xcro3dile/navrank-go/internal/domain/ports"
)

var (
	// ErrSignalCount is returned when a provider does not return one entry per fund.
	ErrSignalCount = errors.New("signal provider returned wrong number of entries")

	// ErrEmptySnapshot is returned by Ingest when a snapshot yields no funds.
	// The published universe is left as it was.
	ErrEmptySnapshot = errors.New("snapshot has no usable funds")
)

// IngestUseCase turns a NAV snapshot into the enriched fund universe.
type IngestUseCase struct {
	signals ports.SignalProvider
	store   ports.FundStore
}

// NewIngestUseCase creates an IngestUseCase with injected dependencies.
// store may be nil when the caller only needs Enrich.
func NewIngestUseCase(signals ports.SignalProvider, store ports.FundStore) *IngestUseCase {
	return &IngestUseCase{
		signals: signals,
		store:   store,
	}
}

// Enrich parses, cleans, categorizes and attaches signals to raw NAV text.
func (uc *IngestUseCase) Enrich(ctx context.Context, raw string) ([]entities.FundRecord, error) {
	// 1. Parse and clean
	funds := ParseAndClean(raw)
	if len(funds) == 0 {
		return funds, nil
	}

	// 2. Categorize
	funds = CategorizeAll(funds)

	// 3. Attach signals via port (adapter)
	funds, err := AttachSignals(ctx, uc.signals, funds)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("funds", len(funds)).Msg("enriched NAV data")
	return funds, nil
}

// Ingest enriches a snapshot and publishes it to the fund store.
// It returns the number of funds published. A snapshot with no usable
// funds is never published.
func (uc *IngestUseCase) Ingest(ctx context.Context, snap *entities.Snapshot) (int, error) {
	if uc.store == nil {
		return 0, errors.New("ingest: no fund store configured")
	}

	funds, err := uc.Enrich(ctx, snap.Raw)
	if err != nil {
		return 0, fmt.Errorf("enriching snapshot %s: %w", snap.Date.Format("2006-01-02"), err)
	}
	if len(funds) == 0 {
		log.Warn().Str("path", snap.Path).Msg("snapshot has no usable funds, keeping current universe")
		return 0, ErrEmptySnapshot
	}

	if err := uc.store.Replace(ctx, snap.Date, funds); err != nil {
		return 0, fmt.Errorf("publishing funds: %w", err)
	}
	return len(funds), nil
}

// AttachSignals returns a copy of funds with signals from the provider.
func AttachSignals(ctx context.Context, provider ports.SignalProvider, funds []entities.FundRecord) ([]entities.FundRecord, error) {
	signals, err := provider.Signals(ctx, funds)
	if err != nil {
		return nil, fmt.Errorf("fetching signals: %w", err)
	}
	if len(signals) != len(funds) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSignalCount, len(signals), len(funds))
	}

	out := make([]entities.FundRecord, len(funds))
	for i, f := range funds {
		s := signals[i]
		f.Signals = &s
		out[i] = f
	}
	return out, nil
}

// Watch re-ingests snapshot files reported by watcher in dir until ctx is
// done or the event stream ends. Failed loads are logged and skipped.
// onIngest, if set, runs after each published snapshot.
func (uc *IngestUseCase) Watch(
	ctx context.Context,
	watcher ports.FileWatcher,
	snapshots ports.SnapshotStore,
	dir string,
	onIngest func(snap *entities.Snapshot, funds int),
) error {
	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Operation == ports.FileDeleted {
				continue
			}

			snap, err := snapshots.Load(ctx, ev.Path)
			if err != nil {
				log.Error().Err(err).Str("path", ev.Path).Msg("loading snapshot")
				continue
			}
			n, err := uc.Ingest(ctx, snap)
			if err != nil {
				log.Error().Err(err).Str("path", ev.Path).Msg("ingesting snapshot")
				continue
			}

			log.Info().Str("path", ev.Path).Int("funds", n).Msg("fund universe reloaded")
			if onIngest != nil {
				onIngest(snap, n)
			}
		}
	}
}
