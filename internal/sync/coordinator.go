// Package sync decides when a remote fetch is needed and reconciles the
// result into the record store. Source failures are absorbed: offline
// operation must never surface a hard failure to the consumer, the local
// store stands in as the result.
package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"stocksync/internal/domain"
	"stocksync/internal/metrics"
	"stocksync/internal/netmon"
	"stocksync/internal/store"
)

// CatalogSource is what the coordinator needs from the remote adapter.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]domain.Item, error)
}

type Coordinator struct {
	store  *store.Store
	source CatalogSource
	mon    *netmon.Monitor
	log    zerolog.Logger

	group singleflight.Group
}

func New(st *store.Store, source CatalogSource, mon *netmon.Monitor, log zerolog.Logger) *Coordinator {
	return &Coordinator{store: st, source: source, mon: mon, log: log}
}

// EnsureFresh makes the store sufficient for reads. Without force, a
// non-empty store is considered fresh enough and no fetch happens; there is
// deliberately no staleness metric beyond that. Concurrent calls that do
// refresh coalesce onto a single in-flight fetch.
func (c *Coordinator) EnsureFresh(ctx context.Context, force bool) error {
	if !force {
		n, err := c.store.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			metrics.SyncSkips.Inc()
			return nil
		}
	}

	_, err, _ := c.group.Do("catalog", func() (any, error) {
		return nil, c.refresh()
	})
	return err
}

// refresh runs one fetch-and-reconcile cycle. It deliberately ignores the
// caller's context: followers attach to the in-flight result, and fetches run
// to completion or failure (bounded by the client timeout).
func (c *Coordinator) refresh() error {
	runID := uuid.NewString()
	metrics.SyncAttempts.Inc()

	started := time.Now()
	items, err := c.source.FetchCatalog(context.Background())
	metrics.FetchDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) || errors.Is(err, domain.ErrSourceFormat) {
			reason := "unavailable"
			if errors.Is(err, domain.ErrSourceFormat) {
				reason = "format"
			}
			metrics.SyncFailures.WithLabelValues(reason).Inc()
			c.mon.MarkOffline()
			c.log.Warn().Err(err).
				Str("sync_id", runID).
				Msg("catalog refresh failed, serving local store")
			return nil
		}
		return err
	}

	c.mon.MarkOnline()
	if err := c.store.UpsertBatch(context.Background(), items); err != nil {
		// A catalog record the store refuses is bad source data, not a local
		// fault. The transport worked, so connectivity stays online.
		if domain.IsValidation(err) {
			metrics.SyncFailures.WithLabelValues("format").Inc()
			c.log.Warn().Err(err).
				Str("sync_id", runID).
				Msg("catalog payload rejected, serving local store")
			return nil
		}
		return err
	}

	c.log.Info().
		Str("sync_id", runID).
		Int("items", len(items)).
		Dur("took", time.Since(started)).
		Msg("catalog reconciled into local store")
	return nil
}
