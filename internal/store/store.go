// Package store is the record store: the single shared mutable resource.
// Every mutation passes through Upsert/UpsertBatch/Delete, journals to the
// activity log, and notifies live-view subscribers. Reads only ever touch
// locally durable state.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"stocksync/internal/domain"
	"stocksync/internal/metrics"
	"stocksync/internal/repos"
)

type Store struct {
	items   *repos.ItemRepo
	journal *repos.ActivityRepo
	log     zerolog.Logger

	mu       sync.Mutex // serializes mutations; reads go straight to sqlite
	notifier *notifier
}

func New(items *repos.ItemRepo, journal *repos.ActivityRepo, log zerolog.Logger) *Store {
	return &Store{
		items:    items,
		journal:  journal,
		log:      log,
		notifier: newNotifier(),
	}
}

// Upsert validates and inserts-or-replaces one record, stamping LastUpdated.
// The stored record is returned.
func (s *Store) Upsert(ctx context.Context, it domain.Item) (domain.Item, error) {
	if err := it.Validate(); err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.items.Exists(ctx, it.ID)
	if err != nil {
		return domain.Item{}, err
	}

	it.LastUpdated = time.Now()
	if err := s.items.Upsert(ctx, it); err != nil {
		return domain.Item{}, err
	}

	action, details := domain.ActionCreate, fmt.Sprintf("Added new item: %s", it.Name)
	if existed {
		action, details = domain.ActionUpdate, fmt.Sprintf("Updated item: %s", it.Name)
	}
	s.recordActivity(ctx, it.ID, action, details)
	metrics.ItemOperations.WithLabelValues(action).Inc()

	s.afterMutation(ctx)
	return it, nil
}

// UpsertBatch applies replace semantics to a whole catalog snapshot in one
// transaction and fires a single notification. Bulk reconciliation is not a
// consumer mutation, so it does not journal per item.
func (s *Store) UpsertBatch(ctx context.Context, items []domain.Item) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stamped := make([]domain.Item, len(items))
	for i, it := range items {
		it.LastUpdated = now
		stamped[i] = it
	}
	if err := s.items.UpsertBatch(ctx, stamped); err != nil {
		return err
	}

	s.afterMutation(ctx)
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Item, error) {
	return s.items.Get(ctx, id)
}

// Delete removes by id and journals the deletion; domain.ErrNotFound when the
// record is absent.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.items.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	s.recordActivity(ctx, id, domain.ActionDelete, fmt.Sprintf("Deleted item: %s", it.Name))
	metrics.ItemOperations.WithLabelValues(domain.ActionDelete).Inc()

	s.afterMutation(ctx)
	return nil
}

// ListAll returns all records ordered by last update, newest first.
func (s *Store) ListAll(ctx context.Context) ([]domain.Item, error) {
	return s.items.ListAll(ctx)
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.items.Count(ctx)
}

func (s *Store) OutOfStockCount(ctx context.Context) (int, error) {
	return s.items.OutOfStockCount(ctx)
}

func (s *Store) CategoryQuantities(ctx context.Context) ([]domain.CategoryQuantity, error) {
	return s.items.CategoryQuantities(ctx)
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	return s.items.Categories(ctx)
}

func (s *Store) LowStock(ctx context.Context) ([]domain.LowStockItem, error) {
	return s.items.LowStock(ctx, domain.LowStockThreshold)
}

// RecentActivity returns the newest limit journal entries.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	return s.journal.Recent(ctx, limit)
}

// Subscribe registers a live-view subscriber. The subscription channel emits
// a revision after every committed mutation; close it via Subscription.Close.
func (s *Store) Subscribe() *Subscription {
	return s.notifier.subscribe()
}

// recordActivity appends a journal row. A journal failure never rolls back or
// fails the triggering mutation; it is logged and dropped.
func (s *Store) recordActivity(ctx context.Context, itemID int64, action, details string) {
	if err := s.journal.Append(ctx, itemID, action, details, time.Now()); err != nil {
		s.log.Error().Err(err).
			Int64("item_id", itemID).
			Str("action", action).
			Msg("activity journal append failed")
	}
}

func (s *Store) afterMutation(ctx context.Context) {
	if n, err := s.items.Count(ctx); err == nil {
		metrics.ItemsGauge.Set(float64(n))
	}
	s.notifier.publish()
}
