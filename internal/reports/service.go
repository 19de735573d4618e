// Package reports derives the live aggregates. It holds no state of its own:
// every view is recomputed from the record store's current contents.
package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"stocksync/internal/domain"
	"stocksync/internal/store"
)

// RecentActivityLimit is how many journal entries the dashboard shows.
const RecentActivityLimit = 5

type Service struct {
	store *store.Store
}

func New(st *store.Store) *Service { return &Service{store: st} }

// Availability classifies a quantity: <= 0 out of stock, below the low-stock
// threshold low, otherwise in stock.
func Availability(qty int) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty >= domain.LowStockThreshold:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}
}

// Dashboard assembles the headline counters and the recent-activity feed.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardView, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return domain.DashboardView{}, err
	}
	outOfStock, err := s.store.OutOfStockCount(ctx)
	if err != nil {
		return domain.DashboardView{}, err
	}
	lowStock, err := s.store.LowStock(ctx)
	if err != nil {
		return domain.DashboardView{}, err
	}
	entries, err := s.store.RecentActivity(ctx, RecentActivityLimit)
	if err != nil {
		return domain.DashboardView{}, err
	}
	categories, err := s.store.CategoryQuantities(ctx)
	if err != nil {
		return domain.DashboardView{}, err
	}

	recent := make([]string, 0, len(entries))
	for _, e := range entries {
		recent = append(recent, e.Details)
	}

	return domain.DashboardView{
		TotalItems:      total,
		OutOfStockItems: outOfStock,
		LowStockItems:   len(lowStock),
		RecentActivity:  recent,
		CategoryStock:   categories,
	}, nil
}

// Report assembles the valuation view: per-category quantities, the low-stock
// list, total inventory value and the top category value distribution.
func (s *Service) Report(ctx context.Context) (domain.ReportView, error) {
	categories, err := s.store.CategoryQuantities(ctx)
	if err != nil {
		return domain.ReportView{}, err
	}
	lowStock, err := s.store.LowStock(ctx)
	if err != nil {
		return domain.ReportView{}, err
	}
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return domain.ReportView{}, err
	}

	return domain.ReportView{
		CategoryData:      categories,
		LowStockItems:     lowStock,
		ValueDistribution: valueDistribution(items),
		TotalValue:        totalValue(items),
	}, nil
}

func (s *Service) CategoryQuantities(ctx context.Context) ([]domain.CategoryQuantity, error) {
	return s.store.CategoryQuantities(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

func (s *Service) LowStock(ctx context.Context) ([]domain.LowStockItem, error) {
	return s.store.LowStock(ctx)
}

func (s *Service) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return totalValue(items), nil
}

func (s *Service) ValueDistribution(ctx context.Context) ([]domain.CategoryValue, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return valueDistribution(items), nil
}

// Watch emits a freshly computed dashboard per store revision until ctx ends.
// The first value is computed immediately.
func (s *Service) Watch(ctx context.Context) <-chan domain.DashboardView {
	out := make(chan domain.DashboardView, 1)
	sub := s.store.Subscribe()

	go func() {
		defer close(out)
		defer sub.Close()

		emit := func() {
			view, err := s.Dashboard(ctx)
			if err != nil {
				return
			}
			select {
			case out <- view:
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out
}

// totalValue sums price * quantity over the given records.
func totalValue(items []domain.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// valueDistribution groups value by category, keeps the top entries by value
// and drops the rest. Equal values keep first-seen order.
func valueDistribution(items []domain.Item) []domain.CategoryValue {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, it := range items {
		v := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		if cur, ok := totals[it.Category]; ok {
			totals[it.Category] = cur.Add(v)
		} else {
			totals[it.Category] = v
			order = append(order, it.Category)
		}
	}

	out := make([]domain.CategoryValue, 0, len(order))
	for _, cat := range order {
		out = append(out, domain.CategoryValue{Category: cat, Value: totals[cat]})
	}
	// Stable sort keeps first-seen order for equal values.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})

	if len(out) > domain.TopValueCategories {
		out = out[:domain.TopValueCategories]
	}
	return out
}
