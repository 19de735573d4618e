package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal action kinds.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// LowStockThreshold is the exclusive upper bound: a non-zero quantity below
// it counts as low stock, 5 and above is in stock.
const LowStockThreshold = 5

// TopValueCategories caps the value-distribution aggregate.
const TopValueCategories = 7

// Item is one inventory record. ID is the stable source-of-truth key shared
// with the remote catalog.
type Item struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl"`
	SupplierName    string          `json:"supplierName,omitempty"`
	SupplierContact string          `json:"supplierContact,omitempty"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// ActivityEntry is one immutable journal row, appended per mutation.
type ActivityEntry struct {
	Seq     int64     `json:"seq"`
	ItemID  int64     `json:"itemId"`
	Action  string    `json:"action"` // CREATE | UPDATE | DELETE
	TS      time.Time `json:"ts"`
	Details string    `json:"details"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}

type CategoryQuantity struct {
	Category      string `db:"category" json:"category"`
	TotalQuantity int    `db:"total_quantity" json:"totalQuantity"`
}

type CategoryValue struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

type LowStockItem struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// DashboardView is the headline aggregate set; recomputed from current store
// contents, never persisted.
type DashboardView struct {
	TotalItems      int                `json:"totalItems"`
	OutOfStockItems int                `json:"outOfStockItems"`
	LowStockItems   int                `json:"lowStockItems"`
	RecentActivity  []string           `json:"recentActivity"`
	CategoryStock   []CategoryQuantity `json:"categoryStock"`
}

// ReportView is the valuation-oriented aggregate set.
type ReportView struct {
	CategoryData      []CategoryQuantity `json:"categoryData"`
	LowStockItems     []LowStockItem     `json:"lowStockItems"`
	ValueDistribution []CategoryValue    `json:"valueDistribution"`
	TotalValue        decimal.Decimal    `json:"totalValue"`
}

// Validate rejects records before they reach storage. Price and quantity are
// never negative; the identifier must be positive.
func (i Item) Validate() error {
	if i.ID <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive identifier"}
	}
	if i.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if i.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	return nil
}
