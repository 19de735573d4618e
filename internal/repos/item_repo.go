package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"stocksync/internal/domain"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

// itemRow is the storage shape; timestamps are unix millis.
type itemRow struct {
	ID              int64           `db:"id"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	Price           decimal.Decimal `db:"price"`
	Quantity        int             `db:"quantity"`
	Category        string          `db:"category"`
	ImageURL        string          `db:"image_url"`
	SupplierName    string          `db:"supplier_name"`
	SupplierContact string          `db:"supplier_contact"`
	LastUpdated     int64           `db:"last_updated"`
}

func toItem(r itemRow) domain.Item {
	return domain.Item{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Quantity:        r.Quantity,
		Category:        r.Category,
		ImageURL:        r.ImageURL,
		SupplierName:    r.SupplierName,
		SupplierContact: r.SupplierContact,
		LastUpdated:     time.UnixMilli(r.LastUpdated),
	}
}

const upsertItemSQL = `
	INSERT INTO items(id, name, description, price, quantity, category,
	                  image_url, supplier_name, supplier_contact, last_updated)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	  name = excluded.name,
	  description = excluded.description,
	  price = excluded.price,
	  quantity = excluded.quantity,
	  category = excluded.category,
	  image_url = excluded.image_url,
	  supplier_name = excluded.supplier_name,
	  supplier_contact = excluded.supplier_contact,
	  last_updated = excluded.last_updated
`

func upsertArgs(it domain.Item) []any {
	return []any{
		it.ID, it.Name, it.Description, it.Price, it.Quantity, it.Category,
		it.ImageURL, it.SupplierName, it.SupplierContact, it.LastUpdated.UnixMilli(),
	}
}

// Upsert inserts or fully replaces the record with matching id.
func (r *ItemRepo) Upsert(ctx context.Context, it domain.Item) error {
	_, err := r.db.ExecContext(ctx, upsertItemSQL, upsertArgs(it)...)
	return err
}

// UpsertBatch applies the same replace semantics to all items in one
// transaction, so readers never observe a partial batch.
func (r *ItemRepo) UpsertBatch(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		if _, err := tx.ExecContext(ctx, upsertItemSQL, upsertArgs(it)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ItemRepo) Get(ctx context.Context, id int64) (domain.Item, error) {
	var row itemRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Item{}, err
	}
	return toItem(row), nil
}

func (r *ItemRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM items WHERE id = ?`, id)
	return n > 0, err
}

// Delete removes by id; reports domain.ErrNotFound when nothing matched.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll returns every record, most recently updated first. Ties (a synced
// batch shares one fetch timestamp) fall back to id descending so the order
// is stable.
func (r *ItemRepo) ListAll(ctx context.Context) ([]domain.Item, error) {
	var rows []itemRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM items
		ORDER BY last_updated DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, toItem(row))
	}
	return out, nil
}

func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM items`)
	return n, err
}

func (r *ItemRepo) OutOfStockCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM items WHERE quantity <= 0`)
	return n, err
}

// CategoryQuantities groups by the exact category string; an empty category
// is its own group.
func (r *ItemRepo) CategoryQuantities(ctx context.Context) ([]domain.CategoryQuantity, error) {
	var out []domain.CategoryQuantity
	err := r.db.SelectContext(ctx, &out, `
		SELECT category, SUM(quantity) AS total_quantity
		FROM items
		GROUP BY category
		ORDER BY category
	`)
	return out, err
}

func (r *ItemRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.SelectContext(ctx, &out, `SELECT DISTINCT category FROM items ORDER BY category`)
	return out, err
}

// LowStock lists records with 0 < quantity < threshold, ascending by quantity.
func (r *ItemRepo) LowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	var out []domain.LowStockItem
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, name, quantity FROM items
		WHERE quantity > 0 AND quantity < ?
		ORDER BY quantity ASC, id ASC
	`, threshold)
	return out, err
}
