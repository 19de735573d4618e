package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"stocksync/internal/domain"
)

type ActivityRepo struct{ db *sqlx.DB }

func NewActivityRepo(db *sqlx.DB) *ActivityRepo { return &ActivityRepo{db: db} }

type activityRow struct {
	ID      int64  `db:"id"`
	ItemID  int64  `db:"item_id"`
	Action  string `db:"action"`
	TS      int64  `db:"ts"`
	Details string `db:"details"`
}

// Append writes one journal row; the sequence id is assigned by sqlite.
func (r *ActivityRepo) Append(ctx context.Context, itemID int64, action, details string, ts time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log(item_id, action, ts, details)
		VALUES (?, ?, ?, ?)
	`, itemID, action, ts.UnixMilli(), details)
	return err
}

// Recent returns the last limit entries, newest first. Equal timestamps fall
// back to sequence id so insertion order decides.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	var rows []activityRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM activity_log
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ActivityEntry{
			Seq:     row.ID,
			ItemID:  row.ItemID,
			Action:  row.Action,
			TS:      time.UnixMilli(row.TS),
			Details: row.Details,
		})
	}
	return out, nil
}
