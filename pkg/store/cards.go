package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

// Cards persist interval as whole seconds and due as a unix timestamp;
// NULL maps to the zero value on both.

func cardFromRow(unitID string, reviewCount int64, ease float64,
	interval, due sql.NullInt64, addedOrder int64) srs.Card {
	c := srs.Card{
		UnitID:      unitID,
		ReviewCount: int(reviewCount),
		Ease:        ease,
		AddedOrder:  addedOrder,
	}
	if interval.Valid {
		c.Interval = time.Duration(interval.Int64) * time.Second
	}
	if due.Valid {
		c.Due = time.Unix(due.Int64, 0)
	}
	return c
}

func intervalValue(c srs.Card) interface{} {
	if c.Interval == 0 {
		return nil
	}
	return int64(c.Interval / time.Second)
}

func dueValue(c srs.Card) interface{} {
	if c.Due.IsZero() {
		return nil
	}
	return c.Due.Unix()
}

// updateCardsTx applies the update statement to every card inside one
// transaction. Any missing row aborts the batch, so a sentence review is
// all-or-nothing.
func updateCardsTx(db *sql.DB, query string, cards []srs.Card) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range cards {
		res, err := tx.Exec(query, c.ReviewCount, c.Ease, intervalValue(c), dueValue(c), c.UnitID)
		if err != nil {
			return fmt.Errorf("update card %s: %w", c.UnitID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: unit %s", srs.ErrCardMissing, c.UnitID)
		}
	}

	return tx.Commit()
}
