package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// relation is the (user_id, product_id) link shared by likes and saves.
// table is a fixed identifier chosen by the caller, never user input.
type relation struct {
	db *sqlx.DB

	add, remove, has, count *sqlx.Stmt
}

func newRelation(p *preparer, table string) relation {
	return relation{
		db: p.db,
		add: p.stmt(`INSERT INTO ` + table + `(user_id, product_id) VALUES(?, ?)
			ON CONFLICT(user_id, product_id) DO NOTHING`),
		remove: p.stmt(`DELETE FROM ` + table + ` WHERE user_id = ? AND product_id = ?`),
		has:    p.stmt(`SELECT 1 FROM ` + table + ` WHERE user_id = ? AND product_id = ?`),
		count:  p.stmt(`SELECT COUNT(*) FROM ` + table + ` WHERE product_id = ?`),
	}
}

// Add is idempotent.
func (r relation) Add(ctx context.Context, userID, productID int64) error {
	_, err := r.add.ExecContext(ctx, userID, productID)
	return err
}

func (r relation) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.remove.ExecContext(ctx, userID, productID)
	return err
}

func (r relation) Has(ctx context.Context, userID, productID int64) (bool, error) {
	return hasRow(ctx, r.has, userID, productID)
}

func (r relation) Count(ctx context.Context, productID int64) (int, error) {
	var n int
	err := r.count.GetContext(ctx, &n, productID)
	return n, err
}

// bound returns a copy of r whose statements run on tx.
func (r relation) bound(ctx context.Context, tx *sqlx.Tx) relation {
	return relation{
		db:     r.db,
		add:    tx.StmtxContext(ctx, r.add),
		remove: tx.StmtxContext(ctx, r.remove),
		has:    tx.StmtxContext(ctx, r.has),
		count:  tx.StmtxContext(ctx, r.count),
	}
}

// apply sets or clears the link and reads back the resulting state in the
// same transaction.
func (r relation) apply(ctx context.Context, userID, productID int64, on bool) (has bool, count int, err error) {
	err = inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		t := r.bound(ctx, tx)
		var err error
		if on {
			err = t.Add(ctx, userID, productID)
		} else {
			err = t.Remove(ctx, userID, productID)
		}
		if err != nil {
			return err
		}
		if has, err = t.Has(ctx, userID, productID); err != nil {
			return err
		}
		count, err = t.Count(ctx, productID)
		return err
	})
	return has, count, err
}

func hasRow(ctx context.Context, stmt *sqlx.Stmt, args ...any) (bool, error) {
	var one int
	err := stmt.GetContext(ctx, &one, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
