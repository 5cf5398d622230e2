package repos

import (
	"context"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userCols = `id, name, email, password, is_admin, created_at`

type UserRepo struct {
	byEmail, byID, insert, upsertAdmin *sqlx.Stmt
}

func NewUserRepo(db *sqlx.DB) (*UserRepo, error) {
	p := &preparer{db: db}
	r := &UserRepo{
		byEmail: p.stmt(`SELECT ` + userCols + ` FROM users WHERE email = ?`),
		byID:    p.stmt(`SELECT ` + userCols + ` FROM users WHERE id = ?`),
		insert:  p.stmt(`INSERT INTO users(name, email, password) VALUES(?, ?, ?)`),
		upsertAdmin: p.stmt(`
			INSERT INTO users(name, email, password, is_admin) VALUES(?, ?, ?, 1)
			ON CONFLICT(email) DO UPDATE SET is_admin = 1`),
	}
	return r, p.err
}

// ByEmail matches case-insensitively (the column is COLLATE NOCASE).
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.byEmail.GetContext(ctx, &u, email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.byID.GetContext(ctx, &u, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a regular user and returns the generated id.
func (r *UserRepo) Create(ctx context.Context, name, email, hash string) (int64, error) {
	res, err := r.insert.ExecContext(ctx, name, email, hash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// EnsureAdmin creates the admin account, or promotes an existing one. The
// password of an existing account is left untouched.
func (r *UserRepo) EnsureAdmin(ctx context.Context, name, email, hash string) error {
	_, err := r.upsertAdmin.ExecContext(ctx, name, email, hash)
	return err
}
