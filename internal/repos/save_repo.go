package repos

import (
	"context"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SaveRepo struct {
	relation

	byUser *sqlx.Stmt
}

func NewSaveRepo(db *sqlx.DB) (*SaveRepo, error) {
	p := &preparer{db: db}
	r := &SaveRepo{
		relation: newRelation(p, "saves"),
		byUser: p.stmt(`
			SELECT p.id, p.name, p.description, p.price, p.image, p.category, p.in_stock,
			       p.brand, p.features, p.created_at, p.updated_at
			FROM saves s
			JOIN products p ON p.id = s.product_id
			WHERE s.user_id = ?
			ORDER BY s.id DESC`),
	}
	return r, p.err
}

// ProductsByUser lists the user's saved products, most recently saved first.
func (r *SaveRepo) ProductsByUser(ctx context.Context, userID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.byUser.SelectContext(ctx, &out, userID)
	return out, err
}

func (r *SaveRepo) Apply(ctx context.Context, userID, productID int64, save bool) (domain.SaveStatus, error) {
	has, _, err := r.apply(ctx, userID, productID, save)
	if err != nil {
		return domain.SaveStatus{}, err
	}
	return domain.SaveStatus{HasSaved: has}, nil
}
