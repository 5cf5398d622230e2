package repos

import (
	"context"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

const reviewSelect = `
	SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.created_at,
	       COALESCE(u.name, '') AS user_name
	FROM reviews r
	LEFT JOIN users u ON u.id = r.user_id`

type ReviewRepo struct {
	byProduct, byID, stats, insert *sqlx.Stmt
}

func NewReviewRepo(db *sqlx.DB) (*ReviewRepo, error) {
	p := &preparer{db: db}
	r := &ReviewRepo{
		byProduct: p.stmt(reviewSelect + ` WHERE r.product_id = ? ORDER BY r.id DESC`),
		byID:      p.stmt(reviewSelect + ` WHERE r.id = ?`),
		stats: p.stmt(`
			SELECT COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS total_reviews
			FROM reviews WHERE product_id = ?`),
		insert: p.stmt(`INSERT INTO reviews(user_id, product_id, rating, comment) VALUES(?, ?, ?, ?)`),
	}
	return r, p.err
}

func (r *ReviewRepo) ByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.byProduct.SelectContext(ctx, &out, productID)
	return out, err
}

func (r *ReviewRepo) ByID(ctx context.Context, id int64) (domain.Review, error) {
	var rv domain.Review
	err := r.byID.GetContext(ctx, &rv, id)
	return rv, err
}

func (r *ReviewRepo) Stats(ctx context.Context, productID int64) (domain.ReviewStats, error) {
	var s domain.ReviewStats
	err := r.stats.GetContext(ctx, &s, productID)
	return s, err
}

// Create fails with a unique violation when the user already reviewed the product.
func (r *ReviewRepo) Create(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.insert.ExecContext(ctx, rv.UserID, rv.ProductID, rv.Rating, rv.Comment)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
