package repos

import (
	"context"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LikeRepo struct{ relation }

func NewLikeRepo(db *sqlx.DB) (*LikeRepo, error) {
	p := &preparer{db: db}
	r := &LikeRepo{relation: newRelation(p, "likes")}
	return r, p.err
}

// Apply likes (like=true) or unlikes the product and returns the fresh state.
func (r *LikeRepo) Apply(ctx context.Context, userID, productID int64, like bool) (domain.LikeStatus, error) {
	has, n, err := r.apply(ctx, userID, productID, like)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	return domain.LikeStatus{LikesCount: n, HasLiked: has}, nil
}
