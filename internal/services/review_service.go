package services

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

var errAlreadyReviewed = conflict("You have already reviewed this product")

type ReviewInput struct {
	UserID    int64  `json:"userId" validate:"required,gt=0"`
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReviewList struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
	TotalReviews  int             `json:"totalReviews"`
}

type ReviewService struct {
	Reviews *repos.ReviewRepo
}

func NewReviewService(reviews *repos.ReviewRepo) *ReviewService {
	return &ReviewService{Reviews: reviews}
}

func (s *ReviewService) List(ctx context.Context, productID int64) (ReviewList, error) {
	reviews, err := s.Reviews.ByProduct(ctx, productID)
	if err != nil {
		return ReviewList{}, err
	}
	st, err := s.Reviews.Stats(ctx, productID)
	if err != nil {
		return ReviewList{}, err
	}
	return ReviewList{Reviews: reviews, AverageRating: st.AverageRating, TotalReviews: st.TotalReviews}, nil
}

// Create relies on the (user_id, product_id) unique index for the
// one-review-per-user rule.
func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (domain.Review, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Review{}, err
	}
	id, err := s.Reviews.Create(ctx, domain.Review{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	})
	if err = storeErr(err, unknownUserOrProduct); err != nil {
		if errors.Is(err, ErrConflict) {
			return domain.Review{}, errAlreadyReviewed
		}
		return domain.Review{}, err
	}
	return s.Reviews.ByID(ctx, id)
}
