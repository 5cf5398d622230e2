package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

const unknownUserOrProduct = "unknown user or product"

type LikeInput struct {
	UserID    int64  `json:"userId" validate:"required,gt=0"`
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Action    string `json:"action" validate:"required,oneof=like unlike"`
}

type SaveInput struct {
	UserID    int64  `json:"userId" validate:"required,gt=0"`
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Action    string `json:"action" validate:"required,oneof=save unsave"`
}

// SocialService covers likes and saves.
type SocialService struct {
	Likes *repos.LikeRepo
	Saves *repos.SaveRepo
}

func NewSocialService(likes *repos.LikeRepo, saves *repos.SaveRepo) *SocialService {
	return &SocialService{Likes: likes, Saves: saves}
}

// LikeStatus reports the like count; userID 0 means anonymous (hasLiked false).
func (s *SocialService) LikeStatus(ctx context.Context, productID, userID int64) (domain.LikeStatus, error) {
	n, err := s.Likes.Count(ctx, productID)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	st := domain.LikeStatus{LikesCount: n}
	if userID > 0 {
		if st.HasLiked, err = s.Likes.Has(ctx, userID, productID); err != nil {
			return domain.LikeStatus{}, err
		}
	}
	return st, nil
}

func (s *SocialService) Like(ctx context.Context, in LikeInput) (domain.LikeStatus, error) {
	if err := validate.Struct(in); err != nil {
		return domain.LikeStatus{}, err
	}
	st, err := s.Likes.Apply(ctx, in.UserID, in.ProductID, in.Action == "like")
	return st, storeErr(err, unknownUserOrProduct)
}

func (s *SocialService) SavedProducts(ctx context.Context, userID int64) ([]domain.Product, error) {
	return s.Saves.ProductsByUser(ctx, userID)
}

func (s *SocialService) Save(ctx context.Context, in SaveInput) (domain.SaveStatus, error) {
	if err := validate.Struct(in); err != nil {
		return domain.SaveStatus{}, err
	}
	st, err := s.Saves.Apply(ctx, in.UserID, in.ProductID, in.Action == "save")
	return st, storeErr(err, unknownUserOrProduct)
}
