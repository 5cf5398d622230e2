package handlers

import (
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
	LikeHandler    *LikeHandler
	SaveHandler    *SaveHandler
	ReviewHandler  *ReviewHandler
	UploadHandler  *UploadHandler
	HealthHandler  *HealthHandler

	Auth    *services.AuthService
	Catalog *services.CatalogService
}

// NewDeps prepares every statement against db and wires services and handlers.
func NewDeps(db *sqlx.DB, store storage.Store) (*Deps, error) {
	userRepo, err := repos.NewUserRepo(db)
	if err != nil {
		return nil, err
	}
	prodRepo, err := repos.NewProductRepo(db)
	if err != nil {
		return nil, err
	}
	orderRepo, err := repos.NewOrderRepo(db)
	if err != nil {
		return nil, err
	}
	likeRepo, err := repos.NewLikeRepo(db)
	if err != nil {
		return nil, err
	}
	saveRepo, err := repos.NewSaveRepo(db)
	if err != nil {
		return nil, err
	}
	reviewRepo, err := repos.NewReviewRepo(db)
	if err != nil {
		return nil, err
	}

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(orderRepo)
	socialSvc := services.NewSocialService(likeRepo, saveRepo)
	reviewSvc := services.NewReviewService(reviewRepo)
	uploadSvc := services.NewUploadService(store)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		AdminHandler:   &AdminHandler{Orders: orderSvc},
		LikeHandler:    &LikeHandler{Social: socialSvc},
		SaveHandler:    &SaveHandler{Social: socialSvc},
		ReviewHandler:  &ReviewHandler{Reviews: reviewSvc},
		UploadHandler:  &UploadHandler{Uploads: uploadSvc},
		HealthHandler:  &HealthHandler{DB: db},

		Auth:    authSvc,
		Catalog: catalogSvc,
	}, nil
}
