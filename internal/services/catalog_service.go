package services

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

const defaultCategory = "General"

var errProductNotFound = notFound("Product not found")

// ProductInput is the body of product create and update.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	InStock     int     `json:"inStock" validate:"gte=0"`
	Brand       string  `json:"brand"`
	Features    string  `json:"features"`
}

func (in ProductInput) product(id int64) domain.Product {
	p := domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Category:    strings.TrimSpace(in.Category),
		InStock:     in.InStock,
		Brand:       in.Brand,
		Features:    in.Features,
	}
	if p.Category == "" {
		p.Category = defaultCategory
	}
	return p
}

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.All(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Prods.ByID(ctx, id)
	if err = storeErr(err, ""); errors.Is(err, ErrNotFound) {
		return domain.Product{}, errProductNotFound
	}
	return p, err
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, err
	}
	id, err := s.Prods.Create(ctx, in.product(0))
	if err != nil {
		return domain.Product{}, err
	}
	return s.Get(ctx, id)
}

func (s *CatalogService) Update(ctx context.Context, id int64, in ProductInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, err
	}
	n, err := s.Prods.Update(ctx, in.product(id))
	if err != nil {
		return domain.Product{}, err
	}
	if n == 0 {
		return domain.Product{}, errProductNotFound
	}
	return s.Get(ctx, id)
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	n, err := s.Prods.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errProductNotFound
	}
	return nil
}

// SeedDemo fills an empty catalog with a few products.
func (s *CatalogService) SeedDemo(ctx context.Context) (int, error) {
	n, err := s.Prods.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	demo := []ProductInput{
		{Name: "Wireless Headphones", Description: "Over-ear, noise cancelling", Price: 129.99, Category: "Electronics", InStock: 25, Brand: "Acme", Features: "Bluetooth 5.3, 30h battery"},
		{Name: "Running Shoes", Description: "Lightweight trainers", Price: 89.5, Category: "Sports", InStock: 40, Brand: "Stride"},
		{Name: "Ceramic Mug", Description: "350ml, dishwasher safe", Price: 12, InStock: 120},
	}
	for _, in := range demo {
		if _, err := s.Prods.Create(ctx, in.product(0)); err != nil {
			return 0, err
		}
	}
	return len(demo), nil
}
