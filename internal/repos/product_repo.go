package repos

import (
	"context"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

const productCols = `id, name, description, price, image, category, in_stock, brand, features, created_at, updated_at`

type ProductRepo struct {
	all, byID, insert, update, del, count *sqlx.Stmt
}

func NewProductRepo(db *sqlx.DB) (*ProductRepo, error) {
	p := &preparer{db: db}
	r := &ProductRepo{
		all:  p.stmt(`SELECT ` + productCols + ` FROM products ORDER BY id DESC`),
		byID: p.stmt(`SELECT ` + productCols + ` FROM products WHERE id = ?`),
		insert: p.stmt(`
			INSERT INTO products(name, description, price, image, category, in_stock, brand, features)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?)`),
		update: p.stmt(`
			UPDATE products
			SET name = ?, description = ?, price = ?, image = ?, category = ?, in_stock = ?,
			    brand = ?, features = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`),
		del:   p.stmt(`DELETE FROM products WHERE id = ?`),
		count: p.stmt(`SELECT COUNT(*) FROM products`),
	}
	return r, p.err
}

func (r *ProductRepo) All(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.all.SelectContext(ctx, &out)
	return out, err
}

func (r *ProductRepo) ByID(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.byID.GetContext(ctx, &p, id)
	return p, err
}

// Create ignores p.ID and returns the generated one.
func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (int64, error) {
	res, err := r.insert.ExecContext(ctx,
		p.Name, p.Description, p.Price, p.Image, p.Category, p.InStock, p.Brand, p.Features)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update returns the number of rows touched; 0 means no such product.
func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (int64, error) {
	res, err := r.update.ExecContext(ctx,
		p.Name, p.Description, p.Price, p.Image, p.Category, p.InStock, p.Brand, p.Features, p.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.del.ExecContext(ctx, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.count.GetContext(ctx, &n)
	return n, err
}
