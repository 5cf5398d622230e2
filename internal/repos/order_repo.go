package repos

import (
	"context"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

const orderCols = `id, user_id, total, shipping_address, payment_method, status, created_at`

type OrderRepo struct {
	db *sqlx.DB

	byUser, all, byID, items, insert, insertItem, updateStatus *sqlx.Stmt
}

func NewOrderRepo(db *sqlx.DB) (*OrderRepo, error) {
	p := &preparer{db: db}
	r := &OrderRepo{
		db:     db,
		byUser: p.stmt(`SELECT ` + orderCols + ` FROM orders WHERE user_id = ? ORDER BY id DESC`),
		all:    p.stmt(`SELECT ` + orderCols + ` FROM orders ORDER BY id DESC`),
		byID:   p.stmt(`SELECT ` + orderCols + ` FROM orders WHERE id = ?`),
		items: p.stmt(`
			SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			       COALESCE(p.name, '') AS product_name, COALESCE(p.image, '') AS product_image
			FROM order_items oi
			LEFT JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = ?
			ORDER BY oi.id`),
		insert: p.stmt(`
			INSERT INTO orders(user_id, total, shipping_address, payment_method, status)
			VALUES(?, ?, ?, ?, ?)`),
		insertItem:   p.stmt(`INSERT INTO order_items(order_id, product_id, quantity, price) VALUES(?, ?, ?, ?)`),
		updateStatus: p.stmt(`UPDATE orders SET status = ? WHERE id = ?`),
	}
	return r, p.err
}

func (r *OrderRepo) ByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.byUser.SelectContext(ctx, &out, userID)
	return out, err
}

func (r *OrderRepo) All(ctx context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.all.SelectContext(ctx, &out)
	return out, err
}

func (r *OrderRepo) ByID(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.byID.GetContext(ctx, &o, id)
	return o, err
}

func (r *OrderRepo) Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := r.items.SelectContext(ctx, &out, orderID)
	return out, err
}

// Create writes the order header and all of its items atomically and returns
// the new order id. Item IDs and OrderIDs in o.Items are ignored.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (int64, error) {
	var orderID int64
	err := inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.StmtxContext(ctx, r.insert).ExecContext(ctx,
			o.UserID, o.Total, o.ShippingAddress, o.PaymentMethod, o.Status)
		if err != nil {
			return err
		}
		if orderID, err = res.LastInsertId(); err != nil {
			return err
		}
		ins := tx.StmtxContext(ctx, r.insertItem)
		for _, it := range o.Items {
			if _, err := ins.ExecContext(ctx, orderID, it.ProductID, it.Quantity, it.Price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// UpdateStatus returns rows affected; 0 means no such order.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := r.updateStatus.ExecContext(ctx, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
