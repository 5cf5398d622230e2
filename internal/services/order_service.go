package services

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

const defaultPaymentMethod = "card"

var errOrderNotFound = notFound("Order not found")

type OrderProductRef struct {
	ID    int64   `json:"id" validate:"required,gt=0"`
	Price float64 `json:"price" validate:"gte=0"`
}

type OrderItemInput struct {
	Product  OrderProductRef `json:"product"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	UserID          int64            `json:"userId" validate:"required,gt=0"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Total           float64          `json:"total" validate:"required,gt=0"`
	ShippingAddress string           `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
}

type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending shipped delivered"`
}

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.Orders.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, orders)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.Orders.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, orders)
}

// withItems loads items with one query per order.
func (s *OrderService) withItems(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	for i := range orders {
		items, err := s.Orders.Items(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (domain.Order, error) {
	o, err := s.Orders.ByID(ctx, id)
	if err = storeErr(err, ""); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Order{}, errOrderNotFound
		}
		return domain.Order{}, err
	}
	if o.Items, err = s.Orders.Items(ctx, id); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// Create stores the order and its items in one transaction. Item prices are
// the client's snapshot of the product price.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		UserID:          in.UserID,
		Total:           in.Total,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
		Status:          domain.StatusPending,
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = defaultPaymentMethod
	}
	for _, it := range in.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}
	id, err := s.Orders.Create(ctx, o)
	if err != nil {
		return domain.Order{}, storeErr(err, "unknown user")
	}
	return s.Get(ctx, id)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, in StatusInput) (domain.Order, error) {
	in.Status = strings.TrimSpace(in.Status)
	if err := validate.Struct(in); err != nil {
		return domain.Order{}, err
	}
	n, err := s.Orders.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return domain.Order{}, err
	}
	if n == 0 {
		return domain.Order{}, errOrderNotFound
	}
	return s.Get(ctx, id)
}
