package domain

// User is a users row. Hash never leaves the process.
type User struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Hash      string `db:"password" json:"-"`
	IsAdmin   bool   `db:"is_admin" json:"isAdmin"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Product struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	Image       string  `db:"image" json:"image"`
	Category    string  `db:"category" json:"category"`
	InStock     int     `db:"in_stock" json:"inStock"`
	Brand       string  `db:"brand" json:"brand"`
	Features    string  `db:"features" json:"features"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt"`
}

// Order status values accepted by the store.
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

type Order struct {
	ID              int64       `db:"id" json:"id"`
	UserID          int64       `db:"user_id" json:"userId"`
	Total           float64     `db:"total" json:"total"`
	ShippingAddress string      `db:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string      `db:"payment_method" json:"paymentMethod"`
	Status          string      `db:"status" json:"status"`
	CreatedAt       string      `db:"created_at" json:"createdAt"`
	Items           []OrderItem `db:"-" json:"items"`
}

// OrderItem keeps the unit price seen at purchase time.
type OrderItem struct {
	ID           int64   `db:"id" json:"id"`
	OrderID      int64   `db:"order_id" json:"orderId"`
	ProductID    int64   `db:"product_id" json:"productId"`
	Quantity     int     `db:"quantity" json:"quantity"`
	Price        float64 `db:"price" json:"price"`
	ProductName  string  `db:"product_name" json:"productName"`
	ProductImage string  `db:"product_image" json:"productImage"`
}

type Review struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"userId"`
	ProductID int64  `db:"product_id" json:"productId"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UserName  string `db:"user_name" json:"userName"`
}

type ReviewStats struct {
	AverageRating float64 `db:"avg_rating" json:"averageRating"`
	TotalReviews  int     `db:"total_reviews" json:"totalReviews"`
}

type LikeStatus struct {
	LikesCount int  `json:"likesCount"`
	HasLiked   bool `json:"hasLiked"`
}

type SaveStatus struct {
	HasSaved bool `json:"hasSaved"`
}
