package order

import (
	"time"

	"github.com/snackschicken/delivery-api/internal/product"
)

// Payment methods accepted at checkout.
const (
	PaymentPix   = "pix"
	PaymentMoney = "money"
	PaymentCard  = "card"
)

// Order lifecycle as driven from the admin panel. Status is the only field
// that changes after checkout.
const (
	StatusPending    = "pending"
	StatusPreparing  = "preparing"
	StatusDelivering = "delivering"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var statuses = map[string]bool{
	StatusPending:    true,
	StatusPreparing:  true,
	StatusDelivering: true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool { return statuses[s] }

type Order struct {
	ID              string `json:"id"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	PaymentMethod   string `json:"payment_method"`
	Status          string `json:"status"`
	// NUMERIC -> string
	Total string `json:"total"`
	// PixCode is set iff PaymentMethod == "pix".
	PixCode   string    `json:"pix_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is a line of an order. Price is the product price at the time the
// order was placed; later catalog edits never touch it.
type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// ItemWithProduct joins an item with the current product row, for the admin
// listing.
type ItemWithProduct struct {
	Item
	Product product.Product `json:"product"`
}

// OrderWithItems is the admin view of an order.
type OrderWithItems struct {
	Order
	Items []ItemWithProduct `json:"items"`
}
