package order

// CreateOrderItem is one cart line at checkout.
type CreateOrderItem struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"   example:"2"`
	Price     string `json:"price"      example:"25.90"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CustomerName    string            `json:"customer_name"    example:"Maria Silva"`
	CustomerPhone   string            `json:"customer_phone"   example:"11999990000"`
	CustomerAddress string            `json:"customer_address" example:"Rua das Laranjeiras 123, Sao Paulo"`
	PaymentMethod   string            `json:"payment_method"   example:"pix"`
	Items           []CreateOrderItem `json:"items"`
}

// UpdateStatusRequest is the admin status change payload.
type UpdateStatusRequest struct {
	Status string `json:"status" example:"preparing"`
}
