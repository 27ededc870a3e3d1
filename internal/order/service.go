package order

import (
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snackschicken/delivery-api/internal/apperr"
)

// pixDiscount is the factor applied to the cart total when paying with PIX.
var pixDiscount = decimal.RequireFromString("0.95")

// RoundBRL rounds an amount to 2 decimal places, half away from zero. All
// amounts here are non-negative, so this is plain half-up rounding: 24.605
// becomes 24.61. It is the single rounding rule of the pricing flow.
func RoundBRL(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Service prices carts and persists orders.
type Service struct {
	repo  Repository
	pix   PixConfig
	newID func() string
}

func NewService(repo Repository, pix PixConfig) *Service {
	return &Service{repo: repo, pix: pix, newID: uuid.NewString}
}

// Create validates the checkout payload, computes the total (5% off for PIX),
// generates the PIX payload when applicable and persists the order with all
// its items atomically. The item prices are frozen as submitted; later catalog
// price changes never affect an existing order.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	prices, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i, it := range req.Items {
		total = total.Add(prices[i].Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if req.PaymentMethod == PaymentPix {
		total = total.Mul(pixDiscount)
	}
	totalStr := RoundBRL(total).StringFixed(2)

	o := &Order{
		ID:              s.newID(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          StatusPending,
		Total:           totalStr,
	}
	if req.PaymentMethod == PaymentPix {
		o.PixCode = s.pix.Payload(o.ID, totalStr)
	}

	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, Item{
			ID:        s.newID(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if err := s.repo.Create(ctx, o, items); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (*OrderWithItems, error) {
	return s.repo.GetWithItems(ctx, id)
}

func (s *Service) ListWithItems(ctx context.Context) ([]OrderWithItems, error) {
	return s.repo.ListWithItems(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	if !ValidStatus(status) {
		v := &apperr.ValidationError{}
		v.Add("status", "status must be one of: pending, preparing, delivering, delivered, cancelled")
		return nil, v
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// validateCreate checks the whole payload and reports every violation at
// once. On success it returns the parsed item prices, index-aligned with
// req.Items.
func validateCreate(req CreateOrderRequest) ([]decimal.Decimal, error) {
	var v apperr.ValidationError
	if utf8.RuneCountInString(req.CustomerName) < 2 {
		v.Add("customer_name", "customer name must have at least 2 characters")
	}
	if utf8.RuneCountInString(req.CustomerPhone) < 10 {
		v.Add("customer_phone", "customer phone must have at least 10 digits")
	}
	if utf8.RuneCountInString(req.CustomerAddress) < 10 {
		v.Add("customer_address", "customer address must have at least 10 characters")
	}
	switch req.PaymentMethod {
	case PaymentPix, PaymentMoney, PaymentCard:
	default:
		v.Add("payment_method", "payment method must be one of: pix, money, card")
	}
	if len(req.Items) == 0 {
		v.Add("items", "at least one item is required")
	}

	prices := make([]decimal.Decimal, len(req.Items))
	for i, it := range req.Items {
		field := func(name string) string { return "items[" + strconv.Itoa(i) + "]." + name }
		if it.ProductID == "" {
			v.Add(field("product_id"), "product id is required")
		}
		if it.Quantity < 1 {
			v.Add(field("quantity"), "quantity must be at least 1")
		}
		d, err := decimal.NewFromString(it.Price)
		if err != nil || d.Sign() < 0 || d.Exponent() < -2 {
			v.Add(field("price"), "price must be a non-negative decimal with at most 2 fraction digits")
			continue
		}
		prices[i] = d
	}

	if err := v.AsError(); err != nil {
		return nil, err
	}
	return prices, nil
}
