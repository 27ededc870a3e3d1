package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snackschicken/delivery-api/internal/apperr"
)

// memRepo implements Repository in memory, mirroring the transactional
// contract: a failed Create leaves nothing behind.
type memRepo struct {
	knownProducts map[string]bool
	failCreate    error

	orders map[string]*OrderWithItems
}

func newMemRepo(productIDs ...string) *memRepo {
	known := map[string]bool{}
	for _, id := range productIDs {
		known[id] = true
	}
	return &memRepo{knownProducts: known, orders: map[string]*OrderWithItems{}}
}

func (m *memRepo) Create(ctx context.Context, o *Order, items []Item) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, it := range items {
		if !m.knownProducts[it.ProductID] {
			return fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
	}
	ow := &OrderWithItems{Order: *o}
	for _, it := range items {
		ow.Items = append(ow.Items, ItemWithProduct{Item: it})
	}
	m.orders[o.ID] = ow
	return nil
}

func (m *memRepo) GetWithItems(ctx context.Context, id string) (*OrderWithItems, error) {
	ow, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ow, nil
}

func (m *memRepo) ListWithItems(ctx context.Context) ([]OrderWithItems, error) {
	out := []OrderWithItems{}
	for _, ow := range m.orders {
		out = append(out, *ow)
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	ow, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	ow.Status = status
	o := ow.Order
	return &o, nil
}

func testPix() PixConfig {
	return PixConfig{Key: "+5511999990000", MerchantName: "SNACKS CHICKEN DELIVERY", MerchantCity: "SAO PAULO"}
}

func validRequest(method string) CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName:    "Maria Silva",
		CustomerPhone:   "11999990000",
		CustomerAddress: "Rua das Laranjeiras 123",
		PaymentMethod:   method,
		Items: []CreateOrderItem{
			{ProductID: "p1", Quantity: 2, Price: "10.00"},
			{ProductID: "p2", Quantity: 1, Price: "5.90"},
		},
	}
}

func TestCreate_NoDiscountForMoneyAndCard(t *testing.T) {
	for _, method := range []string{PaymentMoney, PaymentCard} {
		repo := newMemRepo("p1", "p2")
		svc := NewService(repo, testPix())

		o, err := svc.Create(context.Background(), validRequest(method))
		require.NoError(t, err)
		assert.Equal(t, "25.90", o.Total)
		assert.Empty(t, o.PixCode, "pix code must be absent for %s", method)
		assert.Equal(t, StatusPending, o.Status)
	}
}

func TestCreate_PixDiscountRoundsHalfUp(t *testing.T) {
	repo := newMemRepo("p1", "p2")
	svc := NewService(repo, testPix())

	// 25.90 * 0.95 = 24.605 -> half-up -> 24.61
	o, err := svc.Create(context.Background(), validRequest(PaymentPix))
	require.NoError(t, err)
	assert.Equal(t, "24.61", o.Total)
	assert.NotEmpty(t, o.PixCode)
}

func TestCreate_ItemPricesFrozenAsSubmitted(t *testing.T) {
	repo := newMemRepo("p1", "p2")
	svc := NewService(repo, testPix())

	o, err := svc.Create(context.Background(), validRequest(PaymentCard))
	require.NoError(t, err)

	stored, err := svc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "10.00", stored.Items[0].Price)
	assert.Equal(t, "5.90", stored.Items[1].Price)
}

func TestCreate_ValidationEnumeratesAllViolations(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, testPix())

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName:    "M",
		CustomerPhone:   "123",
		CustomerAddress: "short",
		PaymentMethod:   "cheque",
		Items:           nil,
	})
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)

	fields := map[string]bool{}
	for _, f := range v.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"customer_name", "customer_phone", "customer_address", "payment_method", "items"} {
		assert.True(t, fields[want], "missing violation for %s", want)
	}
	assert.Empty(t, repo.orders, "nothing may be persisted on validation failure")
}

func TestCreate_ItemFieldViolationsCarryIndex(t *testing.T) {
	repo := newMemRepo("p1")
	svc := NewService(repo, testPix())

	req := validRequest(PaymentCard)
	req.Items = []CreateOrderItem{
		{ProductID: "", Quantity: 0, Price: "abc"},
		{ProductID: "p1", Quantity: 1, Price: "10.001"},
	}
	_, err := svc.Create(context.Background(), req)
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)

	fields := map[string]bool{}
	for _, f := range v.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["items[0].product_id"])
	assert.True(t, fields["items[0].quantity"])
	assert.True(t, fields["items[0].price"])
	assert.True(t, fields["items[1].price"], "3 fraction digits must be rejected")
}

func TestCreate_UnknownProductPersistsNothing(t *testing.T) {
	repo := newMemRepo("p1") // p2 missing
	svc := NewService(repo, testPix())

	_, err := svc.Create(context.Background(), validRequest(PaymentCard))
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, repo.orders)
}

func TestCreate_StorageFailureLeavesNothingVisible(t *testing.T) {
	repo := newMemRepo("p1", "p2")
	repo.failCreate = errors.New("connection reset")
	svc := NewService(repo, testPix())

	_, err := svc.Create(context.Background(), validRequest(PaymentCard))
	require.Error(t, err)

	list, err := svc.ListWithItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateStatus(t *testing.T) {
	repo := newMemRepo("p1", "p2")
	svc := NewService(repo, testPix())

	o, err := svc.Create(context.Background(), validRequest(PaymentMoney))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), o.ID, StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), o.ID, "eaten")
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)

	_, err = svc.UpdateStatus(context.Background(), "nope", StatusPreparing)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRoundBRL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"24.605", "24.61"},
		{"24.604", "24.60"},
		{"24.615", "24.62"},
		{"0", "0.00"},
		{"10", "10.00"},
	}
	for _, tc := range cases {
		got := RoundBRL(mustDecimal(t, tc.in)).StringFixed(2)
		assert.Equal(t, tc.want, got, "RoundBRL(%s)", tc.in)
	}
}
