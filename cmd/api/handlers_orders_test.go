package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	ord "github.com/snackschicken/delivery-api/internal/order"
)

//
// ===== STUB REPO (implements order.Repository) =====
//

type stubOrderRepo struct {
	knownProducts map[string]bool
	orders        map[string]*ord.OrderWithItems
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		knownProducts: map[string]bool{"p1": true, "p2": true},
		orders:        map[string]*ord.OrderWithItems{},
	}
}

func (s *stubOrderRepo) Create(ctx context.Context, o *ord.Order, items []ord.Item) error {
	for _, it := range items {
		if !s.knownProducts[it.ProductID] {
			return fmt.Errorf("%w: %s", ord.ErrProductNotFound, it.ProductID)
		}
	}
	ow := &ord.OrderWithItems{Order: *o}
	for _, it := range items {
		ow.Items = append(ow.Items, ord.ItemWithProduct{Item: it})
	}
	s.orders[o.ID] = ow
	return nil
}

func (s *stubOrderRepo) GetWithItems(ctx context.Context, id string) (*ord.OrderWithItems, error) {
	ow, ok := s.orders[id]
	if !ok {
		return nil, ord.ErrNotFound
	}
	return ow, nil
}

func (s *stubOrderRepo) ListWithItems(ctx context.Context) ([]ord.OrderWithItems, error) {
	out := []ord.OrderWithItems{}
	for _, ow := range s.orders {
		out = append(out, *ow)
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id, status string) (*ord.Order, error) {
	ow, ok := s.orders[id]
	if !ok {
		return nil, ord.ErrNotFound
	}
	ow.Status = status
	o := ow.Order
	return &o, nil
}

const checkoutBody = `{
	"customer_name": "Maria Silva",
	"customer_phone": "11999990000",
	"customer_address": "Rua das Laranjeiras 123",
	"payment_method": "%s",
	"items": [
		{"product_id": "p1", "quantity": 2, "price": "10.00"},
		{"product_id": "p2", "quantity": 1, "price": "5.90"}
	]
}`

//
// ===== TESTS =====
//

func TestCreateOrder_PixDiscountAndCode(t *testing.T) {
	r, env := newTestRouter(denyAll()) // checkout is public

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(fmt.Sprintf(checkoutBody, "pix")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got ord.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Total != "24.61" {
		t.Fatalf("total=%s, want 24.61 (25.90 with 5%% pix discount, half-up)", got.Total)
	}
	if got.PixCode == "" {
		t.Fatalf("pix order must carry a pix code")
	}
	if got.Status != "pending" {
		t.Fatalf("status=%s, want pending", got.Status)
	}
	if len(env.orders.orders) != 1 {
		t.Fatalf("order not persisted")
	}
}

func TestCreateOrder_CashHasNoDiscountAndNoPixCode(t *testing.T) {
	r, _ := newTestRouter(denyAll())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(fmt.Sprintf(checkoutBody, "money")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got ord.Order
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Total != "25.90" {
		t.Fatalf("total=%s, want 25.90", got.Total)
	}
	if got.PixCode != "" {
		t.Fatalf("non-pix order must not carry a pix code")
	}
}

func TestCreateOrder_EmptyItemsRejected(t *testing.T) {
	r, env := newTestRouter(denyAll())

	body := `{"customer_name":"Maria Silva","customer_phone":"11999990000","customer_address":"Rua das Laranjeiras 123","payment_method":"card","items":[]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Errors) != 1 || got.Errors[0].Field != "items" {
		t.Fatalf("unexpected errors: %+v", got.Errors)
	}
	if len(env.orders.orders) != 0 {
		t.Fatalf("rejected order must not be persisted")
	}
}

func TestCreateOrder_UnknownProductIs404(t *testing.T) {
	r, env := newTestRouter(denyAll())
	env.orders.knownProducts = map[string]bool{"p1": true} // p2 missing

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(fmt.Sprintf(checkoutBody, "card")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d body=%s", w.Code, w.Body.String())
	}
	if len(env.orders.orders) != 0 {
		t.Fatalf("nothing may be persisted when a product is unknown")
	}
}

func TestListOrders_RequiresAuth(t *testing.T) {
	// without credentials
	{
		r, _ := newTestRouter(denyAll())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("want 401, got %d", w.Code)
		}
	}

	// with credentials
	{
		r, env := newTestRouter(allowAll())
		seedOrder(t, r, env)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set("Authorization", "Bearer anything")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var got []ord.OrderWithItems
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(got) != 1 || len(got[0].Items) != 2 {
			t.Fatalf("unexpected listing: %+v", got)
		}
	}
}

func seedOrder(t *testing.T, r http.Handler, env *testEnv) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(fmt.Sprintf(checkoutBody, "card")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed order: status=%d body=%s", w.Code, w.Body.String())
	}
	var got ord.Order
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	return got.ID
}

func TestUpdateOrderStatus(t *testing.T) {
	r, env := newTestRouter(allowAll())
	id := seedOrder(t, r, env)

	// valid transition
	{
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/orders/"+id+"/status", bytes.NewBufferString(`{"status":"preparing"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer anything")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var got ord.Order
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got.Status != "preparing" {
			t.Fatalf("status=%s, want preparing", got.Status)
		}
	}

	// invalid status value => 400
	{
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/orders/"+id+"/status", bytes.NewBufferString(`{"status":"eaten"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer anything")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("want 400, got %d body=%s", w.Code, w.Body.String())
		}
	}

	// unknown order => 404
	{
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/orders/nope/status", bytes.NewBufferString(`{"status":"preparing"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer anything")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("want 404, got %d body=%s", w.Code, w.Body.String())
		}
	}
}

func TestStats_ZeroOrdersToday(t *testing.T) {
	r, env := newTestRouter(allowAll())
	env.statsRepo.products = 5

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Authorization", "Bearer anything")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		TotalProducts     int    `json:"total_products"`
		TodayOrders       int    `json:"today_orders"`
		TodayRevenue      string `json:"today_revenue"`
		AverageOrderValue string `json:"average_order_value"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.TotalProducts != 5 || got.TodayOrders != 0 || got.TodayRevenue != "0.00" || got.AverageOrderValue != "0.00" {
		t.Fatalf("unexpected stats: %+v", got)
	}
}
