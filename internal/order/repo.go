// Package order implements checkout: pricing, PIX payload generation and the
// transactional PostgreSQL repository for orders and their items.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snackschicken/delivery-api/internal/product"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrProductNotFound means the cart referenced a product id that does not
	// exist; nothing is persisted in that case.
	ErrProductNotFound = errors.New("product not found")
)

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetWithItems(ctx context.Context, id string) (*OrderWithItems, error)
	ListWithItems(ctx context.Context) ([]OrderWithItems, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderCols = `id, customer_name, customer_phone, customer_address, payment_method, status, total::text, COALESCE(pix_code,''), created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
		&o.PaymentMethod, &o.Status, &o.Total, &o.PixCode, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists the order and all its items in one transaction. Every
// referenced product id is verified first; if any is missing or any insert
// fails, nothing becomes visible.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	known, err := existingProducts(ctx, tx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if !known[it.ProductID] {
			return fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address, payment_method, status, total, pix_code, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),NOW(),NOW())
		RETURNING created_at, updated_at
	`, o.ID, o.CustomerName, o.CustomerPhone, o.CustomerAddress, o.PaymentMethod, o.Status, o.Total, o.PixCode).
		Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES ($1,$2,$3,$4,$5)
		`, it.ID, o.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func existingProducts(ctx context.Context, tx pgx.Tx, ids []string) (map[string]bool, error) {
	rows, err := tx.Query(ctx, `SELECT id FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		known[id] = true
	}
	return known, rows.Err()
}

func (r *PGRepo) GetWithItems(ctx context.Context, id string) (*OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderCols+` FROM orders WHERE id=$1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	itemsByOrder, err := r.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: *o, Items: itemsByOrder[o.ID]}, nil
}

// ListWithItems returns every order newest-first, each joined with its items
// and the item's product row.
func (r *PGRepo) ListWithItems(ctx context.Context) ([]OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+` FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OrderWithItems{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderWithItems{Order: *o, Items: []ItemWithProduct{}})
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	itemsByOrder, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if items, ok := itemsByOrder[out[i].ID]; ok {
			out[i].Items = items
		}
	}
	return out, nil
}

func (r *PGRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]ItemWithProduct, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.price::text,
		       p.id, p.name, p.description, p.price::text, p.category, COALESCE(p.image_url,''), p.is_active, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := map[string][]ItemWithProduct{}
	for rows.Next() {
		var it ItemWithProduct
		var p product.Product
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		it.Product = p
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderCols+`
	`, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
