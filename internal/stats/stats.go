// Package stats aggregates the daily numbers shown on the admin dashboard.
package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Today is the dashboard snapshot for the current local calendar day.
type Today struct {
	TotalProducts     int    `json:"total_products"`
	TodayOrders       int    `json:"today_orders"`
	TodayRevenue      string `json:"today_revenue"`
	AverageOrderValue string `json:"average_order_value"`
}

type Repository interface {
	CountProducts(ctx context.Context) (int, error)
	OrderTotalsBetween(ctx context.Context, from, to time.Time) (count int, sum, avg string, err error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// CountProducts counts every product row, active or not.
func (r *PGRepo) CountProducts(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *PGRepo) OrderTotalsBetween(ctx context.Context, from, to time.Time) (int, string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var count int
	var sum, avg string
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total),0)::text, COALESCE(AVG(total),0)::text
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&count, &sum, &avg)
	return count, sum, avg, err
}

// Service computes the dashboard stats. The clock is injectable so the
// midnight window is testable.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetToday reports catalog size and order count/revenue/average for the
// window [local midnight, next local midnight).
func (s *Service) GetToday(ctx context.Context) (*Today, error) {
	totalProducts, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	count, sum, avg, err := s.repo.OrderTotalsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &Today{
		TotalProducts:     totalProducts,
		TodayOrders:       count,
		TodayRevenue:      fixed2(sum),
		AverageOrderValue: fixed2(avg),
	}, nil
}

// fixed2 renders a storage-layer numeric string with exactly 2 decimals,
// rounding half-up (AVG can produce long fractions).
func fixed2(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "0.00"
	}
	return d.Round(2).StringFixed(2)
}
