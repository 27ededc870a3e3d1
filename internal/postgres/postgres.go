// Package postgres owns the connection pool lifecycle: open, migrate, close.
package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/snackschicken/delivery-api/migrations"
)

type Client struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying connection pool.
func (c *Client) Pool() *pgxpool.Pool { return c.pool }

// Close closes the pool for graceful shutdown.
func (c *Client) Close() { c.pool.Close() }

// Connect opens the pool, pings it and applies pending migrations.
func Connect(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		pool.Close()
		return nil, err
	}
	db := stdlib.OpenDBFromPool(pool)
	if err := goose.Up(db, "."); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("[postgres] close migration conn: %v", err)
	}

	log.Printf("[postgres] connected and migrated")
	return &Client{pool: pool}, nil
}
