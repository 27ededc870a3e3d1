// Package user stores the admin users surfaced by /auth/user.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("user not found")
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Upsert(ctx context.Context, u *User) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(first_name,''), COALESCE(last_name,''), COALESCE(profile_image_url,''), created_at, updated_at
		FROM users WHERE id=$1
	`, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Upsert inserts the user or refreshes its profile fields on conflict.
func (r *PGRepo) Upsert(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, created_at, updated_at)
		VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),NULLIF($5,''),NOW(),NOW())
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    profile_image_url = EXCLUDED.profile_image_url,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.FirstName, u.LastName, u.ProfileImageURL).
		Scan(&u.CreatedAt, &u.UpdatedAt)
}
