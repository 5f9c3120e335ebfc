package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlinks/internal/auth"
)

// PostgresUserStore is a PostgreSQL implementation of auth.UserRepository.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a new PostgreSQL-backed user store.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (p *PostgresUserStore) Create(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id::text
	`

	err := p.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.ErrEmailTaken
		}

		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (p *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id::text, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	return p.getOne(ctx, query, email)
}

func (p *PostgresUserStore) GetByID(ctx context.Context, id string) (*auth.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, auth.ErrUserNotFound
	}

	query := `
		SELECT id::text, name, email, password_hash, created_at
		FROM users
		WHERE id = $1::uuid
	`

	return p.getOne(ctx, query, id)
}

func (p *PostgresUserStore) getOne(ctx context.Context, query string, arg string) (*auth.User, error) {
	var user auth.User

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// Compile-time check.
var _ auth.UserRepository = (*PostgresUserStore)(nil)
