package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlinks/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// The UNIQUE constraint on short_links.code is the uniqueness authority.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	// DO NOTHING turns a code conflict into zero returned rows instead of an aborted statement.
	query := `
		INSERT INTO short_links (code, destination_url, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
		RETURNING id::text
	`

	var id string

	err := p.pool.QueryRow(ctx, query,
		string(link.Code),
		link.DestinationURL,
		string(link.OwnerID),
		link.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shortener.ErrCodeCollision
		}

		return fmt.Errorf("insert short link: %w", err)
	}

	link.ID = shortener.LinkID(id)

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	query := `
		SELECT id::text, code, destination_url, owner_id, created_at
		FROM short_links
		WHERE code = $1
	`

	link, err := scanLink(p.pool.QueryRow(ctx, query, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("get short link: %w", err)
	}

	return link, nil
}

func (p *PostgresStore) ListByOwner(ctx context.Context, owner shortener.OwnerID) ([]*shortener.ShortLink, error) {
	query := `
		SELECT id::text, code, destination_url, owner_id, created_at
		FROM short_links
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := p.pool.Query(ctx, query, string(owner))
	if err != nil {
		return nil, fmt.Errorf("list short links: %w", err)
	}

	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*shortener.ShortLink, error) {
		return scanLink(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list short links: %w", err)
	}

	return links, nil
}

func (p *PostgresStore) DeleteOwned(ctx context.Context, id shortener.LinkID, owner shortener.OwnerID) error {
	// Anything that is not a UUID cannot name a row.
	if _, err := uuid.Parse(string(id)); err != nil {
		return shortener.ErrNotFound
	}

	tag, err := p.pool.Exec(ctx,
		`DELETE FROM short_links WHERE id = $1::uuid AND owner_id = $2`,
		string(id), string(owner),
	)
	if err != nil {
		return fmt.Errorf("delete short link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func scanLink(row pgx.Row) (*shortener.ShortLink, error) {
	var (
		link                  shortener.ShortLink
		id, code, owner, dest string
	)

	if err := row.Scan(&id, &code, &dest, &owner, &link.CreatedAt); err != nil {
		return nil, err
	}

	link.ID = shortener.LinkID(id)
	link.Code = shortener.Code(code)
	link.DestinationURL = dest
	link.OwnerID = shortener.OwnerID(owner)
	link.CreatedAt = link.CreatedAt.UTC()

	return &link, nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
