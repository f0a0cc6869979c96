package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dejobratic/vitrine/internal/idempotency"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, token string) (*idempotency.Submission, error) {
	query := `
		SELECT resource_id
		FROM form_tokens
		WHERE token = $1
	`

	var submission idempotency.Submission
	err := s.pool.QueryRow(ctx, query, token).Scan(&submission.ResourceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select form token: %w", err)
	}

	return &submission, nil
}

func (s *Store) Save(ctx context.Context, token string, submission idempotency.Submission) error {
	query := `
		INSERT INTO form_tokens (token, resource_id)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query, token, submission.ResourceID)
	if err != nil {
		return fmt.Errorf("insert form token: %w", err)
	}

	return nil
}
