package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/jackc/pgx/v5"
)

// PostgresStorage keeps one JSONB document per storage key in cart_sessions.
type PostgresStorage struct {
	pool db.Pool
}

func NewPostgresStorage(pool db.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Load(ctx context.Context, key string) ([]Line, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM cart_sessions WHERE storage_key=$1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select cart session: %w", err)
	}
	return Decode(payload)
}

func (s *PostgresStorage) Save(ctx context.Context, key string, lines []Line) error {
	payload, err := Encode(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO cart_sessions (storage_key, payload)
		VALUES ($1, $2)
		ON CONFLICT (storage_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`, key, payload)
	if err != nil {
		return fmt.Errorf("upsert cart session: %w", err)
	}
	return nil
}
