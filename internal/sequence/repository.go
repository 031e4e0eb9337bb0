package sequence

import (
	"context"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
)

// Repository manages producer-side sequences for events.
type Repository interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type repo struct {
	pool db.Pool
}

// NewRepository creates a new sequence repository.
func NewRepository(pool db.Pool) Repository {
	return &repo{pool: pool}
}

func (r *repo) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO event_sequence (partition_key, last_sequence, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (partition_key)
		DO UPDATE SET last_sequence = event_sequence.last_sequence + 1, updated_at = NOW()
		RETURNING last_sequence
	`, partitionKey).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
