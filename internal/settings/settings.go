package settings

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/jackc/pgx/v5"
)

const (
	DefaultStoreName    = "Lumière"
	DefaultSupportEmail = "support@antigravity.com"
	DefaultCurrency     = "USD"
)

var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	StoreName       string    `json:"storeName"`
	SupportEmail    string    `json:"supportEmail"`
	Currency        string    `json:"currency"`
	MaintenanceMode bool      `json:"maintenanceMode"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Patch carries the fields an admin wants to change; nil fields keep their stored value.
type Patch struct {
	StoreName       *string `json:"storeName"`
	SupportEmail    *string `json:"supportEmail"`
	Currency        *string `json:"currency"`
	MaintenanceMode *bool   `json:"maintenanceMode"`
}

func (p Patch) Validate() error {
	if p.StoreName != nil && strings.TrimSpace(*p.StoreName) == "" {
		return fmt.Errorf("%w: storeName must not be empty", ErrInvalidSettings)
	}
	if p.SupportEmail != nil {
		if _, err := mail.ParseAddress(*p.SupportEmail); err != nil {
			return fmt.Errorf("%w: supportEmail: %v", ErrInvalidSettings, err)
		}
	}
	if p.Currency != nil && len(strings.TrimSpace(*p.Currency)) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidSettings)
	}
	return nil
}

type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, p Patch) (Settings, error)
}

const settingsColumns = `store_name, support_email, currency, maintenance_mode, updated_at`

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get returns the settings row, creating it with defaults on first use.
func (r *PostgresRepository) Get(ctx context.Context) (Settings, error) {
	s, err := scan(r.pool.QueryRow(ctx, `SELECT `+settingsColumns+` FROM store_settings WHERE id = 1`))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, fmt.Errorf("select settings: %w", err)
	}

	s, err = scan(r.pool.QueryRow(ctx, `
		INSERT INTO store_settings (id) VALUES (1)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING `+settingsColumns))
	if err != nil {
		return Settings{}, fmt.Errorf("create default settings: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p Patch) (Settings, error) {
	if err := p.Validate(); err != nil {
		return Settings{}, err
	}
	if p.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*p.Currency))
		p.Currency = &c
	}

	s, err := scan(r.pool.QueryRow(ctx, `
		INSERT INTO store_settings (id, store_name, support_email, currency, maintenance_mode)
		VALUES (1, COALESCE($1, $5), COALESCE($2, $6), COALESCE($3, $7), COALESCE($4, FALSE))
		ON CONFLICT (id) DO UPDATE SET
			store_name = COALESCE($1, store_settings.store_name),
			support_email = COALESCE($2, store_settings.support_email),
			currency = COALESCE($3, store_settings.currency),
			maintenance_mode = COALESCE($4, store_settings.maintenance_mode),
			updated_at = now()
		RETURNING `+settingsColumns,
		p.StoreName, p.SupportEmail, p.Currency, p.MaintenanceMode,
		DefaultStoreName, DefaultSupportEmail, DefaultCurrency))
	if err != nil {
		return Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return s, nil
}

func scan(row pgx.Row) (Settings, error) {
	var s Settings
	err := row.Scan(&s.StoreName, &s.SupportEmail, &s.Currency, &s.MaintenanceMode, &s.UpdatedAt)
	return s, err
}
