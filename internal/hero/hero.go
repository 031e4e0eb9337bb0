package hero

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound     = errors.New("hero slide not found")
	ErrInvalidSlide = errors.New("title, description and image are required")
)

type Slide struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Highlight   string    `json:"highlight"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CTAText     string    `json:"ctaText"`
	CTALink     string    `json:"ctaLink"`
	Badge       string    `json:"badge"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Input struct {
	Title       string  `json:"title"`
	Highlight   string  `json:"highlight"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CTAText     *string `json:"ctaText"`
	CTALink     *string `json:"ctaLink"`
	Badge       *string `json:"badge"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (in Input) slide() (Slide, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Image) == "" {
		return Slide{}, ErrInvalidSlide
	}
	s := Slide{
		Title:       in.Title,
		Highlight:   in.Highlight,
		Description: in.Description,
		Image:       in.Image,
		CTAText:     "Shop Now",
		CTALink:     "/products",
		Badge:       "New",
		IsActive:    true,
	}
	if in.CTAText != nil {
		s.CTAText = *in.CTAText
	}
	if in.CTALink != nil {
		s.CTALink = *in.CTALink
	}
	if in.Badge != nil {
		s.Badge = *in.Badge
	}
	if in.Order != nil {
		s.Order = *in.Order
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	return s, nil
}

type Repository interface {
	ListActive(ctx context.Context) ([]Slide, error)
	ListAll(ctx context.Context) ([]Slide, error)
	Create(ctx context.Context, in Input) (Slide, error)
	Delete(ctx context.Context, id string) error
}

const slideColumns = `id, title, highlight, description, image, cta_text, cta_link, badge, sort_order, is_active, created_at, updated_at`

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]Slide, error) {
	return r.list(ctx, `SELECT `+slideColumns+` FROM hero_slides WHERE is_active ORDER BY sort_order ASC, created_at DESC`)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Slide, error) {
	return r.list(ctx, `SELECT `+slideColumns+` FROM hero_slides ORDER BY sort_order ASC, created_at DESC`)
}

func (r *PostgresRepository) Create(ctx context.Context, in Input) (Slide, error) {
	s, err := in.slide()
	if err != nil {
		return Slide{}, err
	}
	s.ID = uuid.NewString()

	err = r.pool.QueryRow(ctx, `
		INSERT INTO hero_slides (id, title, highlight, description, image, cta_text, cta_link, badge, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, s.ID, s.Title, s.Highlight, s.Description, s.Image, s.CTAText, s.CTALink, s.Badge, s.Order, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Slide{}, fmt.Errorf("insert hero slide: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hero_slides WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete hero slide: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]Slide, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select hero slides: %w", err)
	}
	defer rows.Close()

	slides := []Slide{}
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hero slide: %w", err)
		}
		slides = append(slides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return slides, nil
}

func scanSlide(row pgx.Row) (Slide, error) {
	var s Slide
	err := row.Scan(&s.ID, &s.Title, &s.Highlight, &s.Description, &s.Image, &s.CTAText, &s.CTALink,
		&s.Badge, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
