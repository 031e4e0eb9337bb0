package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	Create(ctx context.Context, in Input) (Product, error)
	Update(ctx context.Context, id string, in Input) (Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

const productColumns = `id, name, slug, description, price, sale_price, images, category_id,
	rating, review_count, in_stock, stock_count, features, tags,
	is_featured, is_bestseller, is_new, specifications, created_at, updated_at`

const uniqueViolation = "23505"

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Featured {
		where = append(where, "is_featured")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, in Input) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	p := in.product()
	p.ID = uuid.NewString()

	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, slug, description, price, sale_price, images, category_id,
			in_stock, stock_count, features, tags, is_featured, is_bestseller, is_new, specifications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Slug, p.Description, p.Price, p.SalePrice, p.Images, p.CategoryID,
		p.InStock, p.StockCount, p.Features, p.Tags, p.IsFeatured, p.IsBestseller, p.IsNew, p.Specifications,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, mapWriteError("insert product", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, in Input) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	p := in.product()
	p.ID = id

	err := r.pool.QueryRow(ctx, `
		UPDATE products SET name=$2, slug=$3, description=$4, price=$5, sale_price=$6, images=$7,
			category_id=$8, in_stock=$9, stock_count=$10, features=$11, tags=$12, is_featured=$13,
			is_bestseller=$14, is_new=$15, specifications=$16, updated_at=now()
		WHERE id=$1
		RETURNING rating, review_count, created_at, updated_at
	`, p.ID, p.Name, p.Slug, p.Description, p.Price, p.SalePrice, p.Images, p.CategoryID,
		p.InStock, p.StockCount, p.Features, p.Tags, p.IsFeatured, p.IsBestseller, p.IsNew, p.Specifications,
	).Scan(&p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, mapWriteError("update product", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.SalePrice, &p.Images, &p.CategoryID,
		&p.Rating, &p.ReviewCount, &p.InStock, &p.StockCount, &p.Features, &p.Tags,
		&p.IsFeatured, &p.IsBestseller, &p.IsNew, &p.Specifications, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrSlugTaken
	}
	return fmt.Errorf("%s: %w", op, err)
}
