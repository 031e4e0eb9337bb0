package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "name", "slug", "description", "price", "sale_price", "images", "category_id",
	"rating", "review_count", "in_stock", "stock_count", "features", "tags",
	"is_featured", "is_bestseller", "is_new", "specifications", "created_at", "updated_at",
}

func productRow(rows *pgxmock.Rows, id, name string, price string, created time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, name, Slugify(name), "desc", decimal.RequireFromString(price), decimal.NullDecimal{},
		[]string{"https://img/" + id + ".jpg"}, "living",
		4.5, 12, true, 7, []string{"Solid oak"}, []string{"wood"},
		false, true, false, []Specification{{Label: "Width", Value: "80cm"}}, created, created,
	)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	cases := map[string]struct {
		filter Filter
		query  string
		args   []any
	}{
		"no filter":       {filter: Filter{}, query: `FROM products ORDER BY created_at DESC`},
		"by category":     {filter: Filter{Category: "living"}, query: `WHERE category_id = \$1 ORDER BY`, args: []any{"living"}},
		"featured only":   {filter: Filter{Featured: true}, query: `WHERE is_featured ORDER BY`},
		"category + feat": {filter: Filter{Category: "living", Featured: true}, query: `WHERE category_id = \$1 AND is_featured`, args: []any{"living"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			rows := pgxmock.NewRows(columns)
			productRow(rows, "p2", "Newer Sofa", "900", now)
			productRow(rows, "p1", "Older Chair", "150.50", now.Add(-time.Hour))

			exp := mock.ExpectQuery(tc.query)
			if len(tc.args) > 0 {
				exp = exp.WithArgs(tc.args...)
			}
			exp.WillReturnRows(rows)

			products, err := NewPostgresRepository(mock).List(ctx, tc.filter)
			require.NoError(t, err)
			require.Len(t, products, 2)
			require.Equal(t, "p2", products[0].ID)
			require.Equal(t, "newer-sofa", products[0].Slug)
			require.True(t, products[1].Price.Equal(decimal.RequireFromString("150.5")))
			require.Equal(t, "Width", products[0].Specifications[0].Label)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("empty result is an empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, name`).WillReturnRows(pgxmock.NewRows(columns))

		products, err := NewPostgresRepository(mock).List(ctx, Filter{})
		require.NoError(t, err)
		require.NotNil(t, products)
		require.Empty(t, products)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM products WHERE id = \$1`).
			WithArgs("p1").
			WillReturnRows(productRow(pgxmock.NewRows(columns), "p1", "Oak Shelf", "210", time.Now()))

		p, err := NewPostgresRepository(mock).Get(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, "Oak Shelf", p.Name)
		require.Equal(t, 7, p.StockCount)
		require.False(t, p.SalePrice.Valid)
	})

	t.Run("missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM products WHERE slug = \$1`).
			WithArgs("nope").
			WillReturnError(pgx.ErrNoRows)

		_, err = NewPostgresRepository(mock).GetBySlug(ctx, "nope")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	in := Input{Name: "Walnut Desk", Price: decimal.RequireFromString("640"), Category: "office"}

	t.Run("inserts with generated id and slug", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery(`INSERT INTO products`).
			WithArgs(pgxmock.AnyArg(), "Walnut Desk", "walnut-desk", "", in.Price, in.SalePrice,
				[]string{}, "office", true, 0, []string{}, []string{}, false, false, false, []Specification{}).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		p, err := NewPostgresRepository(mock).Create(ctx, in)
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		require.Equal(t, "walnut-desk", p.Slug)
		require.Equal(t, now, p.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate slug", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err = NewPostgresRepository(mock).Create(ctx, in)
		require.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("invalid input never reaches the database", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		_, err = NewPostgresRepository(mock).Create(ctx, Input{Name: "No price", Category: "x"})
		require.ErrorIs(t, err, ErrInvalidProduct)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	in := Input{Name: "Walnut Desk", Price: decimal.RequireFromString("600"), Category: "office"}

	t.Run("update missing product", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`UPDATE products SET`).WillReturnError(pgx.ErrNoRows)

		_, err = NewPostgresRepository(mock).Update(ctx, "gone", in)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update keeps rating", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery(`UPDATE products SET`).
			WillReturnRows(pgxmock.NewRows([]string{"rating", "review_count", "created_at", "updated_at"}).
				AddRow(4.8, 31, now.Add(-time.Hour), now))

		p, err := NewPostgresRepository(mock).Update(ctx, "p1", in)
		require.NoError(t, err)
		require.Equal(t, "p1", p.ID)
		require.Equal(t, 31, p.ReviewCount)
	})

	t.Run("delete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM products`).WithArgs("p1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(`DELETE FROM products`).WithArgs("p1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPostgresRepository(mock)
		require.NoError(t, repo.Delete(ctx, "p1"))
		require.ErrorIs(t, repo.Delete(ctx, "p1"), ErrNotFound)
	})

	t.Run("count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

		n, err := NewPostgresRepository(mock).Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 12, n)
	})
}
