package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	Stats(ctx context.Context) (Stats, error)
	Customers(ctx context.Context) ([]Customer, error)
}

const orderColumns = `id, user_id, shipping_address, payment_method, payment_status, status,
	subtotal, tax, shipping_cost, total_amount, created_at, updated_at`

const recentOrdersLimit = 5

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, shipping_address, payment_method, payment_status, status,
			subtotal, tax, shipping_cost, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, o.ID, o.UserID, o.ShippingAddress, o.PaymentMethod, o.PaymentStatus, o.Status,
		o.Subtotal, o.Tax, o.ShippingCost, o.TotalAmount, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, position, product_id, quantity, price, name, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.NewString(), o.ID, i, it.ProductID, it.Quantity, it.Price, it.Name, it.Image)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	orders := []Order{o}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates the admin dashboard figures. Revenue leaves out cancelled orders;
// customers are distinct shipping emails.
func (r *PostgresRepository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'Cancelled'), 0),
			COUNT(*),
			(SELECT COUNT(*) FROM products),
			COUNT(DISTINCT shipping_address->>'email')
		FROM orders
	`).Scan(&s.Revenue, &s.Orders, &s.Products, &s.Customers)
	if err != nil {
		return Stats{}, fmt.Errorf("select stats: %w", err)
	}

	s.RecentOrders, err = r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, recentOrdersLimit)
	if err != nil {
		return Stats{}, err
	}
	return s, nil
}

// Customers groups orders by shipping email. Names come from the customer's first order.
func (r *PostgresRepository) Customers(ctx context.Context) ([]Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			COALESCE(shipping_address->>'email', '') AS email,
			(array_agg(shipping_address->>'firstName' ORDER BY created_at))[1],
			(array_agg(shipping_address->>'lastName' ORDER BY created_at))[1],
			SUM(total_amount) AS total_spent,
			COUNT(*),
			MAX(created_at)
		FROM orders
		GROUP BY 1
		ORDER BY total_spent DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.Email, &c.FirstName, &c.LastName, &c.TotalSpent, &c.OrdersCount, &c.LastOrderDate); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return customers, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	rows.Close()

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fetches the items of all given orders in one query and attaches them in position order.
func (r *PostgresRepository) loadItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		byID[orders[i].ID] = i
		orders[i].Items = []Item{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT order_id, product_id, quantity, price, name, image
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &it.Price, &it.Name, &it.Image); err != nil {
			return fmt.Errorf("scan order_item: %w", err)
		}
		if i, ok := byID[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.ShippingAddress, &o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.Subtotal, &o.Tax, &o.ShippingCost, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}
