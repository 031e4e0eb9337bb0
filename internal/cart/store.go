package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store holds the lines of one cart and keeps its storage copy in step with every mutation.
// Totals are never stored; they are derived from the lines on each read.
type Store struct {
	mu      sync.Mutex
	key     string
	storage Storage
	policy  pricing.Policy
	logger  *zap.Logger

	lines []Line
}

// NewStore returns an empty cart bound to key.
func NewStore(key string, storage Storage, policy pricing.Policy, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{key: key, storage: storage, policy: policy, logger: logger}
}

// Open rehydrates the cart saved under key. Load errors are returned; a layout version
// this build cannot read starts empty.
func Open(ctx context.Context, key string, storage Storage, policy pricing.Policy, logger *zap.Logger) (*Store, error) {
	s := NewStore(key, storage, policy, logger)
	if storage == nil {
		return s, nil
	}

	lines, err := storage.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrUnsupportedVersion) {
			s.logger.Warn("cart layout not supported, starting empty", zap.String("key", key), zap.Error(err))
			return s, nil
		}
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}
	for _, l := range lines {
		if l.Product.ID == "" || l.Quantity < 1 {
			s.logger.Warn("dropping invalid persisted line", zap.String("key", key), zap.String("productId", l.Product.ID), zap.Int("quantity", l.Quantity))
			continue
		}
		s.lines = append(s.lines, l)
	}
	return s, nil
}

func (s *Store) Key() string {
	return s.key
}

// AddItem increments the line for product.ID or appends a new one.
func (s *Store) AddItem(ctx context.Context, product Product, quantity int) error {
	if product.ID == "" {
		return ErrInvalidProduct
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity += quantity
	} else {
		s.lines = append(s.lines, Line{Product: product, Quantity: quantity})
	}
	s.persist(ctx)
	return nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	} else {
		s.lines[i].Quantity = quantity
	}
	s.persist(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the current lines in display order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) Policy() pricing.Policy {
	return s.policy
}

func (s *Store) ItemCount() int {
	return pricing.ItemCount(pricingLines(s.Lines()))
}

func (s *Store) Subtotal() decimal.Decimal {
	return pricing.Subtotal(pricingLines(s.Lines()))
}

func (s *Store) Tax() decimal.Decimal {
	return s.policy.Tax(s.Subtotal())
}

func (s *Store) Shipping() decimal.Decimal {
	return s.policy.Shipping(s.Subtotal())
}

func (s *Store) Total() decimal.Decimal {
	return s.policy.Total(s.Subtotal())
}

func (s *Store) Summary() pricing.Summary {
	return s.policy.Summarize(pricingLines(s.Lines()))
}

// View snapshots lines and totals under a single lock so they agree with each other.
func (s *Store) View() View {
	lines := s.Lines()
	if lines == nil {
		lines = []Line{}
	}
	return View{Items: lines, Summary: s.policy.Summarize(pricingLines(lines))}
}

func (s *Store) indexOf(productID string) int {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// persist is best-effort: a failed write is logged and the in-memory cart stays authoritative.
// Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(ctx, s.key, cloneLines(s.lines)); err != nil {
		s.logger.Warn("cart persist failed", zap.String("key", s.key), zap.Error(err))
	}
}
