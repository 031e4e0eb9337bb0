package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service places orders and serves the order views. Submitted amounts are stored as given.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) Submit(ctx context.Context, userID string, sub Submission) (*Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	if len(sub.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range sub.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return nil, ErrInvalidItem
		}
	}
	if sub.ShippingAddress == nil {
		return nil, ErrInvalidAddress
	}
	if err := sub.ShippingAddress.Validate(); err != nil {
		return nil, err
	}

	method := sub.PaymentMethod
	if method == "" {
		method = PaymentCOD
	}
	if method != PaymentCOD && method != PaymentCard {
		return nil, ErrInvalidPaymentMethod
	}

	now := s.now().UTC()
	o := &Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           sub.Items,
		ShippingAddress: *sub.ShippingAddress,
		PaymentMethod:   method,
		PaymentStatus:   InitialPaymentStatus(method),
		Status:          StatusProcessing,
		Subtotal:        sub.Subtotal,
		Tax:             sub.Tax,
		ShippingCost:    sub.ShippingCost,
		TotalAmount:     sub.TotalAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("orderId", o.ID),
		zap.String("userId", userID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.TotalAmount.StringFixed(2)),
	)
	return o, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	s.logger.Info("order status changed", zap.String("orderId", orderID), zap.String("status", string(status)))
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) Customers(ctx context.Context) ([]Customer, error) {
	return s.repo.Customers(ctx)
}
