package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/hero"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/settings"
)

const (
	defaultTimeout = 3 * time.Second
	listTimeout    = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

// OrderService is the order surface the handlers need.
type OrderService interface {
	Submit(ctx context.Context, userID string, sub order.Submission) (*order.Order, error)
	Get(ctx context.Context, orderID string) (*order.Order, error)
	ListByUser(ctx context.Context, userID string) ([]order.Order, error)
	ListAll(ctx context.Context) ([]order.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error)
	Stats(ctx context.Context) (order.Stats, error)
	Customers(ctx context.Context) ([]order.Customer, error)
}

type Deps struct {
	Catalog  catalog.Repository
	Carts    *cart.Manager
	Checkout *checkout.Service
	Orders   OrderService
	Settings settings.Repository
	Hero     hero.Repository
	Verifier *auth.Verifier
	Logger   *zap.Logger
	Timeout  time.Duration
}

type Handler struct {
	catalog  catalog.Repository
	carts    *cart.Manager
	checkout *checkout.Service
	orders   OrderService
	settings settings.Repository
	hero     hero.Repository
	verifier *auth.Verifier
	logger   *zap.Logger
	timeout  time.Duration
}

func NewHandler(d Deps) *Handler {
	h := &Handler{
		catalog:  d.Catalog,
		carts:    d.Carts,
		checkout: d.Checkout,
		orders:   d.Orders,
		settings: d.Settings,
		hero:     d.Hero,
		verifier: d.Verifier,
		logger:   d.Logger,
		timeout:  d.Timeout,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.verifier == nil {
		h.verifier = auth.NewVerifier("")
	}
	if h.timeout <= 0 {
		h.timeout = defaultTimeout
	}
	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront-service",
	})
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *Handler) eventMeta(r *http.Request) events.EventMeta {
	return events.EventMeta{
		CorrelationID: GetCorrelationID(r.Context()),
		CausationID:   middleware.GetReqID(r.Context()),
	}
}

// internalError logs err with request context and answers with a generic message.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("requestId", middleware.GetReqID(r.Context())),
	)
	writeError(w, http.StatusInternalServerError, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
