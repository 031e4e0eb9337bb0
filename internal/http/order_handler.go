package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

type statusRequest struct {
	Status order.Status `json:"status"`
}

// CreateOrder stores a client-assembled order as submitted and publishes OrderPlaced.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var sub order.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	o, err := h.checkout.SubmitOrder(ctx, id.UserID, h.eventMeta(r), sub)
	if err != nil {
		if isOrderValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, "failed to create order", err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), listTimeout)
	defer cancel()

	orders, err := h.orders.ListByUser(ctx, id.UserID)
	if err != nil {
		h.internalError(w, r, "failed to load orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder returns one of the caller's orders. Admins may read any order; other
// callers get 404 for orders that are not theirs.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.internalError(w, r, "failed to load order", err)
		return
	}
	if o.UserID != id.UserID && !id.IsAdmin() {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listTimeout)
	defer cancel()

	orders, err := h.orders.ListAll(ctx)
	if err != nil {
		h.internalError(w, r, "failed to load orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	o, err := h.orders.UpdateStatus(ctx, chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.internalError(w, r, "failed to update order", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listTimeout)
	defer cancel()

	customers, err := h.orders.Customers(ctx)
	if err != nil {
		h.internalError(w, r, "failed to load customers", err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listTimeout)
	defer cancel()

	s, err := h.orders.Stats(ctx)
	if err != nil {
		h.internalError(w, r, "failed to load stats", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func isOrderValidation(err error) bool {
	for _, target := range []error{
		order.ErrNoItems,
		order.ErrInvalidItem,
		order.ErrInvalidAddress,
		order.ErrInvalidPaymentMethod,
		order.ErrMissingUser,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
