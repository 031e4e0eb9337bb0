package httpapi

import (
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

// CheckoutSummary shows the totals to be charged. An empty cart sends the client back to the cart.
func (h *Handler) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	store, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	v, err := h.checkout.Summary(store)
	if errors.Is(err, checkout.ErrEmptyCart) {
		http.Redirect(w, r, "/api/cart", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req checkout.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	store, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	o, err := h.checkout.PlaceOrder(ctx, id.UserID, h.eventMeta(r), store, req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrInvalidAddress), errors.Is(err, order.ErrInvalidPaymentMethod):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, checkout.ErrOrderFailed):
			writeError(w, http.StatusBadGateway, checkout.ErrOrderFailed.Error())
		default:
			h.internalError(w, r, "failed to place order", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, o)
}
