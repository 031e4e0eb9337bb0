package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) sessionStore(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	store, err := h.carts.Session(ctx, GetCartSession(r.Context()))
	if err != nil {
		if errors.Is(err, cart.ErrMissingSession) {
			writeError(w, http.StatusBadRequest, "missing cart session")
			return nil, false
		}
		h.internalError(w, r, "failed to load cart", err)
		return nil, false
	}
	return store, true
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, store.View())
}

// AddCartItem snapshots the catalog product into the cart. A missing quantity means one;
// the quantity is capped at the product's stock count.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		writeError(w, http.StatusBadRequest, cart.ErrInvalidQuantity.Error())
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	p, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.internalError(w, r, "failed to load product", err)
		return
	}
	if !p.InStock {
		writeError(w, http.StatusConflict, "product is out of stock")
		return
	}

	store, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	if err := store.AddItem(ctx, p.Snapshot(), p.MaxQuantity(quantity)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, store.View())
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	store, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	store.UpdateQuantity(ctx, chi.URLParam(r, "productId"), *req.Quantity)
	writeJSON(w, http.StatusOK, store.View())
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	store.RemoveItem(ctx, chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, store.View())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.sessionStore(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	store.Clear(ctx)
	writeJSON(w, http.StatusOK, store.View())
}
