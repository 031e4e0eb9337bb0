package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
	}

	ctx, cancel := context.WithTimeout(r.Context(), listTimeout)
	defer cancel()

	products, err := h.catalog.List(ctx, f)
	if err != nil {
		h.internalError(w, r, "failed to load products", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct looks a product up by id, then by slug.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	p, err := h.catalog.Get(ctx, key)
	if errors.Is(err, catalog.ErrNotFound) {
		p, err = h.catalog.GetBySlug(ctx, key)
	}
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.internalError(w, r, "failed to load product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	p, err := h.catalog.Create(ctx, in)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	p, err := h.catalog.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	if err := h.catalog.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidProduct):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrSlugTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.internalError(w, r, "failed to save product", err)
	}
}
