package httpapi

import (
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/hero"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/settings"
)

func (h *Handler) ListActiveHero(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	slides, err := h.hero.ListActive(ctx)
	if err != nil {
		h.internalError(w, r, "failed to load hero slides", err)
		return
	}
	writeJSON(w, http.StatusOK, slides)
}

func (h *Handler) ListAllHero(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	slides, err := h.hero.ListAll(ctx)
	if err != nil {
		h.internalError(w, r, "failed to load hero slides", err)
		return
	}
	writeJSON(w, http.StatusOK, slides)
}

func (h *Handler) CreateHero(w http.ResponseWriter, r *http.Request) {
	var in hero.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	s, err := h.hero.Create(ctx, in)
	if err != nil {
		if errors.Is(err, hero.ErrInvalidSlide) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, "failed to create hero slide", err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) DeleteHero(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	if err := h.hero.Delete(ctx, id); err != nil {
		if errors.Is(err, hero.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.internalError(w, r, "failed to delete hero slide", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	s, err := h.settings.Get(ctx)
	if err != nil {
		h.internalError(w, r, "failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var p settings.Patch
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	s, err := h.settings.Update(ctx, p)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, "failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
