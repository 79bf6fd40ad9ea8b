package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/velvetshop/storefront/internal/catalog"
)

// ProductsHandler exposes the back-office product form actions and the
// storefront listing.
type ProductsHandler struct {
	Service *catalog.Service
	Repo    *catalog.Repo
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listActive)
	r.Get("/products/{id}", h.get)
	r.Get("/dashboard/products", h.listAll)
	r.Post("/dashboard/products", h.create)
	r.Post("/dashboard/products/draft", h.createDraft)
	r.Put("/dashboard/products/{id}", h.edit)
	r.Put("/dashboard/products/{id}/draft", h.editDraft)
	r.Post("/dashboard/products/{id}/golive", h.goLive)
}

func decodeDraft(r *http.Request) (*catalog.Draft, error) {
	var d catalog.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// writeCatalogError maps the publication flow's failures: validation keeps
// the 422 family so the form can show a field message, the rest degrade to
// the generic notice.
func writeCatalogError(w http.ResponseWriter, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": verr.Message,
			"field": verr.Field,
		})
	case errors.Is(err, catalog.ErrNoImages),
		errors.Is(err, catalog.ErrSchedulePending),
		errors.Is(err, catalog.ErrNotDraft):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDraft(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Service.Create(ctx, d)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) createDraft(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDraft(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Service.CreateDraft(ctx, d)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) edit(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDraft(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Service.Edit(ctx, chi.URLParam(r, "id"), d)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) editDraft(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDraft(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Service.EditDraft(ctx, chi.URLParam(r, "id"), d)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) goLive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Service.GoLive(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) listActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *ProductsHandler) listAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request, all bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Repo.ListProducts(ctx, all)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ps)
}
