package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/velvetshop/storefront/internal/catalog"
	"github.com/velvetshop/storefront/internal/checkout"
	"github.com/velvetshop/storefront/internal/orders"
)

// CartHandler mutates the session cart. Unit prices come from the catalog at
// add time, never from the client.
type CartHandler struct {
	Cart    *checkout.CartStore
	Catalog *catalog.Repo
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Get("/cart", h.get)
	r.Post("/cart/items", h.add)
	r.Put("/cart/items/{productID}", h.setQty)
	r.Delete("/cart/items/{productID}", h.remove)
	r.Delete("/cart", h.clear)
}

type cartResp struct {
	Items         []orders.Item `json:"items"`
	SubtotalCents int           `json:"subtotal_cents"`
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Cart.Get(ctx, sessionID(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []orders.Item{}
	}
	writeJSON(w, http.StatusOK, cartResp{Items: items, SubtotalCents: orders.Subtotal(items)})
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Variant   string `json:"variant,omitempty"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing product_id")
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p.Status != catalog.StatusActive {
		writeError(w, http.StatusUnprocessableEntity, "product is not purchasable")
		return
	}
	if len(p.Variants) > 0 && !hasVariant(p.Variants, req.Variant) {
		writeError(w, http.StatusUnprocessableEntity, "pick one of the product variants")
		return
	}

	item := orders.Item{
		ProductID:  p.ID,
		Variant:    req.Variant,
		Qty:        req.Qty,
		PriceCents: p.PriceCents,
	}
	if err := h.Cart.Add(ctx, sessionID(w, r), item); err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) setQty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.Cart.SetQty(ctx, sessionID(w, r), chi.URLParam(r, "productID"), r.URL.Query().Get("variant"), req.Qty)
	if err != nil {
		writeCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.Cart.Remove(ctx, sessionID(w, r), chi.URLParam(r, "productID"), r.URL.Query().Get("variant"))
	if err != nil {
		writeCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Cart.Clear(ctx, sessionID(w, r)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrAlreadyInCart):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrNotInCart):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, checkout.ErrInvalidQty):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func hasVariant(variants []string, v string) bool {
	for _, x := range variants {
		if x == v {
			return true
		}
	}
	return false
}
