package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/velvetshop/storefront/internal/checkout"
	"github.com/velvetshop/storefront/internal/redisx"
)

// CheckoutHandler exposes the delivery-details form and the order
// submission.
type CheckoutHandler struct {
	Details *checkout.DetailsStore
	Submit  *checkout.Service
	Redis   *redis.Client
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Get("/checkout/details", h.getDetails)
	r.Put("/checkout/details", h.updateDetails)
	r.Get("/checkout/payment-types", h.paymentTypes)
	r.Post("/checkout", h.submit)
}

func (h *CheckoutHandler) getDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	d, err := h.Details.Get(ctx, sessionID(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *CheckoutHandler) updateDetails(w http.ResponseWriter, r *http.Request) {
	var patch checkout.Details
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Details.Update(ctx, sessionID(w, r), patch); err != nil {
		if errors.Is(err, checkout.ErrBadPaymentType) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandler) paymentTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, checkout.PaymentTypes)
}

type submitResp struct {
	OrderID       string `json:"order_id"`
	SubtotalCents int    `json:"subtotal_cents"`
}

func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := h.Submit.Submit(ctx, sessionID(w, r), r.Header.Get("X-Request-Id"))
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	// cache status so the confirmation page's lookup skips the DB
	key := fmt.Sprintf(redisx.KeyOrderStatus, order.OrderID)
	_ = h.Redis.Set(ctx, key, `{"status":"pending","payment_status":"pending"}`, redisx.TTLStatus).Err()

	writeJSON(w, http.StatusCreated, submitResp{OrderID: order.OrderID, SubtotalCents: order.TotalCents})
}

func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrIncompleteDetails):
		writeError(w, http.StatusUnprocessableEntity, checkout.ErrIncompleteDetails.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusUnprocessableEntity, checkout.ErrEmptyCart.Error())
	case errors.Is(err, checkout.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, checkout.ErrSubmitInFlight.Error())
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
