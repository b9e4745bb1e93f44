package handlers

import (
	"net/http"

	"event-booking-api/internal/middleware"
	"event-booking-api/internal/models"
	"event-booking-api/internal/services"
)

// CheckoutHandler handles the checkout endpoint
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CreateCheckout handles POST /checkout for the authenticated user
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, models.NewUnauthorizedError("notAuthenticated"))
		return
	}

	var req models.CheckoutCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	checkout, err := h.checkoutService.AddItemToCheckout(user, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, checkout)
}
