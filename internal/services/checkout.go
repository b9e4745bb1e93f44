package services

import (
	"event-booking-api/internal/models"
)

// CheckoutRepository interface for checkout data operations
type CheckoutRepository interface {
	Create(checkout *models.Checkout) (*models.Checkout, error)
	GetByID(id int) (*models.Checkout, error)
}

// CheckoutService assembles checkout records for authenticated customers.
// It records the selection only: stock verification and decrementing sold
// belong to the sale path and are intentionally not performed here.
type CheckoutService struct {
	checkoutRepo CheckoutRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(checkoutRepo CheckoutRepository) *CheckoutService {
	return &CheckoutService{checkoutRepo: checkoutRepo}
}

// AddItemToCheckout builds and persists a single-item checkout tied to the
// customer's email.
func (s *CheckoutService) AddItemToCheckout(user *models.User, req *models.CheckoutCreateRequest) (*models.Checkout, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	checkout := &models.Checkout{
		Email: user.Email,
		Items: []*models.CheckoutItem{
			{
				TicketID:            req.TicketID,
				TotalTicketQuantity: req.Quantity,
			},
		},
		TotalQuantity: req.Quantity,
	}

	created, err := s.checkoutRepo.Create(checkout)
	if err != nil {
		return nil, err
	}
	return created, nil
}
