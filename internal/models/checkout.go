package models

import "time"

// Checkout represents a checkout record assembled for a customer. It is
// created in one shot and never mutated afterwards.
type Checkout struct {
	ID            int             `json:"id" db:"id"`
	Email         string          `json:"email" db:"email"`
	Items         []*CheckoutItem `json:"items"`
	TotalPrice    int             `json:"totalPrice" db:"total_price"`
	TotalQuantity int             `json:"totalQuantity" db:"total_quantity"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// CheckoutItem represents one ticket selection inside a checkout
type CheckoutItem struct {
	ID                  int `json:"id" db:"id"`
	CheckoutID          int `json:"-" db:"checkout_id"`
	TicketID            int `json:"ticket" db:"ticket_id"`
	TotalTicketQuantity int `json:"totalTicketQuantity" db:"total_ticket_quantity"`
	TotalTicketPrice    int `json:"totalTicketPrice" db:"total_ticket_price"`
}

// CheckoutCreateRequest represents the body of a checkout call
type CheckoutCreateRequest struct {
	TicketID int `json:"ticketId"`
	Quantity int `json:"quantity"`
}

// Validate validates the checkout request. Only the ticket reference is
// mandatory; stock is deliberately not checked here (the sale path owns
// stock accounting).
func (req *CheckoutCreateRequest) Validate() error {
	if req.TicketID == 0 {
		return NewValidationError("fieldsRequired")
	}
	return nil
}
