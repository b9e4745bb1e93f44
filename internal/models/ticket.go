package models

import (
	"strings"
	"time"
)

// Ticket represents one ticket tier of an event. Sold is mutated only by the
// sale path, never by a client patch, and IsSoldOut is derived: it is true
// exactly when sold has reached quantity.
type Ticket struct {
	ID          int       `json:"id" db:"id"`
	EventID     int       `json:"event" db:"event_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"` // Price in cents
	Quantity    int       `json:"quantity" db:"quantity"`
	Sold        int       `json:"sold" db:"sold"`
	IsSoldOut   bool      `json:"isSoldOut" db:"is_sold_out"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TicketCreateRequest represents the data needed to create a ticket
type TicketCreateRequest struct {
	EventID     int    `json:"event"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Quantity    int    `json:"quantity"`
	Sold        int    `json:"sold"`
	IsSoldOut   bool   `json:"isSoldOut"`
}

// TicketUpdateRequest represents a ticket patch. Nil pointers mean "leave
// unchanged". Sold is present only so the service can reject patches that
// try to set it.
type TicketUpdateRequest struct {
	EventID     *int    `json:"event"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Quantity    *int    `json:"quantity"`
	Sold        *int    `json:"sold"`
	IsSoldOut   *bool   `json:"isSoldOut"`
}

// Validate validates the ticket creation data. Name, description, event and
// a non-zero quantity are all required.
func (req *TicketCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		req.EventID == 0 ||
		req.Quantity == 0 {
		return NewValidationError("fieldsRequired")
	}
	if req.Quantity < 0 || req.Price < 0 || req.Sold < 0 {
		return NewValidationError("fieldsRequired")
	}
	return nil
}
