package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Event represents an event listing. An event exclusively owns its tickets:
// deleting the event deletes every ticket that references it.
type Event struct {
	ID            int        `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Description   string     `json:"description" db:"description"`
	Venue         string     `json:"venue" db:"venue"`
	ImageURL      string     `json:"imageUrl" db:"image_url"`
	Date          *time.Time `json:"date" db:"event_date"`
	Town          string     `json:"town" db:"town"`
	OpenTime      *time.Time `json:"openTime" db:"open_time"`
	StartingPrice int        `json:"startingPrice" db:"starting_price"`
	CreatedBy     int        `json:"createdBy" db:"created_by"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`

	// Related data
	Tickets []*Ticket `json:"tickets"`
}

// EventCreateRequest represents the data needed to create an event. Tickets
// may carry inline ticket definitions that are created together with the
// event.
type EventCreateRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Venue         string                `json:"venue"`
	ImageURL      string                `json:"imageUrl"`
	Date          *time.Time            `json:"date"`
	Town          string                `json:"town"`
	OpenTime      *time.Time            `json:"openTime"`
	StartingPrice int                   `json:"startingPrice"`
	Tickets       []TicketCreateRequest `json:"tickets"`
}

// EventUpdateRequest represents an event patch. Nil pointers mean "leave
// unchanged". Tickets is captured raw so the service can reject any patch
// that tries to rewrite ticket membership directly.
type EventUpdateRequest struct {
	Title         *string         `json:"title"`
	Description   *string         `json:"description"`
	Venue         *string         `json:"venue"`
	ImageURL      *string         `json:"imageUrl"`
	Date          *time.Time      `json:"date"`
	Town          *string         `json:"town"`
	OpenTime      *time.Time      `json:"openTime"`
	StartingPrice *int            `json:"startingPrice"`
	Tickets       json.RawMessage `json:"tickets"`
}

// Validate validates the event creation data. Title, description and venue
// are required; all three report the same message key.
func (req *EventCreateRequest) Validate() error {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return NewValidationError("fieldsRequired")
	}
	if strings.TrimSpace(req.Venue) == "" {
		return NewValidationError("fieldsRequired")
	}
	return nil
}
