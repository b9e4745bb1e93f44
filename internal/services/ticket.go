package services

import (
	"errors"

	"github.com/gosimple/slug"

	"event-booking-api/internal/models"
	"event-booking-api/internal/repositories"
)

// TicketRepository interface for ticket data operations
type TicketRepository interface {
	Create(req *models.TicketCreateRequest, slug string) (*models.Ticket, error)
	GetByID(id int) (*models.Ticket, error)
	Update(ticket *models.Ticket) (*models.Ticket, error)
	Delete(id int) error
	DeleteByEvent(eventID int) (int, error)
	GetByEvent(eventID int) ([]*models.Ticket, error)
	GetByEventIDs(eventIDs []int) ([]*models.Ticket, error)
	Query(opts repositories.QueryOptions) ([]*models.Ticket, error)
}

// TicketService handles ticket business logic: creation validation, the
// stock invariant (sold <= quantity) and sold-out derivation.
type TicketService struct {
	ticketRepo TicketRepository
	eventRepo  EventRepository
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo TicketRepository, eventRepo EventRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
	}
}

// CreateTicket creates a new ticket for an existing event. Sold and
// sold-out default to zero/false unless the caller provides them.
func (s *TicketService) CreateTicket(req *models.TicketCreateRequest) (*models.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.eventRepo.GetByID(req.EventID); err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, models.NewNotFoundError("noEventFound")
		}
		return nil, err
	}

	ticket, err := s.ticketRepo.Create(req, slug.Make(req.Name))
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetTicket retrieves a single ticket
func (s *TicketService) GetTicket(id int) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			return nil, models.NewNotFoundError("noTicketFound")
		}
		return nil, err
	}
	return ticket, nil
}

// QueryTickets runs the resource query pipeline over tickets. An empty
// result is returned as an empty list, not an error.
func (s *TicketService) QueryTickets(opts repositories.QueryOptions) ([]*models.Ticket, error) {
	tickets, err := s.ticketRepo.Query(opts)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}

// UpdateTicketDetails applies a ticket patch. Sold is a derived field owned
// by the sale path and cannot be patched; quantity can never drop below the
// current sold count; sold-out is recomputed whenever quantity changes.
func (s *TicketService) UpdateTicketDetails(id int, req *models.TicketUpdateRequest) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			return nil, models.NewNotFoundError("noTicketFound")
		}
		return nil, err
	}

	if req.Sold != nil {
		return nil, models.NewForbiddenError("salesUpdateNotPermitted")
	}
	if req.Quantity != nil && *req.Quantity < ticket.Sold {
		return nil, models.NewInvalidStateError("quantityLessThanSales")
	}

	if req.EventID != nil && *req.EventID != ticket.EventID {
		if _, err := s.eventRepo.GetByID(*req.EventID); err != nil {
			if errors.Is(err, models.ErrEventNotFound) {
				return nil, models.NewNotFoundError("noEventFound")
			}
			return nil, err
		}
		ticket.EventID = *req.EventID
	}
	if req.Name != nil {
		ticket.Name = *req.Name
		ticket.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Price != nil {
		ticket.Price = *req.Price
	}
	if req.IsSoldOut != nil {
		ticket.IsSoldOut = *req.IsSoldOut
	}
	if req.Quantity != nil {
		ticket.Quantity = *req.Quantity
		ticket.IsSoldOut = ticket.Sold >= ticket.Quantity
	}

	updated, err := s.ticketRepo.Update(ticket)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTicket removes a ticket from its event's ticket set and deletes it,
// returning the ticket's prior state.
func (s *TicketService) DeleteTicket(id int) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			return nil, models.NewNotFoundError("noTicketFound")
		}
		return nil, err
	}

	if err := s.ticketRepo.Delete(id); err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetEventTickets returns an event's ticket set
func (s *TicketService) GetEventTickets(eventID int) ([]*models.Ticket, error) {
	return s.ticketRepo.GetByEvent(eventID)
}

// GetTicketsByEvents returns the tickets of several events in one call
func (s *TicketService) GetTicketsByEvents(eventIDs []int) ([]*models.Ticket, error) {
	return s.ticketRepo.GetByEventIDs(eventIDs)
}

// DeleteEventTickets removes every ticket of an event
func (s *TicketService) DeleteEventTickets(eventID int) (int, error) {
	return s.ticketRepo.DeleteByEvent(eventID)
}
