package services

import (
	"errors"

	"github.com/gosimple/slug"

	"event-booking-api/internal/models"
	"event-booking-api/internal/repositories"
)

// EventRepository interface for event data operations
type EventRepository interface {
	Create(req *models.EventCreateRequest, slug string, createdBy int) (*models.Event, error)
	GetByID(id int) (*models.Event, error)
	Update(event *models.Event) (*models.Event, error)
	Delete(id int) error
	Query(opts repositories.QueryOptions) ([]*models.Event, error)
}

// EventService handles event business logic. An event owns its ticket set:
// ticket membership is only ever changed through AddEventTicket and
// DeleteEvent, never by a direct patch, and deleting an event cascades to
// its tickets here in the service rather than in a database trigger.
type EventService struct {
	eventRepo     EventRepository
	ticketService *TicketService
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository, ticketService *TicketService) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		ticketService: ticketService,
	}
}

// CreateEvent creates an event for an organizer. Inline ticket definitions
// are created one by one after the event itself; the first ticket failure
// short-circuits and is reported verbatim. Tickets created before the
// failing one are not rolled back, matching the documented behavior.
func (s *EventService) CreateEvent(req *models.EventCreateRequest, creatorID int) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Create(req, slug.Make(req.Title), creatorID)
	if err != nil {
		return nil, err
	}

	for _, ticketReq := range req.Tickets {
		ticketReq.EventID = event.ID
		if _, err := s.ticketService.CreateTicket(&ticketReq); err != nil {
			return nil, err
		}
	}

	tickets, err := s.ticketService.GetEventTickets(event.ID)
	if err != nil {
		return nil, err
	}
	event.Tickets = tickets

	return event, nil
}

// GetEvent retrieves an event with its ticket set populated
func (s *EventService) GetEvent(id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, models.NewNotFoundError("noEventFound")
		}
		return nil, err
	}

	tickets, err := s.ticketService.GetEventTickets(id)
	if err != nil {
		return nil, err
	}
	event.Tickets = tickets

	return event, nil
}

// QueryEvents runs the resource query pipeline over events and attaches
// each event's ticket set. An empty result is not an error.
func (s *EventService) QueryEvents(opts repositories.QueryOptions) ([]*models.Event, error) {
	events, err := s.eventRepo.Query(opts)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []*models.Event{}, nil
	}

	ids := make([]int, 0, len(events))
	byID := make(map[int]*models.Event, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
		byID[event.ID] = event
	}

	tickets, err := s.ticketService.GetTicketsByEvents(ids)
	if err != nil {
		return nil, err
	}
	for _, ticket := range tickets {
		if event, ok := byID[ticket.EventID]; ok {
			event.Tickets = append(event.Tickets, ticket)
		}
	}

	return events, nil
}

// UpdateEventDetails applies an event patch. Ticket membership cannot be
// rewritten through a patch; the slug is recomputed from the (possibly new)
// title on every save.
func (s *EventService) UpdateEventDetails(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, models.NewNotFoundError("noEventFound")
		}
		return nil, err
	}

	if len(req.Tickets) > 0 && string(req.Tickets) != "null" {
		return nil, models.NewForbiddenError("ticketUpdateNotPermitted")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.Date != nil {
		event.Date = req.Date
	}
	if req.Town != nil {
		event.Town = *req.Town
	}
	if req.OpenTime != nil {
		event.OpenTime = req.OpenTime
	}
	if req.StartingPrice != nil {
		event.StartingPrice = *req.StartingPrice
	}
	event.Slug = slug.Make(event.Title)

	updated, err := s.eventRepo.Update(event)
	if err != nil {
		return nil, err
	}

	tickets, err := s.ticketService.GetEventTickets(id)
	if err != nil {
		return nil, err
	}
	updated.Tickets = tickets

	return updated, nil
}

// AddEventTicket creates a ticket under an event and returns the event with
// its ticket set reloaded. The event reference in the request body is
// overridden by the path parameter.
func (s *EventService) AddEventTicket(eventID int, req *models.TicketCreateRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, models.NewNotFoundError("noEventFound")
		}
		return nil, err
	}

	req.EventID = eventID
	if _, err := s.ticketService.CreateTicket(req); err != nil {
		return nil, err
	}

	tickets, err := s.ticketService.GetEventTickets(eventID)
	if err != nil {
		return nil, err
	}
	event.Tickets = tickets

	return event, nil
}

// DeleteEvent deletes an event and every ticket referencing it. The ticket
// cleanup runs first so no orphan tickets survive the event.
func (s *EventService) DeleteEvent(id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, models.NewNotFoundError("noEventFound")
		}
		return nil, err
	}

	tickets, err := s.ticketService.GetEventTickets(id)
	if err != nil {
		return nil, err
	}
	event.Tickets = tickets

	if _, err := s.ticketService.DeleteEventTickets(id); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Delete(id); err != nil {
		return nil, err
	}

	return event, nil
}
