package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"event-booking-api/internal/middleware"
	"event-booking-api/internal/models"
	"event-booking-api/internal/repositories"
	"event-booking-api/internal/services"
)

// EventHandler handles the event endpoints
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents handles GET /events with the full query pipeline:
// page, limit, sort, select plus arbitrary field filters.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	opts := repositories.ParseQueryOptions(r.URL.Query())

	events, err := h.eventService.QueryEvents(opts)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulEventsFound", "events", filterFields(events, opts.Select))
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noEventFound"))
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulEventFound", "event", event)
}

// CreateEvent handles POST /events. The body may carry inline ticket
// definitions that are created together with the event.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req models.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	event, err := h.eventService.CreateEvent(&req, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "successfulEventCreate", "event", event)
}

// AddEventTicket handles POST /events/ticket/{eventId}
func (h *EventHandler) AddEventTicket(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventId"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noEventFound"))
		return
	}

	var req models.TicketCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	event, err := h.eventService.AddEventTicket(eventID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulEventUpdate", "event", event)
}

// UpdateEvent handles PATCH /events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noEventFound"))
		return
	}

	var req models.EventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	event, err := h.eventService.UpdateEventDetails(id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulEventUpdate", "event", event)
}

// DeleteEvent handles DELETE /events/{id} and returns the deleted event
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noEventFound"))
		return
	}

	event, err := h.eventService.DeleteEvent(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulTicketDelete", "event", event)
}
