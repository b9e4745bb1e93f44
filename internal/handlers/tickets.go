package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"event-booking-api/internal/models"
	"event-booking-api/internal/repositories"
	"event-booking-api/internal/services"
)

// TicketHandler handles the ticket endpoints
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// ListTickets handles GET /tickets with the full query pipeline
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	opts := repositories.ParseQueryOptions(r.URL.Query())

	tickets, err := h.ticketService.QueryTickets(opts)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulTicketsFound", "tickets", filterFields(tickets, opts.Select))
}

// GetTicket handles GET /tickets/{id}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noTicketFound"))
		return
	}

	ticket, err := h.ticketService.GetTicket(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulTicketFound", "ticket", ticket)
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.TicketCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ticket, err := h.ticketService.CreateTicket(&req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "successfulTicketCreate", "ticket", ticket)
}

// UpdateTicket handles PATCH /tickets/{id}
func (h *TicketHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noTicketFound"))
		return
	}

	var req models.TicketUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ticket, err := h.ticketService.UpdateTicketDetails(id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulTicketUpdate", "ticket", ticket)
}

// DeleteTicket handles DELETE /tickets/{id} and returns the ticket's prior
// state.
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noTicketFound"))
		return
	}

	ticket, err := h.ticketService.DeleteTicket(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "successfulTicketDelete", "ticket", ticket)
}
