package services

import (
	"errors"
	"net/http"
	"testing"

	"event-booking-api/internal/models"
	"event-booking-api/internal/repositories"
)

func newTicketServiceForTest(t *testing.T) (*TicketService, *mockTicketRepository, *mockEventRepository) {
	t.Helper()
	ticketRepo := newMockTicketRepository()
	eventRepo := newMockEventRepository()
	return NewTicketService(ticketRepo, eventRepo), ticketRepo, eventRepo
}

func seedEvent(t *testing.T, eventRepo *mockEventRepository) *models.Event {
	t.Helper()
	event, err := eventRepo.Create(&models.EventCreateRequest{
		Title:       "Summer Sound Festival",
		Description: "Two stages of live music",
		Venue:       "Harbourside Park",
	}, "summer-sound-festival", 1)
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return event
}

func assertAppError(t *testing.T, err error, wantStatus int, wantMessage string) {
	t.Helper()
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v, want an AppError", err)
	}
	if appErr.StatusCode != wantStatus || appErr.Message != wantMessage {
		t.Errorf("AppError = %d %q, want %d %q", appErr.StatusCode, appErr.Message, wantStatus, wantMessage)
	}
}

func TestTicketService_CreateTicket(t *testing.T) {
	service, _, eventRepo := newTicketServiceForTest(t)
	event := seedEvent(t, eventRepo)

	ticket, err := service.CreateTicket(&models.TicketCreateRequest{
		EventID:     event.ID,
		Name:        "General Admission",
		Description: "Standing, both stages",
		Price:       2500,
		Quantity:    100,
	})
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}

	if ticket.Slug != "general-admission" {
		t.Errorf("Slug = %q, want %q", ticket.Slug, "general-admission")
	}
	if ticket.Sold != 0 || ticket.IsSoldOut {
		t.Errorf("new ticket sold/soldOut = %d/%v, want 0/false", ticket.Sold, ticket.IsSoldOut)
	}
	if ticket.EventID != event.ID {
		t.Errorf("EventID = %d, want %d", ticket.EventID, event.ID)
	}
}

func TestTicketService_CreateTicket_MissingEvent(t *testing.T) {
	service, _, _ := newTicketServiceForTest(t)

	_, err := service.CreateTicket(&models.TicketCreateRequest{
		EventID:     99,
		Name:        "General Admission",
		Description: "Standing",
		Quantity:    100,
	})
	assertAppError(t, err, http.StatusNotFound, "noEventFound")
}

func TestTicketService_CreateTicket_Validation(t *testing.T) {
	service, _, _ := newTicketServiceForTest(t)

	_, err := service.CreateTicket(&models.TicketCreateRequest{EventID: 1})
	assertAppError(t, err, http.StatusBadRequest, "fieldsRequired")
}

func TestTicketService_UpdateTicketDetails_SoldPatchRejected(t *testing.T) {
	service, ticketRepo, eventRepo := newTicketServiceForTest(t)
	event := seedEvent(t, eventRepo)

	ticket, err := service.CreateTicket(&models.TicketCreateRequest{
		EventID: event.ID, Name: "GA", Description: "Standing", Quantity: 100,
	})
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}

	sold := 10
	_, err = service.UpdateTicketDetails(ticket.ID, &models.TicketUpdateRequest{Sold: &sold})
	assertAppError(t, err, http.StatusUnauthorized, "salesUpdateNotPermitted")

	stored, _ := ticketRepo.GetByID(ticket.ID)
	if stored.Sold != 0 {
		t.Errorf("ticket changed by rejected patch: sold = %d, want 0", stored.Sold)
	}
}

func TestTicketService_UpdateTicketDetails_QuantityBelowSold(t *testing.T) {
	service, ticketRepo, eventRepo := newTicketServiceForTest(t)
	event := seedEvent(t, eventRepo)

	ticket, err := service.CreateTicket(&models.TicketCreateRequest{
		EventID: event.ID, Name: "GA", Description: "Standing", Quantity: 10, Sold: 5,
	})
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}

	quantity := 3
	_, err = service.UpdateTicketDetails(ticket.ID, &models.TicketUpdateRequest{Quantity: &quantity})
	assertAppError(t, err, http.StatusUnauthorized, "quantityLessThanSales")

	stored, _ := ticketRepo.GetByID(ticket.ID)
	if stored.Quantity != 10 {
		t.Errorf("ticket changed by rejected patch: quantity = %d, want 10", stored.Quantity)
	}
}

func TestTicketService_UpdateTicketDetails_SoldOutDerivation(t *testing.T) {
	service, _, eventRepo := newTicketServiceForTest(t)
	event := seedEvent(t, eventRepo)

	ticket, err := service.CreateTicket(&models.TicketCreateRequest{
		EventID: event.ID, Name: "GA", Description: "Standing", Quantity: 10, Sold: 5,
	})
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}

	// Lowering quantity to the sold count flips the flag on.
	quantity := 5
	updated, err := service.UpdateTicketDetails(ticket.ID, &models.TicketUpdateRequest{Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateTicketDetails() error = %v", err)
	}
	if !updated.IsSoldOut {
		t.Error("quantity == sold did not mark the ticket sold out")
	}

	// Raising quantity overrides any explicit isSoldOut in the same patch.
	quantity = 20
	soldOut := true
	updated, err = service.UpdateTicketDetails(ticket.ID, &models.TicketUpdateRequest{
		Quantity: &quantity, IsSoldOut: &soldOut,
	})
	if err != nil {
		t.Fatalf("UpdateTicketDetails() error = %v", err)
	}
	if updated.IsSoldOut {
		t.Error("derived sold-out did not win over the explicit patch value")
	}
}

func TestTicketService_UpdateTicketDetails_NamePatchRecomputesSlug(t *testing.T) {
	service, _, eventRepo := newTicketServiceForTest(t)
	event := seedEvent(t, eventRepo)

	ticket, err := service.CreateTicket(&models.TicketCreateRequest{
		EventID: event.ID, Name: "GA", Description: "Standing", Quantity: 10,
	})
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}

	name := "Early Bird VIP"
	updated, err := service.UpdateTicketDetails(ticket.ID, &models.TicketUpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateTicketDetails() error = %v", err)
	}
	if updated.Slug != "early-bird-vip" {
		t.Errorf("Slug = %q, want %q", updated.Slug, "early-bird-vip")
	}
}

func TestTicketService_UpdateTicketDetails_NotFound(t *testing.T) {
	service, _, _ := newTicketServiceForTest(t)

	name := "GA"
	_, err := service.UpdateTicketDetails(42, &models.TicketUpdateRequest{Name: &name})
	assertAppError(t, err, http.StatusNotFound, "noTicketFound")
}

func TestTicketService_DeleteTicket(t *testing.T) {
	service, ticketRepo, eventRepo := newTicketServiceForTest(t)
	event := seedEvent(t, eventRepo)

	ticket, err := service.CreateTicket(&models.TicketCreateRequest{
		EventID: event.ID, Name: "GA", Description: "Standing", Quantity: 10,
	})
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}

	deleted, err := service.DeleteTicket(ticket.ID)
	if err != nil {
		t.Fatalf("DeleteTicket() error = %v", err)
	}
	if deleted.ID != ticket.ID || deleted.Name != "GA" {
		t.Errorf("DeleteTicket() returned %+v, want the prior state", deleted)
	}

	if _, err := ticketRepo.GetByID(ticket.ID); !errors.Is(err, models.ErrTicketNotFound) {
		t.Error("ticket still present after delete")
	}
}

func TestTicketService_DeleteTicket_NotFound(t *testing.T) {
	service, _, _ := newTicketServiceForTest(t)

	_, err := service.DeleteTicket(42)
	assertAppError(t, err, http.StatusNotFound, "noTicketFound")
}

func TestTicketService_QueryTickets_EmptyResult(t *testing.T) {
	service, _, _ := newTicketServiceForTest(t)

	tickets, err := service.QueryTickets(repositories.QueryOptions{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("QueryTickets() error = %v", err)
	}
	if tickets == nil {
		t.Error("QueryTickets() returned nil, want an empty slice")
	}
	if len(tickets) != 0 {
		t.Errorf("QueryTickets() returned %d tickets, want 0", len(tickets))
	}
}

func TestTicketService_QueryTickets_PaginationWindow(t *testing.T) {
	service, _, eventRepo := newTicketServiceForTest(t)
	event := seedEvent(t, eventRepo)

	for i := 0; i < 12; i++ {
		_, err := service.CreateTicket(&models.TicketCreateRequest{
			EventID: event.ID, Name: "Tier", Description: "Seated", Quantity: 10,
		})
		if err != nil {
			t.Fatalf("CreateTicket() error = %v", err)
		}
	}

	tickets, err := service.QueryTickets(repositories.QueryOptions{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("QueryTickets() error = %v", err)
	}
	if len(tickets) != 5 {
		t.Fatalf("page 2 returned %d tickets, want 5", len(tickets))
	}
	if tickets[0].ID != 6 || tickets[4].ID != 10 {
		t.Errorf("page 2 window = ids %d..%d, want 6..10", tickets[0].ID, tickets[4].ID)
	}
}
