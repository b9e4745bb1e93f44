package main

import (
	"fmt"
	"log"
	"time"

	"event-booking-api/internal/config"
	"event-booking-api/internal/database"
	"event-booking-api/internal/models"
	"event-booking-api/internal/repositories"
	"event-booking-api/internal/services"
)

const seedEmail = "organizer@example.com"

func main() {
	fmt.Println("Seeding sample events...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories and services
	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)

	authService := services.NewAuthService(userRepo, cfg.Auth)
	ticketService := services.NewTicketService(ticketRepo, eventRepo)
	eventService := services.NewEventService(eventRepo, ticketService)

	// Find or create the seed organizer
	user, err := userRepo.GetByEmail(seedEmail)
	if err != nil {
		fmt.Printf("User not found, creating %s...\n", seedEmail)

		resp, err := authService.Signup(&models.UserCreateRequest{
			Name:     "Seed Organizer",
			Email:    seedEmail,
			Password: "seedpass1",
			Age:      30,
		})
		if err != nil {
			log.Fatal("Failed to create seed user:", err)
		}
		user = resp.User
		fmt.Printf("Created user %s (id=%d)\n", user.Email, user.ID)
	} else {
		fmt.Printf("Found existing user %s (id=%d)\n", user.Email, user.ID)
	}

	now := time.Now()
	events := []*models.EventCreateRequest{
		{
			Title:         "Summer Sound Festival",
			Description:   "Two stages of live music on the waterfront.",
			Venue:         "Harbourside Park",
			Town:          "Brighton",
			Date:          timePtr(now.AddDate(0, 1, 0)),
			OpenTime:      timePtr(now.AddDate(0, 1, 0).Add(-2 * time.Hour)),
			StartingPrice: 2500,
			Tickets: []models.TicketCreateRequest{
				{Name: "General Admission", Description: "Standing, both stages", Price: 2500, Quantity: 500},
				{Name: "VIP", Description: "Side-stage viewing and lounge access", Price: 7500, Quantity: 50},
			},
		},
		{
			Title:         "Tech Meetup: Distributed Systems",
			Description:   "Talks and pizza, doors at six.",
			Venue:         "The Old Print Works",
			Town:          "Leeds",
			Date:          timePtr(now.AddDate(0, 0, 14)),
			StartingPrice: 0,
			Tickets: []models.TicketCreateRequest{
				{Name: "Free Entry", Description: "First come, first served", Price: 0, Quantity: 120},
			},
		},
		{
			Title:         "Winter Comedy Gala",
			Description:   "A full evening of stand-up for charity.",
			Venue:         "Regent Theatre",
			Town:          "Manchester",
			Date:          timePtr(now.AddDate(0, 3, 0)),
			StartingPrice: 1800,
			Tickets: []models.TicketCreateRequest{
				{Name: "Stalls", Description: "Seated, ground floor", Price: 1800, Quantity: 300},
				{Name: "Balcony", Description: "Seated, upper level", Price: 1200, Quantity: 150},
			},
		},
	}

	for _, req := range events {
		event, err := eventService.CreateEvent(req, user.ID)
		if err != nil {
			log.Fatalf("Failed to seed event %q: %v", req.Title, err)
		}
		fmt.Printf("Created event %q (id=%d, %d tickets)\n", event.Title, event.ID, len(event.Tickets))
	}

	fmt.Println("Seeding complete.")
}

func timePtr(t time.Time) *time.Time {
	return &t
}
