package main

import (
	"fmt"
	"log"
	"net/http"

	"event-booking-api/internal/config"
	"event-booking-api/internal/database"
	"event-booking-api/internal/handlers"
	"event-booking-api/internal/middleware"
	"event-booking-api/internal/repositories"
	"event-booking-api/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
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
	log.Println("Database connection established successfully")

	// Run pending migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)
	checkoutRepo := repositories.NewCheckoutRepository(db.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.Auth)
	ticketService := services.NewTicketService(ticketRepo, eventRepo)
	eventService := services.NewEventService(eventRepo, ticketService)
	checkoutService := services.NewCheckoutService(checkoutRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	healthHandler := handlers.NewHealthHandler(db.DB)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(middleware.SecurityHeadersMiddleware)

	r.Get("/healthz", healthHandler.Health)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Signup)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/logout", userHandler.Logout)
			r.Post("/logoutAll", userHandler.LogoutAll)
			r.Get("/me", userHandler.GetMe)
			r.Patch("/me", userHandler.UpdateMe)
			r.Delete("/me", userHandler.DeleteMe)
			r.Get("/{id}", userHandler.GetUser)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.ListEvents)
		r.Get("/{id}", eventHandler.GetEvent)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", eventHandler.CreateEvent)
			r.Post("/ticket/{eventId}", eventHandler.AddEventTicket)
			r.Patch("/{id}", eventHandler.UpdateEvent)
			r.Delete("/{id}", eventHandler.DeleteEvent)
		})
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", ticketHandler.ListTickets)
		r.Get("/{id}", ticketHandler.GetTicket)
		r.Post("/", ticketHandler.CreateTicket)
		r.Patch("/{id}", ticketHandler.UpdateTicket)
		r.Delete("/{id}", ticketHandler.DeleteTicket)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/checkout", checkoutHandler.CreateCheckout)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
