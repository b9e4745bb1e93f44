package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"event-booking-api/internal/models"
)

// CheckoutRepository handles checkout data operations
type CheckoutRepository struct {
	db *sql.DB
}

// NewCheckoutRepository creates a new checkout repository
func NewCheckoutRepository(db *sql.DB) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

// Create persists a checkout and its items in one transaction
func (r *CheckoutRepository) Create(checkout *models.Checkout) (*models.Checkout, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO checkouts (email, total_price, total_quantity, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = tx.QueryRow(
		query,
		checkout.Email,
		checkout.TotalPrice,
		checkout.TotalQuantity,
		time.Now(),
	).Scan(&checkout.ID, &checkout.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	itemQuery := `
		INSERT INTO checkout_items (checkout_id, ticket_id, total_ticket_quantity, total_ticket_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for _, item := range checkout.Items {
		item.CheckoutID = checkout.ID
		if err := tx.QueryRow(
			itemQuery,
			item.CheckoutID,
			item.TicketID,
			item.TotalTicketQuantity,
			item.TotalTicketPrice,
		).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to create checkout item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return checkout, nil
}

// GetByID retrieves a checkout with its items
func (r *CheckoutRepository) GetByID(id int) (*models.Checkout, error) {
	query := `
		SELECT id, email, total_price, total_quantity, created_at
		FROM checkouts
		WHERE id = $1`

	checkout := &models.Checkout{}
	err := r.db.QueryRow(query, id).Scan(
		&checkout.ID,
		&checkout.Email,
		&checkout.TotalPrice,
		&checkout.TotalQuantity,
		&checkout.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrCheckoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, checkout_id, ticket_id, total_ticket_quantity, total_ticket_price
		FROM checkout_items
		WHERE checkout_id = $1
		ORDER BY id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.CheckoutItem{}
		if err := rows.Scan(
			&item.ID,
			&item.CheckoutID,
			&item.TicketID,
			&item.TotalTicketQuantity,
			&item.TotalTicketPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checkout item: %w", err)
		}
		checkout.Items = append(checkout.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checkout items: %w", err)
	}

	return checkout, nil
}
