package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"event-booking-api/internal/models"
)

// ticketColumns whitelists the queryable fields of the tickets collection
var ticketColumns = map[string]string{
	"id":          "id",
	"event":       "event_id",
	"name":        "name",
	"slug":        "slug",
	"description": "description",
	"price":       "price",
	"quantity":    "quantity",
	"sold":        "sold",
	"isSoldOut":   "is_sold_out",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

const ticketSelectClause = `SELECT id, event_id, name, slug, description, price, quantity, sold, is_sold_out, created_at, updated_at`

// TicketRepository handles ticket data operations
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create creates a new ticket
func (r *TicketRepository) Create(req *models.TicketCreateRequest, slug string) (*models.Ticket, error) {
	query := `
		INSERT INTO tickets (event_id, name, slug, description, price, quantity, sold, is_sold_out, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id, event_id, name, slug, description, price, quantity, sold, is_sold_out, created_at, updated_at`

	row := r.db.QueryRow(
		query,
		req.EventID,
		req.Name,
		slug,
		req.Description,
		req.Price,
		req.Quantity,
		req.Sold,
		req.IsSoldOut,
		time.Now(),
	)

	ticket, err := scanTicket(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return ticket, nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(id int) (*models.Ticket, error) {
	query := ticketSelectClause + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

// Update writes the mutable columns of an already-loaded ticket back to the
// database. The caller owns slug and sold-out recomputation.
func (r *TicketRepository) Update(ticket *models.Ticket) (*models.Ticket, error) {
	query := `
		UPDATE tickets
		SET event_id = $1, name = $2, slug = $3, description = $4, price = $5,
		    quantity = $6, sold = $7, is_sold_out = $8, updated_at = $9
		WHERE id = $10
		RETURNING id, event_id, name, slug, description, price, quantity, sold, is_sold_out, created_at, updated_at`

	row := r.db.QueryRow(
		query,
		ticket.EventID,
		ticket.Name,
		ticket.Slug,
		ticket.Description,
		ticket.Price,
		ticket.Quantity,
		ticket.Sold,
		ticket.IsSoldOut,
		time.Now(),
		ticket.ID,
	)

	updated, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return updated, nil
}

// Delete removes a ticket. Dropping the row is what removes the ticket from
// its event's ticket set; membership is the foreign key.
func (r *TicketRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM tickets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.ErrTicketNotFound
	}
	return nil
}

// DeleteByEvent removes every ticket referencing an event and reports how
// many were deleted. Used by the event service to cascade an event delete.
func (r *TicketRepository) DeleteByEvent(eventID int) (int, error) {
	result, err := r.db.Exec("DELETE FROM tickets WHERE event_id = $1", eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete event tickets: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(rows), nil
}

// GetByEvent returns an event's ticket set in insertion order
func (r *TicketRepository) GetByEvent(eventID int) ([]*models.Ticket, error) {
	query := ticketSelectClause + ` FROM tickets WHERE event_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// GetByEventIDs returns the tickets of several events in one query, used to
// attach ticket sets when listing events.
func (r *TicketRepository) GetByEventIDs(eventIDs []int) ([]*models.Ticket, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	query := ticketSelectClause + ` FROM tickets WHERE event_id = ANY($1) ORDER BY id ASC`

	rows, err := r.db.Query(query, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get event tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// Query runs the generic resource query pipeline over the tickets collection
func (r *TicketRepository) Query(opts QueryOptions) ([]*models.Ticket, error) {
	query, args := buildListQuery(ticketSelectClause, "tickets", ticketColumns, opts)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func collectTickets(rows *sql.Rows) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}
	return tickets, nil
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.Name,
		&ticket.Slug,
		&ticket.Description,
		&ticket.Price,
		&ticket.Quantity,
		&ticket.Sold,
		&ticket.IsSoldOut,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
