package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"event-booking-api/internal/models"
)

// eventColumns whitelists the queryable fields of the events collection and
// maps them to their SQL columns.
var eventColumns = map[string]string{
	"id":            "id",
	"title":         "title",
	"slug":          "slug",
	"description":   "description",
	"venue":         "venue",
	"imageUrl":      "image_url",
	"date":          "event_date",
	"town":          "town",
	"openTime":      "open_time",
	"startingPrice": "starting_price",
	"createdBy":     "created_by",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

const eventSelectClause = `SELECT id, title, slug, description, venue, image_url, event_date, town, open_time, starting_price, created_by, created_at, updated_at`

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(req *models.EventCreateRequest, slug string, createdBy int) (*models.Event, error) {
	query := `
		INSERT INTO events (title, slug, description, venue, image_url, event_date, town, open_time, starting_price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id, title, slug, description, venue, image_url, event_date, town, open_time, starting_price, created_by, created_at, updated_at`

	row := r.db.QueryRow(
		query,
		req.Title,
		slug,
		req.Description,
		req.Venue,
		req.ImageURL,
		req.Date,
		req.Town,
		req.OpenTime,
		req.StartingPrice,
		createdBy,
		time.Now(),
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	query := eventSelectClause + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// Update writes the mutable columns of an already-loaded event back to the
// database. The caller owns slug recomputation.
func (r *EventRepository) Update(event *models.Event) (*models.Event, error) {
	query := `
		UPDATE events
		SET title = $1, slug = $2, description = $3, venue = $4, image_url = $5,
		    event_date = $6, town = $7, open_time = $8, starting_price = $9, updated_at = $10
		WHERE id = $11
		RETURNING id, title, slug, description, venue, image_url, event_date, town, open_time, starting_price, created_by, created_at, updated_at`

	row := r.db.QueryRow(
		query,
		event.Title,
		event.Slug,
		event.Description,
		event.Venue,
		event.ImageURL,
		event.Date,
		event.Town,
		event.OpenTime,
		event.StartingPrice,
		time.Now(),
		event.ID,
	)

	updated, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

// Delete removes an event. Its tickets must already be gone; ticket cleanup
// is orchestrated by the event service, not by the database.
func (r *EventRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.ErrEventNotFound
	}
	return nil
}

// Query runs the generic resource query pipeline over the events collection
func (r *EventRepository) Query(opts QueryOptions) ([]*models.Event, error) {
	query, args := buildListQuery(eventSelectClause, "events", eventColumns, opts)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// rowScanner lets scanEvent work for both QueryRow and Query results
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var (
		eventDate sql.NullTime
		openTime  sql.NullTime
		createdBy sql.NullInt64
	)

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Venue,
		&event.ImageURL,
		&eventDate,
		&event.Town,
		&openTime,
		&event.StartingPrice,
		&createdBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if eventDate.Valid {
		event.Date = &eventDate.Time
	}
	if openTime.Valid {
		event.OpenTime = &openTime.Time
	}
	if createdBy.Valid {
		event.CreatedBy = int(createdBy.Int64)
	}
	return event, nil
}
