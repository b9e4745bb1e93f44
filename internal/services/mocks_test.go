package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"event-booking-api/internal/models"
	"event-booking-api/internal/repositories"
)

// Map-backed mock repositories shared by the service tests. Each mock can be
// told to fail a named operation to exercise error paths.

type mockTicketRepository struct {
	tickets       map[int]*models.Ticket
	nextID        int
	shouldFailOps map[string]bool
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{
		tickets:       make(map[int]*models.Ticket),
		nextID:        1,
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockTicketRepository) Create(req *models.TicketCreateRequest, slug string) (*models.Ticket, error) {
	if m.shouldFailOps["Create"] {
		return nil, errors.New("mock error")
	}

	ticket := &models.Ticket{
		ID:          m.nextID,
		EventID:     req.EventID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Sold:        req.Sold,
		IsSoldOut:   req.IsSoldOut,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.tickets[ticket.ID] = ticket
	m.nextID++

	copy := *ticket
	return &copy, nil
}

func (m *mockTicketRepository) GetByID(id int) (*models.Ticket, error) {
	if m.shouldFailOps["GetByID"] {
		return nil, errors.New("mock error")
	}
	ticket, exists := m.tickets[id]
	if !exists {
		return nil, models.ErrTicketNotFound
	}
	copy := *ticket
	return &copy, nil
}

func (m *mockTicketRepository) Update(ticket *models.Ticket) (*models.Ticket, error) {
	if m.shouldFailOps["Update"] {
		return nil, errors.New("mock error")
	}
	if _, exists := m.tickets[ticket.ID]; !exists {
		return nil, models.ErrTicketNotFound
	}
	stored := *ticket
	stored.UpdatedAt = time.Now()
	m.tickets[ticket.ID] = &stored

	copy := stored
	return &copy, nil
}

func (m *mockTicketRepository) Delete(id int) error {
	if m.shouldFailOps["Delete"] {
		return errors.New("mock error")
	}
	if _, exists := m.tickets[id]; !exists {
		return models.ErrTicketNotFound
	}
	delete(m.tickets, id)
	return nil
}

func (m *mockTicketRepository) DeleteByEvent(eventID int) (int, error) {
	if m.shouldFailOps["DeleteByEvent"] {
		return 0, errors.New("mock error")
	}
	count := 0
	for id, ticket := range m.tickets {
		if ticket.EventID == eventID {
			delete(m.tickets, id)
			count++
		}
	}
	return count, nil
}

func (m *mockTicketRepository) GetByEvent(eventID int) ([]*models.Ticket, error) {
	if m.shouldFailOps["GetByEvent"] {
		return nil, errors.New("mock error")
	}
	return m.collect(func(t *models.Ticket) bool { return t.EventID == eventID }), nil
}

func (m *mockTicketRepository) GetByEventIDs(eventIDs []int) ([]*models.Ticket, error) {
	if m.shouldFailOps["GetByEventIDs"] {
		return nil, errors.New("mock error")
	}
	wanted := make(map[int]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}
	return m.collect(func(t *models.Ticket) bool { return wanted[t.EventID] }), nil
}

func (m *mockTicketRepository) Query(opts repositories.QueryOptions) ([]*models.Ticket, error) {
	if m.shouldFailOps["Query"] {
		return nil, errors.New("mock error")
	}
	all := m.collect(func(*models.Ticket) bool { return true })
	return paginate(all, opts), nil
}

func (m *mockTicketRepository) collect(match func(*models.Ticket) bool) []*models.Ticket {
	var result []*models.Ticket
	for _, ticket := range m.tickets {
		if match(ticket) {
			copy := *ticket
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type mockEventRepository struct {
	events        map[int]*models.Event
	nextID        int
	shouldFailOps map[string]bool
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{
		events:        make(map[int]*models.Event),
		nextID:        1,
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockEventRepository) Create(req *models.EventCreateRequest, slug string, createdBy int) (*models.Event, error) {
	if m.shouldFailOps["Create"] {
		return nil, errors.New("mock error")
	}

	event := &models.Event{
		ID:            m.nextID,
		Title:         req.Title,
		Slug:          slug,
		Description:   req.Description,
		Venue:         req.Venue,
		ImageURL:      req.ImageURL,
		Date:          req.Date,
		Town:          req.Town,
		OpenTime:      req.OpenTime,
		StartingPrice: req.StartingPrice,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.events[event.ID] = event
	m.nextID++

	copy := *event
	return &copy, nil
}

func (m *mockEventRepository) GetByID(id int) (*models.Event, error) {
	if m.shouldFailOps["GetByID"] {
		return nil, errors.New("mock error")
	}
	event, exists := m.events[id]
	if !exists {
		return nil, models.ErrEventNotFound
	}
	copy := *event
	return &copy, nil
}

func (m *mockEventRepository) Update(event *models.Event) (*models.Event, error) {
	if m.shouldFailOps["Update"] {
		return nil, errors.New("mock error")
	}
	if _, exists := m.events[event.ID]; !exists {
		return nil, models.ErrEventNotFound
	}
	stored := *event
	stored.UpdatedAt = time.Now()
	m.events[event.ID] = &stored

	copy := stored
	return &copy, nil
}

func (m *mockEventRepository) Delete(id int) error {
	if m.shouldFailOps["Delete"] {
		return errors.New("mock error")
	}
	if _, exists := m.events[id]; !exists {
		return models.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) Query(opts repositories.QueryOptions) ([]*models.Event, error) {
	if m.shouldFailOps["Query"] {
		return nil, errors.New("mock error")
	}
	var all []*models.Event
	for _, event := range m.events {
		copy := *event
		all = append(all, &copy)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, opts), nil
}

type mockUserRepository struct {
	users         map[int]*models.User
	passwords     map[int]string          // user ID -> password hash
	tokens        map[int]map[string]bool // user ID -> active token hashes
	nextID        int
	shouldFailOps map[string]bool
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:         make(map[int]*models.User),
		passwords:     make(map[int]string),
		tokens:        make(map[int]map[string]bool),
		nextID:        1,
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockUserRepository) Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error) {
	if m.shouldFailOps["Create"] {
		return nil, errors.New("mock error")
	}

	email := strings.ToLower(req.Email)
	for _, existing := range m.users {
		if existing.Email == email {
			return nil, models.ErrDuplicateEmail
		}
	}

	user := &models.User{
		ID:           m.nextID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Age:          req.Age,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	m.passwords[user.ID] = passwordHash
	m.tokens[user.ID] = make(map[string]bool)
	m.nextID++

	copy := *user
	return &copy, nil
}

func (m *mockUserRepository) GetByID(id int) (*models.User, error) {
	if m.shouldFailOps["GetByID"] {
		return nil, errors.New("mock error")
	}
	user, exists := m.users[id]
	if !exists {
		return nil, models.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*models.User, error) {
	if m.shouldFailOps["GetByEmail"] {
		return nil, errors.New("mock error")
	}
	email = strings.ToLower(email)
	for _, user := range m.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserRepository) Update(id int, req *models.UserUpdateRequest, passwordHash *string) (*models.User, error) {
	if m.shouldFailOps["Update"] {
		return nil, errors.New("mock error")
	}
	user, exists := m.users[id]
	if !exists {
		return nil, models.ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
		m.passwords[id] = *passwordHash
	}
	user.UpdatedAt = time.Now()

	copy := *user
	return &copy, nil
}

func (m *mockUserRepository) Delete(id int) error {
	if m.shouldFailOps["Delete"] {
		return errors.New("mock error")
	}
	if _, exists := m.users[id]; !exists {
		return models.ErrUserNotFound
	}
	delete(m.users, id)
	delete(m.passwords, id)
	delete(m.tokens, id)
	return nil
}

func (m *mockUserRepository) CreateToken(userID int, tokenHash string) error {
	if m.shouldFailOps["CreateToken"] {
		return errors.New("mock error")
	}
	if m.tokens[userID] == nil {
		m.tokens[userID] = make(map[string]bool)
	}
	m.tokens[userID][tokenHash] = true
	return nil
}

func (m *mockUserRepository) GetByIDAndToken(userID int, tokenHash string) (*models.User, error) {
	if m.shouldFailOps["GetByIDAndToken"] {
		return nil, errors.New("mock error")
	}
	if !m.tokens[userID][tokenHash] {
		return nil, models.ErrUserNotFound
	}
	return m.GetByID(userID)
}

func (m *mockUserRepository) DeleteToken(userID int, tokenHash string) error {
	if m.shouldFailOps["DeleteToken"] {
		return errors.New("mock error")
	}
	if !m.tokens[userID][tokenHash] {
		return models.ErrTokenNotFound
	}
	delete(m.tokens[userID], tokenHash)
	return nil
}

func (m *mockUserRepository) DeleteUserTokens(userID int) error {
	if m.shouldFailOps["DeleteUserTokens"] {
		return errors.New("mock error")
	}
	m.tokens[userID] = make(map[string]bool)
	return nil
}

func (m *mockUserRepository) tokenCount(userID int) int {
	return len(m.tokens[userID])
}

type mockCheckoutRepository struct {
	checkouts     map[int]*models.Checkout
	nextID        int
	shouldFailOps map[string]bool
}

func newMockCheckoutRepository() *mockCheckoutRepository {
	return &mockCheckoutRepository{
		checkouts:     make(map[int]*models.Checkout),
		nextID:        1,
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockCheckoutRepository) Create(checkout *models.Checkout) (*models.Checkout, error) {
	if m.shouldFailOps["Create"] {
		return nil, errors.New("mock error")
	}

	stored := *checkout
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	for i, item := range stored.Items {
		item.ID = i + 1
		item.CheckoutID = stored.ID
	}
	m.checkouts[stored.ID] = &stored
	m.nextID++

	copy := stored
	return &copy, nil
}

func (m *mockCheckoutRepository) GetByID(id int) (*models.Checkout, error) {
	if m.shouldFailOps["GetByID"] {
		return nil, errors.New("mock error")
	}
	checkout, exists := m.checkouts[id]
	if !exists {
		return nil, models.ErrCheckoutNotFound
	}
	copy := *checkout
	return &copy, nil
}

// paginate applies the query options' window to an already-sorted slice
func paginate[T any](items []T, opts repositories.QueryOptions) []T {
	start := opts.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + opts.Limit
	if opts.Limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
