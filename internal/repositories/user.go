package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"event-booking-api/internal/models"
)

// UserRepository handles user and session-token data operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. passwordHash must already be hashed.
func (r *UserRepository) Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, name, email, password_hash, age, created_at, updated_at`

	user := &models.User{}
	err := r.db.QueryRow(
		query,
		req.Name,
		strings.ToLower(strings.TrimSpace(req.Email)),
		passwordHash,
		req.Age,
		time.Now(),
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, age, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, age, created_at, updated_at
		FROM users
		WHERE email = $1`

	return r.scanUser(r.db.QueryRow(query, strings.ToLower(strings.TrimSpace(email))))
}

// Update applies a profile patch. Only non-nil fields are written; the
// password arrives pre-hashed via passwordHash when it is being changed.
func (r *UserRepository) Update(id int, req *models.UserUpdateRequest, passwordHash *string) (*models.User, error) {
	var setClauses []string
	var args []interface{}
	argIndex := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *req.Name)
		argIndex++
	}
	if req.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, strings.ToLower(strings.TrimSpace(*req.Email)))
		argIndex++
	}
	if passwordHash != nil {
		setClauses = append(setClauses, fmt.Sprintf("password_hash = $%d", argIndex))
		args = append(args, *passwordHash)
		argIndex++
	}
	if req.Age != nil {
		setClauses = append(setClauses, fmt.Sprintf("age = $%d", argIndex))
		args = append(args, *req.Age)
		argIndex++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING id, name, email, password_hash, age, created_at, updated_at`,
		strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	user, err := r.scanUser(r.db.QueryRow(query, args...))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, models.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user. The user's token set is removed by the cascade on
// user_tokens.
func (r *UserRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// CreateToken appends a token hash to the user's active token set
func (r *UserRepository) CreateToken(userID int, tokenHash string) error {
	_, err := r.db.Exec(
		"INSERT INTO user_tokens (user_id, token_hash, created_at) VALUES ($1, $2, $3)",
		userID, tokenHash, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// GetByIDAndToken resolves a user only when the token hash is in that
// user's active token set. A signed-but-revoked token therefore does not
// authenticate.
func (r *UserRepository) GetByIDAndToken(userID int, tokenHash string) (*models.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.age, u.created_at, u.updated_at
		FROM users u
		JOIN user_tokens t ON t.user_id = u.id
		WHERE u.id = $1 AND t.token_hash = $2`

	return r.scanUser(r.db.QueryRow(query, userID, tokenHash))
}

// DeleteToken removes exactly the presented token from the active set
func (r *UserRepository) DeleteToken(userID int, tokenHash string) error {
	result, err := r.db.Exec(
		"DELETE FROM user_tokens WHERE user_id = $1 AND token_hash = $2",
		userID, tokenHash,
	)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.ErrTokenNotFound
	}
	return nil
}

// DeleteUserTokens clears the user's entire active token set
func (r *UserRepository) DeleteUserTokens(userID int) error {
	if _, err := r.db.Exec("DELETE FROM user_tokens WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete user tokens: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
