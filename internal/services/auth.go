package services

import (
	"errors"
	"time"

	"event-booking-api/internal/config"
	"event-booking-api/internal/models"
	"event-booking-api/internal/utils"
)

// UserRepository interface for user and session-token data operations
type UserRepository interface {
	Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(id int, req *models.UserUpdateRequest, passwordHash *string) (*models.User, error)
	Delete(id int) error
	CreateToken(userID int, tokenHash string) error
	GetByIDAndToken(userID int, tokenHash string) (*models.User, error)
	DeleteToken(userID int, tokenHash string) error
	DeleteUserTokens(userID int) error
}

// AuthService handles credentials and session tokens. Tokens are HS256 JWTs
// whose hashes are also kept server-side in the user's active token set, so
// logout genuinely revokes them. The signing secret is injected
// configuration.
type AuthService struct {
	userRepo UserRepository
	secret   string
	tokenTTL time.Duration
}

// AuthResponse represents the response after a successful signup or login
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo UserRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   cfg.JWTSecret,
		tokenTTL: time.Duration(cfg.TokenTTLHours) * time.Hour,
	}
}

// Signup registers a new user, hashes the password, and issues the first
// session token.
func (s *AuthService) Signup(req *models.UserCreateRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, models.NewConflictError("emailTaken")
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(req, passwordHash)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, models.NewConflictError("emailTaken")
		}
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, Token: token}, nil
}

// Login verifies credentials and appends a fresh token to the user's active
// set. Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.NewUnauthorizedError("incorrectEmailOrPassword")
		}
		return nil, err
	}

	match, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, models.NewUnauthorizedError("incorrectEmailOrPassword")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, Token: token}, nil
}

// Logout removes exactly the presented token from the user's active set
func (s *AuthService) Logout(userID int, rawToken string) error {
	err := s.userRepo.DeleteToken(userID, utils.HashToken(rawToken))
	if err != nil && !errors.Is(err, models.ErrTokenNotFound) {
		return err
	}
	return nil
}

// LogoutAll clears the user's entire active token set
func (s *AuthService) LogoutAll(userID int) error {
	return s.userRepo.DeleteUserTokens(userID)
}

// Authenticate resolves a bearer token to a user. The token must carry a
// valid signature and expiry AND still be present in the user's active
// token set; either failure is a plain unauthorized.
func (s *AuthService) Authenticate(rawToken string) (*models.User, error) {
	userID, err := utils.ParseAuthToken(s.secret, rawToken)
	if err != nil {
		return nil, models.NewUnauthorizedError("notAuthenticated")
	}

	user, err := s.userRepo.GetByIDAndToken(userID, utils.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.NewUnauthorizedError("notAuthenticated")
		}
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.NewNotFoundError("noUserFound")
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a profile patch to a user's own account. A changed
// password is re-hashed; a changed email must not collide with another
// account.
func (s *AuthService) UpdateUser(userID int, req *models.UserUpdateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Email != nil {
		if existing, err := s.userRepo.GetByEmail(*req.Email); err == nil && existing.ID != userID {
			return nil, models.NewConflictError("emailTaken")
		} else if err != nil && !errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
	}

	var passwordHash *string
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hashed
	}

	user, err := s.userRepo.Update(userID, req, passwordHash)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, models.NewConflictError("emailTaken")
		}
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.NewNotFoundError("noUserFound")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user account. The active token set goes with it.
func (s *AuthService) DeleteUser(userID int) error {
	err := s.userRepo.Delete(userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.NewNotFoundError("noUserFound")
		}
		return err
	}
	return nil
}

func (s *AuthService) issueToken(userID int) (string, error) {
	token, err := utils.NewAuthToken(s.secret, userID, s.tokenTTL)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.CreateToken(userID, utils.HashToken(token)); err != nil {
		return "", err
	}
	return token, nil
}
