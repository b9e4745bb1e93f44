package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"event-booking-api/internal/middleware"
	"event-booking-api/internal/models"
	"event-booking-api/internal/services"
)

// allowedUserUpdates are the only fields a profile patch may carry
var allowedUserUpdates = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

// UserHandler handles signup, login, session and profile endpoints
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Signup handles POST /users
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.authService.Signup(&req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /users/logout: the presented token, and only that
// token, leaves the active set.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	token, _ := middleware.TokenFromContext(r.Context())

	if err := h.authService.Logout(user.ID, token); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"type":    "Success",
		"message": "successfulLogout",
	})
}

// LogoutAll handles POST /users/logoutAll
func (h *UserHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.authService.LogoutAll(user.ID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"type":    "Success",
		"message": "successfulLogout",
	})
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	respondJSON(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me. Patches naming any field outside
// name/email/password/age are rejected outright.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var raw map[string]json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		respondError(w, err)
		return
	}
	for field := range raw {
		if !allowedUserUpdates[field] {
			respondError(w, models.NewValidationError("invalidUpdates"))
			return
		}
	}

	var req models.UserUpdateRequest
	if err := remarshal(raw, &req); err != nil {
		respondError(w, models.NewValidationError("invalidRequestBody"))
		return
	}

	updated, err := h.authService.UpdateUser(user.ID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteMe handles DELETE /users/me and returns the removed account
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.authService.DeleteUser(user.ID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.NewNotFoundError("noUserFound"))
		return
	}

	user, err := h.authService.GetUser(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func remarshal(raw map[string]json.RawMessage, dst interface{}) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}
