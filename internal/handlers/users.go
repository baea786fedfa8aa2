package handlers

import (
	"net/http"
	"strings"

	"github.com/cetadcco/carwash-pos/internal/auth"
	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/models"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles user administration.
type UserHandler struct {
	authService *auth.Service
	users       db.UserCollection
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService *auth.Service, users db.UserCollection) *UserHandler {
	return &UserHandler{
		authService: authService,
		users:       users,
	}
}

// Users routes /api/users by method.
func (h *UserHandler) Users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// UserByID routes /api/users/{id} by method.
func (h *UserHandler) UserByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Expected /api/users/{id}", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindUsers(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.IsValidRole(req.Role) {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	if _, err := h.users.FindUserByUsername(r.Context(), req.Username); err == nil {
		http.Error(w, "Username already exists", http.StatusConflict)
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		Role:         req.Role,
		Shift:        req.Shift,
		IsActive:     true,
	}

	if err := h.users.InsertUser(r.Context(), user); err != nil {
		log.WithError(err).Error("failed to insert user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req models.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.FindUserByID(r.Context(), id)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		if !models.IsValidRole(req.Role) {
			http.Error(w, "Invalid role", http.StatusBadRequest)
			return
		}
		user.Role = req.Role
	}
	if req.Shift != "" {
		user.Shift = req.Shift
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := h.authService.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.users.UpdateUser(r.Context(), id, *user); err != nil {
		log.WithError(err).Error("failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User updated"})
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		log.WithError(err).Error("failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
