package taskapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// GET /get-users
func (h *Handler) HandleGetUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	users, err := h.UserRepo.List(ctx)
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		sendError(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, models.UsersEnvelope{Users: users})
}

// POST /create-user with {"email","role"}; duplicates are rejected here,
// not by the client.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	var input struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if !isValidEmail(input.Email) {
		sendError(w, "Invalid email", http.StatusBadRequest)
		return
	}
	if input.Role == "" {
		input.Role = models.RoleTeam
	}
	if input.Role != models.RoleAdmin && input.Role != models.RoleTeam {
		sendError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if existing, err := h.UserRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		sendError(w, "User already exists", http.StatusConflict)
		return
	}
	user := &models.User{Email: input.Email, Role: input.Role}
	if err := h.UserRepo.Create(ctx, user, ""); err != nil {
		log.Printf("Failed to create user %s: %v", input.Email, err)
		sendError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// /delete-user with {"email"}; DELETE is canonical, POST is accepted for
// callers that cannot send a DELETE body.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete && r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Email) == "" {
		sendError(w, "email is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.UserRepo.Delete(ctx, input.Email); err != nil {
		log.Printf("Failed to delete user %s: %v", input.Email, err)
		sendError(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
