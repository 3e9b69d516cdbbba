package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/session"
)

/*
handles routes (all admin-only):
- GET /users - list users with derived assignment counts
- POST /users - create a user
- DELETE /users - delete a user
*/
func (h *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	id := session.IdentityFrom(r.Context())
	if !id.IsAdmin() {
		sendError(w, "Forbidden", http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.listUsers(w, r)
	case http.MethodPost:
		h.createUser(w, r)
	case http.MethodDelete:
		h.deleteUser(w, r)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()

	// both collections re-fetch so the derived counts are current
	_ = h.Users.Refresh(ctx)
	_ = h.Tasks.Refresh(ctx)

	users := h.Users.UsersWithCounts(h.Tasks.Tasks())
	sendJSON(w, http.StatusOK, models.UsersEnvelope{Users: users})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if input.Role == "" {
		input.Role = models.RoleTeam
	}

	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()

	user, err := h.Users.Create(ctx, input.Email, input.Role)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		sendError(w, "email is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, input.Email); err != nil {
		sendError(w, "Could not delete user", http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
