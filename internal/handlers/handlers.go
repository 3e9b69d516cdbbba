// Package handlers wires the dashboard's HTTP surface: the session probe,
// the two role views, and the mutation endpoints that go through the store
// clients. All views re-fetch from the backend on every mount.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/notify"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/session"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/store"
)

type Handler struct {
	Guard    *session.Guard
	Tasks    *store.TaskStore
	Users    *store.UserStore
	Notifier *notify.Center
}

// Routes mounts the dashboard endpoints.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.HandleHome)
	mux.HandleFunc("/session", h.HandleSession)
	mux.HandleFunc("/logout", h.HandleLogout)

	mux.HandleFunc("/admin", h.Guard.Require(session.ViewAdmin, h.HandleAdminView))
	mux.HandleFunc("/team", h.Guard.Require(session.ViewTeam, h.HandleTeamView))

	mux.HandleFunc("/tasks", h.withIdentity(h.HandleTasks))
	mux.HandleFunc("/tasks/status", h.withIdentity(h.HandleTaskStatus))
	mux.HandleFunc("/users", h.withIdentity(h.HandleUsers))
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func sendError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

func sendJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// withIdentity authenticates a mutation endpoint. Unlike the view guard it
// answers 401 instead of redirecting: these are called from scripts, not
// navigated to.
func (h *Handler) withIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := h.Guard.Authenticate(r)
		if id == nil {
			sendError(w, "Not signed in", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(session.ContextWithIdentity(r.Context(), id)))
	}
}
