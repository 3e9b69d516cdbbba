package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/session"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/view"
)

const viewTimeout = 10 * time.Second

// GET /: the session probe. A signed-in visitor is sent to their home
// view; everyone else gets the provider's sign-in entry point.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		sendError(w, "Not found", http.StatusNotFound)
		return
	}
	id := h.Guard.Authenticate(r)
	if id != nil {
		http.Redirect(w, r, session.Home(id), http.StatusSeeOther)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"signedIn":  false,
		"signInUrl": h.Guard.SignInURL(),
	})
}

// POST /session: store the identity token issued by the provider as the
// session cookie. The token is verified before it is accepted.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		sendError(w, "token is required", http.StatusBadRequest)
		return
	}

	probe := r.Clone(r.Context())
	probe.Header.Set("Authorization", "Bearer "+input.Token)
	id := h.Guard.Authenticate(probe)
	if id == nil {
		sendError(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	session.SetCookie(w, input.Token)
	sendJSON(w, http.StatusOK, map[string]string{"home": session.Home(id)})
}

// GET /logout: local sign-out clears the cookie; ?federated=1 also walks
// the browser through the provider's logout endpoint.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	if r.URL.Query().Get("federated") != "" {
		http.Redirect(w, r, h.Guard.SignOutURL(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, session.RouteSignIn, http.StatusSeeOther)
}

type adminView struct {
	Tasks        []models.Task `json:"tasks"`
	Summary      view.Summary  `json:"summary"`
	Notification string        `json:"notification,omitempty"`
}

// GET /admin?status=...: every task, the summary counters, and whatever
// transient notification is showing.
func (h *Handler) HandleAdminView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()
	// view mount: rebuild the cache from the backend; on failure the view
	// still renders from the last known-good state
	_ = h.Tasks.Refresh(ctx)

	tasks := h.Tasks.Tasks()
	resp := adminView{
		Tasks:   view.FilterByStatus(tasks, statusFilterFrom(r)),
		Summary: view.Summarize(tasks, time.Now()),
	}
	if n, ok := h.Notifier.Current(); ok {
		resp.Notification = n.Message
	}
	sendJSON(w, http.StatusOK, resp)
}

type teamView struct {
	Tasks        []models.Task `json:"tasks"`
	Notification string        `json:"notification,omitempty"`
}

// GET /team?status=...: only the visitor's own tasks, assignee matched
// case-insensitively, status filter applied on top.
func (h *Handler) HandleTeamView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := session.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()
	_ = h.Tasks.Refresh(ctx)

	mine := view.ScopeToAssignee(h.Tasks.Tasks(), id.Email)
	resp := teamView{Tasks: view.FilterByStatus(mine, statusFilterFrom(r))}
	if n, ok := h.Notifier.Current(); ok {
		resp.Notification = n.Message
	}
	sendJSON(w, http.StatusOK, resp)
}

func statusFilterFrom(r *http.Request) models.StatusFilter {
	if s := r.URL.Query().Get("status"); s != "" {
		return models.StatusFilter(s)
	}
	return models.FilterAll
}
