package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/session"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/store"
)

/*
handles routes:
- POST /tasks - create a task (admin)
- DELETE /tasks - delete a task (admin)
*/
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createTask(w, r)
	case http.MethodDelete:
		h.deleteTask(w, r)
	default:
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	id := session.IdentityFrom(r.Context())
	if !id.IsAdmin() {
		sendError(w, "Forbidden", http.StatusForbidden)
		return
	}

	var input struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		AssignedTo  string     `json:"assignedTo"`
		Deadline    *time.Time `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()

	task, err := h.Tasks.Create(ctx, store.CreateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		Deadline:    input.Deadline,
	})
	if err != nil {
		// the store already recorded the notification; what failed decides
		// the status
		sendError(w, err.Error(), http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusCreated, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := session.IdentityFrom(r.Context())
	if !id.IsAdmin() {
		sendError(w, "Forbidden", http.StatusForbidden)
		return
	}

	var input struct {
		TaskID string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.TaskID == "" {
		sendError(w, "taskId is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()

	if err := h.Tasks.Delete(ctx, input.TaskID); err != nil {
		sendError(w, "Could not delete task", http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// POST /tasks/status: {"taskId","status"}. Team members move their own
// tasks; the admin can move anyone's.
func (h *Handler) HandleTaskStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := session.IdentityFrom(r.Context())

	var input struct {
		TaskID string            `json:"taskId"`
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.TaskID == "" {
		sendError(w, "taskId and status are required", http.StatusBadRequest)
		return
	}

	if !id.IsAdmin() {
		// members only move tasks assigned to them
		if !assignedTo(h.Tasks.Tasks(), input.TaskID, id.Email) {
			sendError(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), viewTimeout)
	defer cancel()

	updated, err := h.Tasks.UpdateStatus(ctx, input.TaskID, input.Status)
	if err != nil {
		sendError(w, "Could not update task", http.StatusBadGateway)
		return
	}
	if updated.TaskID == "" {
		// unknown id: the store treats this as a no-op
		sendJSON(w, http.StatusOK, map[string]string{"status": "noop"})
		return
	}
	sendJSON(w, http.StatusOK, updated)
}

func assignedTo(tasks []models.Task, taskID, email string) bool {
	for _, t := range tasks {
		if t.TaskID == taskID {
			return strings.EqualFold(t.AssignedTo, email)
		}
	}
	// unknown locally: let the store's no-op handling answer
	return true
}
