package taskapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// GET /get-tasks
func (h *Handler) HandleGetTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	tasks, err := h.TaskRepo.List(ctx)
	if err != nil {
		log.Printf("Failed to list tasks: %v", err)
		sendError(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, models.TasksEnvelope{Tasks: tasks})
}

// POST /create-task
func (h *Handler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(task.Title) == "" || task.TaskID == "" {
		sendError(w, "title and taskId are required", http.StatusBadRequest)
		return
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if !models.ValidStatus(task.Status) {
		sendError(w, "Invalid status value", http.StatusBadRequest)
		return
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if existing, err := h.TaskRepo.GetByID(ctx, task.TaskID); err == nil && existing != nil {
		sendError(w, "Task already exists", http.StatusConflict)
		return
	}
	if err := h.TaskRepo.Create(ctx, &task); err != nil {
		log.Printf("Failed to create task: %v", err)
		sendError(w, "Failed to create task", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusCreated, task)
}

// POST /update-task: the full record is submitted and replaces the stored
// one. taskId and createdAt are immutable; the stored createdAt wins.
func (h *Handler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !isJSONContentType(r) {
		sendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if task.TaskID == "" {
		sendError(w, "taskId is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(task.Title) == "" {
		sendError(w, "title cannot be empty", http.StatusBadRequest)
		return
	}
	// any known status may replace any other; there is no transition order
	if !models.ValidStatus(task.Status) {
		sendError(w, "Invalid status value", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.TaskRepo.GetByID(ctx, task.TaskID)
	if err != nil || existing == nil {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}
	task.CreatedAt = existing.CreatedAt

	if err := h.TaskRepo.Update(ctx, &task); err != nil {
		log.Printf("Failed to update task %s: %v", task.TaskID, err)
		sendError(w, "Failed to update task", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, task)
}

// DELETE /delete-task with body {"taskId": ...}; deleting an unknown id
// still answers 200 so the operation stays idempotent for the client.
func (h *Handler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		TaskID string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if input.TaskID == "" {
		sendError(w, "taskId is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.TaskRepo.Delete(ctx, input.TaskID); err != nil && err != sql.ErrNoRows {
		log.Printf("Failed to delete task %s: %v", input.TaskID, err)
		sendError(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
