// Package store keeps the dashboard's local mirror of backend state.
// The caches are write-through: a mutation touches the cache only after the
// backend confirmed it, so the cache never shows a rejected write and no
// rollback is ever needed.
package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/backend"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/notify"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/view"
)

type TaskStore struct {
	api      backend.TaskAPI
	notifier *notify.Center

	mutex sync.Mutex
	tasks []models.Task
	// generation counts refreshes; a response that comes back after a newer
	// refresh started is discarded instead of clobbering fresher state
	generation uint64

	now func() time.Time
}

func NewTaskStore(api backend.TaskAPI, notifier *notify.Center) *TaskStore {
	return &TaskStore{api: api, notifier: notifier, now: time.Now}
}

// Tasks returns a copy of the cached collection in fetch/insertion order.
func (s *TaskStore) Tasks() []models.Task {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Refresh replaces the cache with the backend's current task list. On
// failure the previous cache is kept untouched. Each successful refresh
// also runs the 24h near-deadline check exactly once.
func (s *TaskStore) Refresh(ctx context.Context) error {
	s.mutex.Lock()
	s.generation++
	gen := s.generation
	s.mutex.Unlock()

	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		log.Printf("Failed to fetch tasks: %v", err)
		s.notifier.Push("Could not load tasks")
		return err
	}

	s.mutex.Lock()
	if gen != s.generation {
		// a newer refresh superseded this one while it was in flight
		s.mutex.Unlock()
		return nil
	}
	s.tasks = tasks
	s.mutex.Unlock()

	if dueSoon := view.DueWithin(tasks, s.now(), view.DueSoonWindow); len(dueSoon) > 0 {
		plural := ""
		if len(dueSoon) > 1 {
			plural = "s"
		}
		s.notifier.Push(fmt.Sprintf("%d task%s due within 24 hours", len(dueSoon), plural))
	}
	return nil
}

type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Deadline    *time.Time
}

// Create assigns the id and creation time client-side, submits the task,
// and appends it to the cache once the backend accepts it. New tasks always
// start out Pending.
func (s *TaskStore) Create(ctx context.Context, input CreateTaskInput) (models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		s.notifier.Push("Task title is required")
		return models.Task{}, fmt.Errorf("task title is required")
	}

	task := models.Task{
		TaskID:      uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		CreatedAt:   s.now().UTC(),
		Deadline:    input.Deadline,
		Status:      models.StatusPending,
	}

	if err := s.api.CreateTask(ctx, task); err != nil {
		log.Printf("Failed to create task: %v", err)
		s.notifier.Push("Could not create task")
		return models.Task{}, err
	}

	s.mutex.Lock()
	s.tasks = append(s.tasks, task)
	s.mutex.Unlock()
	return task, nil
}

// UpdateStatus submits the full record with only the status replaced and
// swaps the cached entry on success. An unknown taskID is a no-op: the
// task may have been deleted under us, there is nothing to update.
func (s *TaskStore) UpdateStatus(ctx context.Context, taskID string, newStatus models.TaskStatus) (models.Task, error) {
	if !models.ValidStatus(newStatus) {
		s.notifier.Push("Unknown task status")
		return models.Task{}, fmt.Errorf("unknown status %q", newStatus)
	}

	s.mutex.Lock()
	var updated models.Task
	found := false
	for _, t := range s.tasks {
		if t.TaskID == taskID {
			updated = t
			updated.Status = newStatus
			found = true
			break
		}
	}
	s.mutex.Unlock()

	if !found {
		return models.Task{}, nil
	}

	if err := s.api.UpdateTask(ctx, updated); err != nil {
		log.Printf("Failed to update task %s: %v", taskID, err)
		s.notifier.Push("Could not update task")
		return models.Task{}, err
	}

	s.mutex.Lock()
	for i, t := range s.tasks {
		if t.TaskID == taskID {
			s.tasks[i] = updated
			break
		}
	}
	s.mutex.Unlock()
	return updated, nil
}

// Delete removes the task from the backend, then from the cache. Deleting
// an id that is not cached is harmless.
func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		log.Printf("Failed to delete task %s: %v", taskID, err)
		s.notifier.Push("Could not delete task")
		return err
	}

	s.mutex.Lock()
	for i, t := range s.tasks {
		if t.TaskID == taskID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mutex.Unlock()
	return nil
}
