package view

import (
	"testing"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

func taskWith(id string, status models.TaskStatus, assignee string, deadline *time.Time) models.Task {
	return models.Task{
		TaskID:     id,
		Title:      "task " + id,
		AssignedTo: assignee,
		CreatedAt:  time.Now().UTC(),
		Deadline:   deadline,
		Status:     status,
	}
}

func ptr(t time.Time) *time.Time { return &t }

// "All" returns every task; a concrete status returns exactly the matching
// ones, keeping relative order
func TestFilterByStatus(t *testing.T) {
	tasks := []models.Task{
		taskWith("1", models.StatusPending, "a@x.com", nil),
		taskWith("2", models.StatusCompleted, "b@x.com", nil),
		taskWith("3", models.StatusPending, "c@x.com", nil),
		taskWith("4", models.StatusInProgress, "a@x.com", nil),
	}

	all := FilterByStatus(tasks, models.FilterAll)
	if len(all) != 4 {
		t.Fatalf("All: want 4 tasks, got %d", len(all))
	}

	pending := FilterByStatus(tasks, models.StatusFilter(models.StatusPending))
	if len(pending) != 2 || pending[0].TaskID != "1" || pending[1].TaskID != "3" {
		t.Fatalf("Pending: want [1 3] in order, got %+v", pending)
	}

	done := FilterByStatus(tasks, models.StatusFilter(models.StatusCompleted))
	if len(done) != 1 || done[0].TaskID != "2" {
		t.Fatalf("Completed: want [2], got %+v", done)
	}

	if got := FilterByStatus(nil, models.StatusFilter(models.StatusPending)); len(got) != 0 {
		t.Fatalf("empty input: want empty output, got %+v", got)
	}
}

// case variation in either field must not affect membership
func TestScopeToAssignee_CaseInsensitive(t *testing.T) {
	tasks := []models.Task{
		taskWith("1", models.StatusPending, "User@Example.COM", nil),
		taskWith("2", models.StatusPending, "other@example.com", nil),
		taskWith("3", models.StatusPending, "user@example.com", nil),
	}

	got := ScopeToAssignee(tasks, "USER@example.com")
	if len(got) != 2 || got[0].TaskID != "1" || got[1].TaskID != "3" {
		t.Fatalf("want tasks [1 3], got %+v", got)
	}
}

func TestSummarize_OverdueRules(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := ptr(now.Add(-24 * time.Hour))
	tomorrow := ptr(now.Add(24 * time.Hour))

	tasks := []models.Task{
		// pending with yesterday's deadline -> overdue
		taskWith("1", models.StatusPending, "a@x.com", yesterday),
		// completed with yesterday's deadline -> NOT overdue
		taskWith("2", models.StatusCompleted, "a@x.com", yesterday),
		// pending, deadline in the future -> not overdue
		taskWith("3", models.StatusPending, "a@x.com", tomorrow),
		// in progress, no deadline -> not overdue
		taskWith("4", models.StatusInProgress, "a@x.com", nil),
	}

	s := Summarize(tasks, now)
	if s.Total != 4 {
		t.Fatalf("total: want 4, got %d", s.Total)
	}
	if s.Completed != 1 {
		t.Fatalf("completed: want 1, got %d", s.Completed)
	}
	if s.Overdue != 1 {
		t.Fatalf("overdue: want 1, got %d", s.Overdue)
	}
}

func TestDueWithin(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		// 2 hours from now -> due soon
		taskWith("1", models.StatusPending, "a@x.com", ptr(now.Add(2*time.Hour))),
		// exactly 24h from now -> included (boundary)
		taskWith("2", models.StatusInProgress, "a@x.com", ptr(now.Add(24*time.Hour))),
		// 25 hours from now -> outside the window
		taskWith("3", models.StatusPending, "a@x.com", ptr(now.Add(25*time.Hour))),
		// already past -> overdue, not due soon
		taskWith("4", models.StatusPending, "a@x.com", ptr(now.Add(-time.Hour))),
		// completed -> never due soon
		taskWith("5", models.StatusCompleted, "a@x.com", ptr(now.Add(2*time.Hour))),
		// no deadline
		taskWith("6", models.StatusPending, "a@x.com", nil),
	}

	got := DueWithin(tasks, now, DueSoonWindow)
	if len(got) != 2 || got[0].TaskID != "1" || got[1].TaskID != "2" {
		t.Fatalf("want tasks [1 2], got %+v", got)
	}
}

func TestTasksAssigned(t *testing.T) {
	tasks := []models.Task{
		taskWith("1", models.StatusPending, "a@x.com", nil),
		taskWith("2", models.StatusPending, "A@X.com", nil),
		taskWith("3", models.StatusPending, "b@x.com", nil),
	}
	if got := TasksAssigned(tasks, "a@x.com"); got != 2 {
		t.Fatalf("want 2, got %d", got)
	}
	if got := TasksAssigned(tasks, "nobody@x.com"); got != 0 {
		t.Fatalf("want 0, got %d", got)
	}
}
