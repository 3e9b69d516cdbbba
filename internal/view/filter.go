// Package view derives presentation subsets from the in-memory task
// collection. Everything here is a pure function: no network, no clocks
// other than the `now` the caller passes in, and input order is preserved.
package view

import (
	"strings"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// DueSoonWindow is how far ahead the near-deadline check looks.
const DueSoonWindow = 24 * time.Hour

type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// FilterByStatus returns the tasks matching f, in their original order.
func FilterByStatus(tasks []models.Task, f models.StatusFilter) []models.Task {
	if f == models.FilterAll {
		return tasks
	}
	var out []models.Task
	for _, t := range tasks {
		if f.Matches(t.Status) {
			out = append(out, t)
		}
	}
	return out
}

// ScopeToAssignee returns the tasks assigned to email, compared
// case-insensitively on both sides.
func ScopeToAssignee(tasks []models.Task, email string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if strings.EqualFold(t.AssignedTo, email) {
			out = append(out, t)
		}
	}
	return out
}

// Summarize computes the admin dashboard counters. A task is overdue when it
// is not completed, has a deadline, and that deadline is before now.
func Summarize(tasks []models.Task, now time.Time) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			s.Completed++
			continue
		}
		if t.Deadline != nil && t.Deadline.Before(now) {
			s.Overdue++
		}
	}
	return s
}

// DueWithin returns tasks whose deadline lies in (now, now+window].
// Completed tasks are excluded; deadlines already in the past are the
// overdue counter's business, not a reminder's.
func DueWithin(tasks []models.Task, now time.Time, window time.Duration) []models.Task {
	cutoff := now.Add(window)
	var out []models.Task
	for _, t := range tasks {
		if t.Status == models.StatusCompleted || t.Deadline == nil {
			continue
		}
		if t.Deadline.After(now) && !t.Deadline.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// TasksAssigned counts tasks whose assignee matches email.
func TasksAssigned(tasks []models.Task, email string) int {
	return len(ScopeToAssignee(tasks, email))
}
