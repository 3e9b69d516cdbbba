package models

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// StatusFilter is a TaskStatus plus the "All" pseudo-value used by the views.
type StatusFilter string

const FilterAll StatusFilter = "All"

func (f StatusFilter) Matches(s TaskStatus) bool {
	return f == FilterAll || TaskStatus(f) == s
}

// ValidStatus reports whether s is one of the three known statuses.
// Transitions between them are unrestricted.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	TaskID      string     `json:"taskId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  string     `json:"assignedTo"`
	CreatedAt   time.Time  `json:"createdAt"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      TaskStatus `json:"status"`
}

// TasksEnvelope is the GET /get-tasks response body.
type TasksEnvelope struct {
	Tasks []Task `json:"tasks"`
}
