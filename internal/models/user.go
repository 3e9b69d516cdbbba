package models

const (
	RoleAdmin = "admin"
	RoleTeam  = "team"
)

type User struct {
	Email string `json:"email"`
	Role  string `json:"role"`

	// TasksAssigned is derived from the task collection, never stored.
	TasksAssigned int `json:"tasksAssigned,omitempty"`
}

// UsersEnvelope is the GET /get-users response body.
type UsersEnvelope struct {
	Users []User `json:"users"`
}
