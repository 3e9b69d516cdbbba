// Package backend wraps the hosted task-management REST API. The dashboard
// never talks to the backend except through these clients; persistence,
// validation and authorization all live on the other side of the wire.
package backend

import (
	"context"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

type TaskAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) error
	UpdateTask(ctx context.Context, task models.Task) error
	DeleteTask(ctx context.Context, taskID string) error
}

type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, email, role string) error
	DeleteUser(ctx context.Context, email string) error
}
