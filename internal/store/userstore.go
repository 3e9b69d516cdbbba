package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/backend"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/notify"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/view"
)

// UserStore mirrors the backend's user collection. Users have no update
// operation: a role change is a delete followed by a recreate.
type UserStore struct {
	api      backend.UserAPI
	notifier *notify.Center

	mutex      sync.Mutex
	users      []models.User
	generation uint64
}

func NewUserStore(api backend.UserAPI, notifier *notify.Center) *UserStore {
	return &UserStore{api: api, notifier: notifier}
}

// Users returns a copy of the cached collection.
func (s *UserStore) Users() []models.User {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// UsersWithCounts returns the cached users with the derived tasksAssigned
// count filled in from the given task collection.
func (s *UserStore) UsersWithCounts(tasks []models.Task) []models.User {
	users := s.Users()
	for i := range users {
		users[i].TasksAssigned = view.TasksAssigned(tasks, users[i].Email)
	}
	return users
}

func (s *UserStore) Refresh(ctx context.Context) error {
	s.mutex.Lock()
	s.generation++
	gen := s.generation
	s.mutex.Unlock()

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		log.Printf("Failed to fetch users: %v", err)
		s.notifier.Push("Could not load users")
		return err
	}

	s.mutex.Lock()
	if gen != s.generation {
		s.mutex.Unlock()
		return nil
	}
	s.users = users
	s.mutex.Unlock()
	return nil
}

// Create submits a new user. Duplicate emails are the backend's call to
// accept or reject; no local deduplication happens here.
func (s *UserStore) Create(ctx context.Context, email, role string) (models.User, error) {
	if strings.TrimSpace(email) == "" {
		s.notifier.Push("User email is required")
		return models.User{}, fmt.Errorf("user email is required")
	}

	user := models.User{Email: email, Role: role}
	if err := s.api.CreateUser(ctx, email, role); err != nil {
		log.Printf("Failed to create user %s: %v", email, err)
		s.notifier.Push("Could not create user")
		return models.User{}, err
	}

	s.mutex.Lock()
	s.users = append(s.users, user)
	s.mutex.Unlock()
	return user, nil
}

func (s *UserStore) Delete(ctx context.Context, email string) error {
	if err := s.api.DeleteUser(ctx, email); err != nil {
		log.Printf("Failed to delete user %s: %v", email, err)
		s.notifier.Push("Could not delete user")
		return err
	}

	s.mutex.Lock()
	for i, u := range s.users {
		if u.Email == email {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.mutex.Unlock()
	return nil
}
