package store

import (
	"context"
	"testing"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/notify"
)

type fakeUserAPI struct {
	users []models.User
	fail  bool
	calls int
}

func (f *fakeUserAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	f.calls++
	if f.fail {
		return nil, errBackend
	}
	snapshot := make([]models.User, len(f.users))
	copy(snapshot, f.users)
	return snapshot, nil
}

func (f *fakeUserAPI) CreateUser(ctx context.Context, email, role string) error {
	f.calls++
	if f.fail {
		return errBackend
	}
	f.users = append(f.users, models.User{Email: email, Role: role})
	return nil
}

func (f *fakeUserAPI) DeleteUser(ctx context.Context, email string) error {
	f.calls++
	if f.fail {
		return errBackend
	}
	for i, u := range f.users {
		if u.Email == email {
			f.users = append(f.users[:i], f.users[i+1:]...)
			break
		}
	}
	return nil
}

func TestUserStore_CreateAndDelete(t *testing.T) {
	api := &fakeUserAPI{}
	s := NewUserStore(api, notify.NewCenter(time.Minute))
	ctx := context.Background()

	created, err := s.Create(ctx, "dev@x.com", models.RoleTeam)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "dev@x.com" || created.Role != models.RoleTeam {
		t.Fatalf("unexpected user: %+v", created)
	}
	if got := s.Users(); len(got) != 1 {
		t.Fatalf("want 1 cached user, got %d", len(got))
	}

	if err := s.Delete(ctx, "dev@x.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.Users(); len(got) != 0 {
		t.Fatalf("want empty cache, got %+v", got)
	}
}

// duplicate emails go to the backend untouched; the store does not dedupe
func TestUserStore_NoLocalDeduplication(t *testing.T) {
	api := &fakeUserAPI{}
	s := NewUserStore(api, notify.NewCenter(time.Minute))
	ctx := context.Background()

	if _, err := s.Create(ctx, "dup@x.com", models.RoleTeam); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(ctx, "dup@x.com", models.RoleAdmin); err != nil {
		t.Fatalf("second create should be submitted, not short-circuited: %v", err)
	}
	if api.calls != 2 {
		t.Fatalf("both creates must reach the backend, got %d calls", api.calls)
	}
}

func TestUserStore_FailuresKeepCache(t *testing.T) {
	api := &fakeUserAPI{}
	notifier := notify.NewCenter(time.Minute)
	s := NewUserStore(api, notifier)
	ctx := context.Background()

	if _, err := s.Create(ctx, "dev@x.com", models.RoleTeam); err != nil {
		t.Fatalf("create: %v", err)
	}

	api.fail = true
	if err := s.Refresh(ctx); err == nil {
		t.Fatalf("want error from failed refresh")
	}
	if err := s.Delete(ctx, "dev@x.com"); err == nil {
		t.Fatalf("want error from failed delete")
	}

	if got := s.Users(); len(got) != 1 {
		t.Fatalf("cache must keep last known-good state, got %+v", got)
	}
	if _, ok := notifier.Current(); !ok {
		t.Fatalf("a notification should be recorded")
	}
}

func TestUserStore_UsersWithCounts(t *testing.T) {
	api := &fakeUserAPI{users: []models.User{
		{Email: "a@x.com", Role: models.RoleTeam},
		{Email: "b@x.com", Role: models.RoleTeam},
	}}
	s := NewUserStore(api, notify.NewCenter(time.Minute))

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	tasks := []models.Task{
		{TaskID: "1", AssignedTo: "A@x.com", Status: models.StatusPending},
		{TaskID: "2", AssignedTo: "a@x.com", Status: models.StatusCompleted},
		{TaskID: "3", AssignedTo: "b@x.com", Status: models.StatusPending},
	}

	users := s.UsersWithCounts(tasks)
	if users[0].TasksAssigned != 2 || users[1].TasksAssigned != 1 {
		t.Fatalf("unexpected counts: %+v", users)
	}
}
