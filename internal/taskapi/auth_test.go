package taskapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// register, log in, and use the issued token against a protected endpoint
func TestRegisterLogin_HappyPath(t *testing.T) {
	mux, dbx, _ := setupAPI(t)
	defer dbx.Close()

	rec := doJSON(t, mux, http.MethodPost, "/register", "", map[string]string{
		"email":    "boss@x.com",
		"password": "hunter2",
		"role":     models.RoleAdmin,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodPost, "/login", "", map[string]string{
		"email":    "boss@x.com",
		"password": "hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Email string `json:"email"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" || resp.Role != models.RoleAdmin {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	rec = doJSON(t, mux, http.MethodGet, "/get-users", "Bearer "+resp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("issued token rejected: %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	mux, dbx, _ := setupAPI(t)
	defer dbx.Close()

	rec := doJSON(t, mux, http.MethodPost, "/register", "", map[string]string{
		"email":    "dev@x.com",
		"password": "hunter2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodPost, "/login", "", map[string]string{
		"email":    "dev@x.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

// an account created via /create-user has no password yet, so it cannot
// sign in until it registers
func TestLogin_UnregisteredManagedUser(t *testing.T) {
	mux, dbx, secret := setupAPI(t)
	defer dbx.Close()
	admin := bearerFor(t, secret, "boss@x.com", models.RoleAdmin)

	rec := doJSON(t, mux, http.MethodPost, "/create-user", admin, map[string]string{
		"email": "new@x.com", "role": models.RoleTeam,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create-user status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodPost, "/login", "", map[string]string{
		"email": "new@x.com", "password": "anything",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRegister_Validation(t *testing.T) {
	mux, dbx, _ := setupAPI(t)
	defer dbx.Close()

	// bad email
	rec := doJSON(t, mux, http.MethodPost, "/register", "", map[string]string{
		"email": "not-an-email", "password": "hunter2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad email: want 400, got %d", rec.Code)
	}

	// short password
	rec = doJSON(t, mux, http.MethodPost, "/register", "", map[string]string{
		"email": "ok@x.com", "password": "abc",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: want 400, got %d", rec.Code)
	}

	// unknown role
	rec = doJSON(t, mux, http.MethodPost, "/register", "", map[string]string{
		"email": "ok@x.com", "password": "hunter2", "role": "superuser",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad role: want 400, got %d", rec.Code)
	}
}

// the limiter blocks once the per-window attempt budget is spent
func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("4th attempt should be blocked")
	}
	// other clients are unaffected
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("different IP should be allowed")
	}
}
