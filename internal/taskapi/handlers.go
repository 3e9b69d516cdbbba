// Package taskapi implements the task-management REST contract the
// dashboard's store clients talk to. In production the hosted backend owns
// this contract; this service is its local stand-in and doubles as the
// identity issuer for development and tests.
package taskapi

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/session"
)

type Handler struct {
	TaskRepo    *TaskRepository
	UserRepo    *UserRepository
	RateLimiter *RateLimiter
	Secret      []byte
}

// Routes mounts every endpoint of the wire contract.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", h.Register)
	mux.HandleFunc("/login", h.Login)

	mux.HandleFunc("/get-tasks", h.requireAuth(h.HandleGetTasks))
	mux.HandleFunc("/create-task", h.requireAuth(h.HandleCreateTask))
	mux.HandleFunc("/update-task", h.requireAuth(h.HandleUpdateTask))
	mux.HandleFunc("/delete-task", h.requireAuth(h.HandleDeleteTask))

	mux.HandleFunc("/get-users", h.requireAdmin(h.HandleGetUsers))
	mux.HandleFunc("/create-user", h.requireAdmin(h.HandleCreateUser))
	mux.HandleFunc("/delete-user", h.requireAdmin(h.HandleDeleteUser))
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func sendError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

func sendJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}

// requireAuth verifies the bearer token and stashes the caller's email and
// roles on the request context.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			sendError(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return h.Secret, nil
		})
		if err != nil || !token.Valid {
			sendError(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			sendError(w, "Invalid token claims", http.StatusUnauthorized)
			return
		}
		id, ok := session.IdentityFromClaims(claims)
		if !ok {
			sendError(w, "Invalid token claims", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), "user_email", id.Email)
		ctx = context.WithValue(ctx, "user_is_admin", id.IsAdmin())
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin is requireAuth plus the admin group check; user management
// is admin-only.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return h.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		isAdmin, _ := r.Context().Value("user_is_admin").(bool)
		if !isAdmin {
			sendError(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

type RateLimiter struct {
	attempts map[string]int
	limit    int
	mutex    sync.Mutex
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rateLimiter := &RateLimiter{
		attempts: make(map[string]int),
		limit:    limit,
		window:   window,
	}
	go rateLimiter.cleanup()
	return rateLimiter
}

// reset the attempts map every window duration
func (rateLimiter *RateLimiter) cleanup() {
	for range time.Tick(rateLimiter.window) {
		rateLimiter.mutex.Lock()
		rateLimiter.attempts = make(map[string]int)
		rateLimiter.mutex.Unlock()
	}
}

func (rateLimiter *RateLimiter) Allow(ip string) bool {
	rateLimiter.mutex.Lock()
	defer rateLimiter.mutex.Unlock()

	count, exists := rateLimiter.attempts[ip]
	if !exists {
		rateLimiter.attempts[ip] = 1
		return true
	}
	if count >= rateLimiter.limit {
		return false
	}
	rateLimiter.attempts[ip]++
	return true
}
