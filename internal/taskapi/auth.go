package taskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// POST /register: create an account that can sign in. The hosted identity
// provider owns this in production; locally the taskapi issues the tokens.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("Invalid method for register: %s", r.Method)
		sendError(w, "Use POST method", http.StatusMethodNotAllowed)
		return
	}

	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		log.Printf("Rate limit exceeded for IP: %s", clientIP)
		sendError(w, "Too many register attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding JSON: %v", err)
		sendError(w, "Bad JSON", http.StatusBadRequest)
		return
	}
	if !isValidEmail(input.Email) {
		sendError(w, "Invalid email", http.StatusBadRequest)
		return
	}
	if len(input.Password) < 4 {
		sendError(w, "Password must be at least 4 characters long", http.StatusBadRequest)
		return
	}
	if input.Role == "" {
		input.Role = models.RoleTeam
	}
	if input.Role != models.RoleAdmin && input.Role != models.RoleTeam {
		sendError(w, "Invalid role", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		sendError(w, "Cannot hash password", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if existing, err := h.UserRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		sendError(w, "User already exists", http.StatusConflict)
		return
	}
	user := &models.User{Email: input.Email, Role: input.Role}
	if err := h.UserRepo.Create(ctx, user, string(hash)); err != nil {
		sendError(w, "Cannot save user", http.StatusInternalServerError)
		return
	}

	log.Printf("User registered: %s", user.Email)
	sendJSON(w, http.StatusCreated, user)
}

// POST /login: verify credentials and issue the identity token the
// dashboard's session guard consumes.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("Invalid method for login: %s", r.Method)
		sendError(w, "Use POST method for login", http.StatusMethodNotAllowed)
		return
	}

	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		log.Printf("Rate limit exceeded for IP: %s", clientIP)
		sendError(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding JSON: %v", err)
		sendError(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, hash, err := h.UserRepo.GetWithPassword(ctx, input.Email)
	if err != nil || hash == "" {
		log.Printf("Error retrieving user by email %s: %v", input.Email, err)
		sendError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		log.Printf("Invalid password for email: %s", input.Email)
		sendError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	tokenString, err := h.issueToken(user)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		sendError(w, "Cannot create token", http.StatusInternalServerError)
		return
	}

	log.Printf("User logged in: %s", input.Email)
	sendJSON(w, http.StatusOK, map[string]any{
		"email": user.Email,
		"role":  user.Role,
		"token": tokenString,
	})
}

// issueToken signs an HS256 token shaped like the hosted provider's ID
// token: email in sub, roles in the Cognito-style groups claim.
func (h *Handler) issueToken(user *models.User) (string, error) {
	if len(h.Secret) == 0 {
		return "", fmt.Errorf("signing secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            user.Email,
		"email":          user.Email,
		"cognito:groups": []string{user.Role},
		"exp":            time.Now().Add(24 * time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	})
	tokenString, err := token.SignedString(h.Secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return tokenString, nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
