package taskapi

import (
	"context"
	"database/sql"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// defines methods for user db operations
type UserRepositoryInterface interface {
	List(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User, passwordHash string) error
	Delete(ctx context.Context, email string) error
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT email, role FROM users ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user := models.User{}
		if err := rows.Scan(&user.Email, &user.Role); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT email, role FROM users WHERE email = $1`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.Email, &user.Role)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetWithPassword also returns the stored hash, for login. A user created
// through /create-user has an empty hash and cannot sign in until
// registered.
func (r *UserRepository) GetWithPassword(ctx context.Context, email string) (*models.User, string, error) {
	query := `SELECT email, role, password_hash FROM users WHERE email = $1`
	user := &models.User{}
	var hash string
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.Email, &user.Role, &hash)
	if err != nil {
		return nil, "", err
	}
	return user, hash, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	query := `INSERT INTO users (email, role, password_hash, created_at)
	 VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, user.Email, user.Role, passwordHash, time.Now().UTC())
	return err
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	query := `DELETE FROM users WHERE email = $1`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}
