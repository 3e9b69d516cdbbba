package taskapi

import (
	"context"
	"database/sql"
	"time"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// defines methods for task db operations
type TaskRepositoryInterface interface {
	List(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	query := `SELECT task_id, title, description, assigned_to, created_at, deadline, status
	 FROM tasks ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT task_id, title, description, assigned_to, created_at, deadline, status
	 FROM tasks WHERE task_id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (task_id, title, description, assigned_to, created_at, deadline, status)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(
		ctx, query, task.TaskID, task.Title, task.Description, task.AssignedTo,
		task.CreatedAt, nullableTime(task.Deadline), task.Status)
	return err
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE tasks SET title = $1, description = $2, assigned_to = $3, deadline = $4, status = $5
	 WHERE task_id = $6`
	_, err := r.db.ExecContext(
		ctx, query, task.Title, task.Description, task.AssignedTo,
		nullableTime(task.Deadline), task.Status, task.TaskID)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE task_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var description sql.NullString
	var deadline sql.NullTime
	if err := row.Scan(
		&task.TaskID, &task.Title, &description, &task.AssignedTo,
		&task.CreatedAt, &deadline, &task.Status,
	); err != nil {
		return nil, err
	}
	task.Description = description.String
	if deadline.Valid {
		t := deadline.Time
		task.Deadline = &t
	}
	return task, nil
}

// nullableTime maps a missing deadline to SQL NULL.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
