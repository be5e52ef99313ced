package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
)

const (
	insertTaskSQL = `INSERT INTO tasks (user_id, title, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	selectTasksByOwnerSQL = `SELECT id, user_id, title, description, status, created_at, completed_at
		FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	selectTaskSQL = `SELECT id, user_id, title, description, status, created_at, completed_at
		FROM tasks WHERE id = $1 AND user_id = $2`
	// Ownership check and write share one statement so concurrent requests
	// cannot slip between a fetch and a mutate.
	updateTaskContentSQL = `UPDATE tasks SET title = $1, description = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, title, description, status, created_at, completed_at`
	updateTaskStatusSQL = `UPDATE tasks
		SET status = $1, completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE NULL END
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, title, description, status, created_at, completed_at`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	statisticsSQL = `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE status = 'in_progress'),
		COUNT(*) FILTER (WHERE status = 'completed')
		FROM tasks WHERE user_id = $1`
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.pool.QueryRow(ctx, insertTaskSQL,
		task.UserID, task.Title, task.Description, task.Status, task.CreatedAt).Scan(&task.ID)
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, selectTasksByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	return scanTaskOrNil(r.pool.QueryRow(ctx, selectTaskSQL, id, ownerID))
}

func (r *TaskRepository) UpdateContent(ctx context.Context, id, ownerID int64, title, description string) (*domain.Task, error) {
	return scanTaskOrNil(r.pool.QueryRow(ctx, updateTaskContentSQL, title, description, id, ownerID))
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id, ownerID int64, status string) (*domain.Task, error) {
	return scanTaskOrNil(r.pool.QueryRow(ctx, updateTaskStatusSQL, status, id, ownerID))
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteTaskSQL, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepository) Statistics(ctx context.Context, ownerID int64) (*domain.Statistics, error) {
	var s domain.Statistics
	err := r.pool.QueryRow(ctx, statisticsSQL, ownerID).
		Scan(&s.Total, &s.Pending, &s.InProgress, &s.Completed)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTaskOrNil(row pgx.Row) (*domain.Task, error) {
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
