package ports

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
)

// UserRepository defines persistence for users.
type UserRepository interface {
	// Create persists the user and fills in ID and CreatedAt.
	// Returns errors.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID returns nil, nil when no user has the id.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Update persists name, email and password hash.
	// Returns errors.ErrEmailTaken when the email belongs to another user.
	Update(ctx context.Context, user *domain.User) error
}

// TaskRepository defines persistence for tasks. Every read and write is
// scoped to an owner; a task owned by someone else behaves as absent.
type TaskRepository interface {
	// Create persists the task and fills in ID and CreatedAt.
	Create(ctx context.Context, task *domain.Task) error
	// ListByOwner returns the owner's tasks, most recently created first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	// GetByID returns nil, nil when the owner has no task with the id.
	GetByID(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	// UpdateContent sets title and description only; returns the updated
	// task, or nil, nil when the owner has no task with the id.
	UpdateContent(ctx context.Context, id, ownerID int64, title, description string) (*domain.Task, error)
	// UpdateStatus sets the status and stamps or clears CompletedAt in the
	// same statement; returns nil, nil when the owner has no task with the id.
	UpdateStatus(ctx context.Context, id, ownerID int64, status string) (*domain.Task, error)
	// Delete removes the row; reports whether a row was deleted.
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
	// Statistics counts the owner's tasks by status.
	Statistics(ctx context.Context, ownerID int64) (*domain.Statistics, error)
}
