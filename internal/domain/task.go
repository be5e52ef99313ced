package domain

import "time"

// Task statuses. Status transitions are free-form; moving to StatusCompleted
// stamps CompletedAt, moving away clears it.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is owned by exactly one user and is only reachable through
// operations scoped to that owner.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Statistics aggregates a user's task counts by status.
type Statistics struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
}
