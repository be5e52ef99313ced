package task

import (
	"context"
	"strings"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

type UpdateTaskInput struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
}

// UpdateTask rewrites title and description; status and timestamps are left
// alone. The ownership check and the write are one conditional statement.
type UpdateTask struct {
	tasks ports.TaskRepository
}

func NewUpdateTask(tasks ports.TaskRepository) *UpdateTask {
	return &UpdateTask{tasks: tasks}
}

func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domerrors.ErrInvalidInput
	}
	t, err := uc.tasks.UpdateContent(ctx, input.ID, input.OwnerID, title, input.Description)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	return t, nil
}
