package task

import (
	"context"
	"strings"
	"time"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

type CreateTaskInput struct {
	OwnerID     int64
	Title       string
	Description string
	// Status defaults to pending when empty.
	Status string
}

type CreateTask struct {
	tasks ports.TaskRepository
}

func NewCreateTask(tasks ports.TaskRepository) *CreateTask {
	return &CreateTask{tasks: tasks}
}

func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domerrors.ErrInvalidInput
	}
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return nil, domerrors.ErrInvalidInput
	}
	t := &domain.Task{
		UserID:      input.OwnerID,
		Title:       title,
		Description: input.Description,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
