package task

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

type UpdateStatusInput struct {
	ID      int64
	OwnerID int64
	Status  string
}

// UpdateStatus moves a task between statuses. Entering completed stamps
// CompletedAt with the transition time; leaving it clears the stamp.
type UpdateStatus struct {
	tasks ports.TaskRepository
}

func NewUpdateStatus(tasks ports.TaskRepository) *UpdateStatus {
	return &UpdateStatus{tasks: tasks}
}

func (uc *UpdateStatus) Execute(ctx context.Context, input UpdateStatusInput) (*domain.Task, error) {
	if !domain.ValidStatus(input.Status) {
		return nil, domerrors.ErrInvalidInput
	}
	t, err := uc.tasks.UpdateStatus(ctx, input.ID, input.OwnerID, input.Status)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	return t, nil
}
