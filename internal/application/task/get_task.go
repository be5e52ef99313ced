package task

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

// GetTask fetches one task by id. A task owned by someone else is reported
// as not found, same as a nonexistent one.
type GetTask struct {
	tasks ports.TaskRepository
}

func NewGetTask(tasks ports.TaskRepository) *GetTask {
	return &GetTask{tasks: tasks}
}

func (uc *GetTask) Execute(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	t, err := uc.tasks.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	return t, nil
}
