package task

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	domerrors "github.com/abraaosantosdeveloper/taskmanager/internal/domain/errors"
)

// DeleteTask removes a task permanently.
type DeleteTask struct {
	tasks ports.TaskRepository
}

func NewDeleteTask(tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

func (uc *DeleteTask) Execute(ctx context.Context, id, ownerID int64) error {
	deleted, err := uc.tasks.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrTaskNotFound
	}
	return nil
}
