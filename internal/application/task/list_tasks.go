package task

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
)

// ListTasks returns all of the owner's tasks, newest first.
type ListTasks struct {
	tasks ports.TaskRepository
}

func NewListTasks(tasks ports.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

func (uc *ListTasks) Execute(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, ownerID)
}
