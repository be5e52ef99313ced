package task

import (
	"context"

	"github.com/abraaosantosdeveloper/taskmanager/internal/application/ports"
	"github.com/abraaosantosdeveloper/taskmanager/internal/domain"
)

// GetStatistics tallies the owner's tasks by status. Statuses with no tasks
// count as zero.
type GetStatistics struct {
	tasks ports.TaskRepository
}

func NewGetStatistics(tasks ports.TaskRepository) *GetStatistics {
	return &GetStatistics{tasks: tasks}
}

func (uc *GetStatistics) Execute(ctx context.Context, ownerID int64) (*domain.Statistics, error) {
	return uc.tasks.Statistics(ctx, ownerID)
}
