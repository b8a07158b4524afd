package scheduler

import (
	"context"
	"time"
)

// TaskLookup resolves a task by identifier in O(1).
type TaskLookup interface {
	GetTask(taskID string) (*Task, error)
}

// ResourceLookup resolves a resource by identifier in O(1).
type ResourceLookup interface {
	GetResource(resourceID string) (*Resource, error)
}

type ParamsSchedule struct {
	Tasks     []*Task
	Resources []*Resource
}

// Scheduler is the contract every placement algorithm implements.
// Schedule is a pure function of its inputs: no input object is mutated
// and no state survives across runs. Implementations honor a cooperative
// time budget checked once per task considered.
type Scheduler interface {
	Schedule(ctx context.Context, params *ParamsSchedule) (*ScheduleResult, error)

	SetManagers(tasks TaskLookup, resources ResourceLookup)

	GetName() string
	GetTimeLimit() time.Duration
}
