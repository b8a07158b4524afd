package scheduler

import (
	"fmt"
	"sort"

	goerrors "github.com/TudorHulban/go-errors"
)

var _ TaskLookup = (*TaskManager)(nil)

// TaskManager is a plain registry giving O(1) task lookup. It owns no
// scheduling state and nothing in it survives across runs.
type TaskManager struct {
	tasks map[string]*Task
}

func NewTaskManager() *TaskManager {
	return &TaskManager{
		tasks: make(map[string]*Task),
	}
}

func (m *TaskManager) AddTask(task *Task) error {
	if task == nil {
		return goerrors.ErrValidation{
			Caller: "AddTask - TaskManager",
			Issue: goerrors.ErrNilInput{
				InputName: "task",
			},
		}
	}

	if _, exists := m.tasks[task.ID]; exists {
		return fmt.Errorf(
			"task %s already registered",
			task.ID,
		)
	}

	m.tasks[task.ID] = task

	return nil
}

func (m *TaskManager) GetTask(taskID string) (*Task, error) {
	task, exists := m.tasks[taskID]
	if !exists {
		return nil,
			fmt.Errorf(
				"task %s not found",
				taskID,
			)
	}

	return task,
		nil
}

func (m *TaskManager) RemoveTask(taskID string) error {
	if _, exists := m.tasks[taskID]; !exists {
		return fmt.Errorf(
			"task %s not found",
			taskID,
		)
	}

	delete(m.tasks, taskID)

	return nil
}

// GetAllTasks returns tasks ordered by ID for deterministic iteration.
func (m *TaskManager) GetAllTasks() []*Task {
	result := make([]*Task, 0, len(m.tasks))

	for _, task := range m.tasks {
		result = append(result, task)
	}

	sort.Slice(
		result,
		func(i, j int) bool {
			return result[i].ID < result[j].ID
		},
	)

	return result
}

func (m *TaskManager) GetTasksByPriority(priority uint16) []*Task {
	var result []*Task

	for _, task := range m.GetAllTasks() {
		if task.Priority == priority {
			result = append(result, task)
		}
	}

	return result
}
