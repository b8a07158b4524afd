package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

const _DefaultStepSeconds = int64(60)

var _ Scheduler = (*GreedyScheduler)(nil)

// GreedyScheduler places tasks priority-ordered, earliest-fit, with no
// backtracking. A rejected task is never revisited.
type GreedyScheduler struct {
	name string

	tasks     TaskLookup
	resources ResourceLookup

	validator ConstraintValidator

	// timeLimit is the cooperative budget checked once per task
	// considered. Zero is an already expired budget, negative disables
	// the limit.
	timeLimit time.Duration

	// step is the enumeration granularity in seconds for candidate
	// durations and start offsets.
	step int64
}

type ParamsNewGreedyScheduler struct {
	Name string `valid:"required"`

	TimeLimit time.Duration

	// Step defaults to one minute when zero.
	Step int64
}

func NewGreedyScheduler(params *ParamsNewGreedyScheduler) (*GreedyScheduler, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewGreedyScheduler",
				Issue:  errValidation,
			}
	}

	if params.Step < 0 {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewGreedyScheduler",
				Issue: goerrors.ErrNegativeInput{
					InputName: "Step",
				},
			}
	}

	return &GreedyScheduler{
			name:      params.Name,
			timeLimit: params.TimeLimit,
			step: ternary(
				params.Step == 0,

				_DefaultStepSeconds,
				params.Step,
			),
		},
		nil
}

func (gs *GreedyScheduler) SetManagers(tasks TaskLookup, resources ResourceLookup) {
	gs.tasks = tasks
	gs.resources = resources
}

func (gs *GreedyScheduler) GetName() string {
	return gs.name
}

func (gs *GreedyScheduler) GetTimeLimit() time.Duration {
	return gs.timeLimit
}

// Schedule validates definitions, builds one timeline per resource,
// orders tasks deterministically and commits each task's first feasible
// interval. Per-task infeasibility is recorded, never raised; only
// malformed definitions and timeline inconsistencies abort the run.
func (gs *GreedyScheduler) Schedule(ctx context.Context, params *ParamsSchedule) (*ScheduleResult, error) {
	started := time.Now()

	timelines, errConfig := gs.buildTimelines(params)
	if errConfig != nil {
		return nil,
			errConfig
	}

	ordered := orderTasks(params.Tasks)

	committed := make(map[string]TimeInterval, len(ordered))

	var scheduled []ScheduledTask
	var unscheduled []UnscheduledTask

	for ix, task := range ordered {
		if gs.budgetExpired(ctx, started) {
			for _, remaining := range ordered[ix:] {
				unscheduled = append(
					unscheduled,
					UnscheduledTask{
						TaskID: remaining.ID,
						Reason: ReasonTimeLimit,
					},
				)
			}

			break
		}

		placement, reason, errPlace := gs.placeTask(ctx, task, timelines, committed)
		if errPlace != nil {
			return &ScheduleResult{
					Status:    StatusFailure,
					Message:   errPlace.Error(),
					Scheduled: scheduled,
					SolveTime: time.Since(started),
				},
				errPlace
		}

		if placement == nil {
			unscheduled = append(
				unscheduled,
				UnscheduledTask{
					TaskID: task.ID,
					Reason: reason,
				},
			)

			continue
		}

		committed[task.ID] = placement.Interval
		scheduled = append(scheduled, *placement)
	}

	return aggregateResult(scheduled, unscheduled, time.Since(started)),
		nil
}

// placeTask returns the committed placement, or the reason the task
// could not be placed. An error means a timeline inconsistency.
func (gs *GreedyScheduler) placeTask(
	ctx context.Context,
	task *Task,
	timelines map[string]*ResourceTimeline,
	committed map[string]TimeInterval,
) (*ScheduledTask, UnscheduledReason, error) {
	if _, hasUnscheduled := gs.validator.FirstUnscheduledDependency(task, committed); hasUnscheduled {
		return nil,
			ReasonDependencyUnscheduled,
			nil
	}

	if task.TimeEnd-task.TimeStart < task.DurationMin {
		return nil,
			ReasonTimeWindowExhausted,
			nil
	}

	if errBounds := gs.validator.ValidateResourceBounds(task); errBounds != nil {
		return nil,
			ReasonResourceConflict,
			nil
	}

	touched := task.GetTouchedResourceIDs()

	var sawResourceRejection bool

	for _, duration := range candidateDurations(task, gs.step) {
		for start := task.TimeStart; start+duration <= task.TimeEnd; start = start + gs.step {
			candidate := TimeInterval{
				TimeStart: start,
				TimeEnd:   start + duration,
			}

			if !gs.validator.ValidateAllTemporal(&candidate, task, committed) {
				continue
			}

			feasible := true

			for _, resourceID := range touched {
				if !timelines[resourceID].QueryFeasible(
					&ParamsQueryFeasible{
						Impacts:  task.GetResourceImpacts(resourceID),
						Interval: candidate,
						Amount:   requestedAmountFor(task, resourceID),
					},
				) {
					feasible = false
					sawResourceRejection = true

					break
				}
			}

			if !feasible {
				continue
			}

			placement, errCommit := gs.commitTask(ctx, task, &candidate, timelines)
			if errCommit != nil {
				return nil,
					0,
					errCommit
			}

			return placement,
				0,
				nil
		}
	}

	return nil,
		ternary(
			sawResourceRejection,

			ReasonResourceConflict,
			ReasonTimeWindowExhausted,
		),
		nil
}

func (gs *GreedyScheduler) commitTask(
	ctx context.Context,
	task *Task,
	candidate *TimeInterval,
	timelines map[string]*ResourceTimeline,
) (*ScheduledTask, error) {
	allocations := make(map[string]float64, len(task.ResourceConstraints))

	for _, resourceID := range task.GetTouchedResourceIDs() {
		if errCommit := timelines[resourceID].Commit(
			ctx,
			&ParamsCommit{
				TaskID:   task.ID,
				Impacts:  task.GetResourceImpacts(resourceID),
				Interval: *candidate,
				Amount:   requestedAmountFor(task, resourceID),
			},
		); errCommit != nil {
			return nil,
				errCommit
		}
	}

	for ix := range task.ResourceConstraints {
		constraint := &task.ResourceConstraints[ix]

		allocations[constraint.ResourceID] = constraint.RequestedAmount()
	}

	return &ScheduledTask{
			TaskID:              task.ID,
			ResourceAllocations: allocations,
			Interval:            *candidate,
			Priority:            task.Priority,
		},
		nil
}

func (gs *GreedyScheduler) budgetExpired(ctx context.Context, started time.Time) bool {
	if ctx.Err() != nil {
		return true
	}

	if gs.timeLimit < 0 {
		return false
	}

	return time.Since(started) >= gs.timeLimit
}

// buildTimelines validates every definition and seeds one timeline per
// resource. Any malformed definition is fatal before placement begins.
func (gs *GreedyScheduler) buildTimelines(params *ParamsSchedule) (map[string]*ResourceTimeline, error) {
	if len(params.Tasks) == 0 {
		return nil,
			goerrors.ErrValidation{
				Caller: "Schedule - GreedyScheduler",
				Issue: goerrors.ErrNilInput{
					InputName: "Tasks",
				},
			}
	}

	timelines := make(map[string]*ResourceTimeline, len(params.Resources))

	for _, resource := range params.Resources {
		if resource == nil {
			return nil,
				goerrors.ErrValidation{
					Caller: "Schedule - GreedyScheduler",
					Issue: goerrors.ErrNilInput{
						InputName: "Resources",
					},
				}
		}

		if _, exists := timelines[resource.ID]; exists {
			return nil,
				goerrors.ErrValidation{
					Caller: "Schedule - GreedyScheduler",
					Issue: goerrors.ErrInvalidInput{
						InputName: "Resources - duplicate ID " + resource.ID,
					},
				}
		}

		timeline, errNew := NewResourceTimeline(resource)
		if errNew != nil {
			return nil,
				errNew
		}

		timelines[resource.ID] = timeline
	}

	seenTasks := make(map[string]bool, len(params.Tasks))

	for _, task := range params.Tasks {
		if task == nil {
			return nil,
				goerrors.ErrValidation{
					Caller: "Schedule - GreedyScheduler",
					Issue: goerrors.ErrNilInput{
						InputName: "Tasks",
					},
				}
		}

		if seenTasks[task.ID] {
			return nil,
				goerrors.ErrValidation{
					Caller: "Schedule - GreedyScheduler",
					Issue: goerrors.ErrInvalidInput{
						InputName: "Tasks - duplicate ID " + task.ID,
					},
				}
		}

		seenTasks[task.ID] = true

		if errValidation := task.IsValidDefinition(); errValidation != nil {
			return nil,
				errValidation
		}

		for _, resourceID := range task.GetTouchedResourceIDs() {
			if _, known := timelines[resourceID]; known {
				continue
			}

			resolved, errResolve := gs.resolveResource(resourceID)
			if errResolve != nil {
				return nil,
					goerrors.ErrValidation{
						Caller: "Schedule - GreedyScheduler",
						Issue: fmt.Errorf(
							"task %s references unknown resource %s",

							task.ID,
							resourceID,
						),
					}
			}

			timeline, errNew := NewResourceTimeline(resolved)
			if errNew != nil {
				return nil,
					errNew
			}

			timelines[resourceID] = timeline
		}
	}

	return timelines,
		nil
}

// resolveResource falls back to the resource manager for a resource the
// run was not handed directly.
func (gs *GreedyScheduler) resolveResource(resourceID string) (*Resource, error) {
	if gs.resources == nil {
		return nil,
			goerrors.ErrNilInput{
				InputName: "resources manager",
			}
	}

	return gs.resources.GetResource(resourceID)
}

// orderTasks returns a fresh slice ordered by priority ascending, window
// start ascending, then task ID. The input is never reordered.
func orderTasks(tasks []*Task) []*Task {
	ordered := make([]*Task, len(tasks))
	copy(ordered, tasks)

	sort.Slice(
		ordered,
		func(i, j int) bool {
			if ordered[i].Priority != ordered[j].Priority {
				return ordered[i].Priority < ordered[j].Priority
			}

			if ordered[i].TimeStart != ordered[j].TimeStart {
				return ordered[i].TimeStart < ordered[j].TimeStart
			}

			return ordered[i].ID < ordered[j].ID
		},
	)

	return ordered
}

func aggregateResult(
	scheduled []ScheduledTask,
	unscheduled []UnscheduledTask,
	solveTime time.Duration,
) *ScheduleResult {
	result := ScheduleResult{
		Scheduled:   scheduled,
		Unscheduled: unscheduled,
		SolveTime:   solveTime,
	}

	switch {
	case len(unscheduled) == 0:
		result.Status = StatusSuccess
		result.Message = fmt.Sprintf(
			"Successfully scheduled all %d tasks",
			len(scheduled),
		)

	case len(scheduled) > 0:
		result.Status = StatusPartial
		result.Message = fmt.Sprintf(
			"Scheduled %d of %d tasks",
			len(scheduled),
			len(scheduled)+len(unscheduled),
		)

	default:
		result.Status = StatusFailure
		result.Message = "Failed to schedule any tasks"
	}

	return &result
}

func requestedAmountFor(task *Task, resourceID string) float64 {
	if constraint := task.GetResourceConstraint(resourceID); constraint != nil {
		return constraint.RequestedAmount()
	}

	return 0
}
