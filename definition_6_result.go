package scheduler

import (
	"fmt"
	"strings"
	"time"
)

type ScheduleStatus uint8

const (
	StatusSuccess ScheduleStatus = iota + 1
	StatusPartial
	StatusFailure
)

func (status ScheduleStatus) String() string {
	switch status {
	case StatusSuccess:
		return "SUCCESS"

	case StatusPartial:
		return "PARTIAL"

	case StatusFailure:
		return "FAILURE"
	}

	return "UNKNOWN"
}

// UnscheduledReason classifies per-task infeasibility. It is recorded in
// the result, never raised as an error.
type UnscheduledReason uint8

const (
	// ReasonTimeWindowExhausted - no candidate interval fits the window.
	ReasonTimeWindowExhausted UnscheduledReason = iota + 1

	// ReasonResourceConflict - candidates existed, every one failed a
	// timeline or temporal check.
	ReasonResourceConflict

	// ReasonDependencyUnscheduled - a referenced task never committed.
	ReasonDependencyUnscheduled

	// ReasonTimeLimit - the cooperative budget expired before the task
	// was considered.
	ReasonTimeLimit
)

func (reason UnscheduledReason) String() string {
	switch reason {
	case ReasonTimeWindowExhausted:
		return "TIME_WINDOW_EXHAUSTED"

	case ReasonResourceConflict:
		return "RESOURCE_CONFLICT"

	case ReasonDependencyUnscheduled:
		return "DEPENDENCY_UNSCHEDULED"

	case ReasonTimeLimit:
		return "TIME_LIMIT"
	}

	return "UNKNOWN"
}

type UnscheduledTask struct {
	TaskID string
	Reason UnscheduledReason
}

// ScheduledTask is a committed placement: the interval lies within the
// task's window and its duration within the task's range.
type ScheduledTask struct {
	TaskID string

	// ResourceAllocations maps resource ID to the amount held for the
	// committed interval.
	ResourceAllocations map[string]float64

	Interval TimeInterval
	Priority uint16
}

type ScheduleResult struct {
	Message string

	Scheduled   []ScheduledTask
	Unscheduled []UnscheduledTask

	SolveTime time.Duration
	Status    ScheduleStatus
}

func (result *ScheduleResult) TotalTasks() int {
	return len(result.Scheduled) + len(result.Unscheduled)
}

func (result *ScheduleResult) SuccessRate() float64 {
	total := result.TotalTasks()
	if total == 0 {
		return 0
	}

	return float64(len(result.Scheduled)) / float64(total)
}

func (result *ScheduleResult) GetScheduledTask(taskID string) *ScheduledTask {
	for ix := range result.Scheduled {
		if result.Scheduled[ix].TaskID == taskID {
			return &result.Scheduled[ix]
		}
	}

	return nil
}

// TasksInWindow returns the scheduled tasks whose committed intervals
// overlap the given window.
func (result *ScheduleResult) TasksInWindow(window *TimeInterval) []ScheduledTask {
	var overlapping []ScheduledTask

	for _, scheduled := range result.Scheduled {
		if scheduled.Interval.Overlaps(window) {
			overlapping = append(overlapping, scheduled)
		}
	}

	return overlapping
}

// ScheduleSpan returns the interval from the earliest committed start to
// the latest committed end.
func (result *ScheduleResult) ScheduleSpan() TimeInterval {
	if len(result.Scheduled) == 0 {
		return TimeInterval{}
	}

	span := result.Scheduled[0].Interval

	for _, scheduled := range result.Scheduled[1:] {
		span.TimeStart = min(span.TimeStart, scheduled.Interval.TimeStart)
		span.TimeEnd = max(span.TimeEnd, scheduled.Interval.TimeEnd)
	}

	return span
}

// ResourceUtilization returns, per resource, the allocation-seconds held
// across the schedule normalized by the schedule span.
func (result *ScheduleResult) ResourceUtilization() map[string]float64 {
	utilization := make(map[string]float64)

	span := result.ScheduleSpan()
	if span.Duration() == 0 {
		return utilization
	}

	for _, scheduled := range result.Scheduled {
		for resourceID, amount := range scheduled.ResourceAllocations {
			utilization[resourceID] = utilization[resourceID] +
				amount*float64(scheduled.Interval.Duration())
		}
	}

	for resourceID := range utilization {
		utilization[resourceID] = utilization[resourceID] / float64(span.Duration())
	}

	return utilization
}

func (result *ScheduleResult) String() string {
	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf(
			"ScheduleResult{Status: %s, SuccessRate: %.2f, Message: %q}\n",

			result.Status,
			result.SuccessRate(),
			result.Message,
		),
	)

	for _, scheduled := range result.Scheduled {
		sb.WriteString(
			fmt.Sprintf(
				"- scheduled %s at %s\n",

				scheduled.TaskID,
				scheduled.Interval,
			),
		)
	}

	for _, unscheduled := range result.Unscheduled {
		sb.WriteString(
			fmt.Sprintf(
				"- unscheduled %s: %s\n",

				unscheduled.TaskID,
				unscheduled.Reason,
			),
		)
	}

	return sb.String()
}
