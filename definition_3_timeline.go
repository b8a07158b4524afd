package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

type allocation struct {
	TaskID string
	Amount float64

	TimeInterval
}

type impactEvent struct {
	TaskID string
	Impact ResourceImpact

	TimeInterval
}

// ResourceTimeline owns all committed allocations for one resource
// across one scheduling run. Commits are permanent, the run performs
// no backtracking.
type ResourceTimeline struct {
	resource *Resource

	allocations []allocation
	rateEvents  []impactEvent
	locks       []TimeInterval
}

func NewResourceTimeline(resource *Resource) (*ResourceTimeline, error) {
	if resource == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewResourceTimeline",
				Issue: goerrors.ErrNilInput{
					InputName: "resource",
				},
			}
	}

	if errValidation := resource.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &ResourceTimeline{
			resource: resource,
		},
		nil
}

func (timeline *ResourceTimeline) GetResource() *Resource {
	return timeline.resource
}

type ParamsQueryFeasible struct {
	Impacts []ResourceImpact

	Interval TimeInterval
	Amount   float64
}

// QueryFeasible reports whether the candidate interval could be
// committed: capacity for INTEGER resources, value bounds at every
// event boundary for CUMULATIVE_RATE resources, and exclusive-lock
// overlap for SET_IN_USE impacts on either kind.
func (timeline *ResourceTimeline) QueryFeasible(params *ParamsQueryFeasible) bool {
	for _, impact := range params.Impacts {
		if impact.Kind == ImpactSetInUse && timeline.lockConflicts(&params.Interval) {
			return false
		}
	}

	switch timeline.resource.Kind {
	case KindInteger:
		return timeline.queryFeasibleInteger(&params.Interval, params.Amount)

	case KindCumulativeRate:
		return timeline.queryFeasibleRate(&params.Interval, params.Impacts)
	}

	return false
}

type ParamsCommit struct {
	TaskID  string
	Impacts []ResourceImpact

	Interval TimeInterval
	Amount   float64
}

// Commit mutates the timeline irreversibly. A commit that fails the
// feasibility re-check signals a timeline inconsistency.
func (timeline *ResourceTimeline) Commit(_ context.Context, params *ParamsCommit) error {
	if params.Interval.TimeStart >= params.Interval.TimeEnd {
		return goerrors.ErrValidation{
			Caller: "Commit - ResourceTimeline",
			Issue: goerrors.ErrInvalidInput{
				InputName: "Interval",
			},
		}
	}

	if !timeline.QueryFeasible(
		&ParamsQueryFeasible{
			Impacts:  params.Impacts,
			Interval: params.Interval,
			Amount:   params.Amount,
		},
	) {
		return ErrInvariantViolation{
			ResourceID: timeline.resource.ID,
			Detail: fmt.Sprintf(
				"commit of task %s at %s failed the feasibility re-check",

				params.TaskID,
				params.Interval,
			),
		}
	}

	if timeline.resource.Kind == KindInteger && params.Amount > 0 {
		timeline.allocations = append(
			timeline.allocations,
			allocation{
				TaskID:       params.TaskID,
				Amount:       params.Amount,
				TimeInterval: params.Interval,
			},
		)

		sort.Slice(
			timeline.allocations,
			func(i, j int) bool {
				return timeline.allocations[i].TimeStart < timeline.allocations[j].TimeStart
			},
		)
	}

	for _, impact := range params.Impacts {
		switch impact.Kind {
		case ImpactRateChange:
			timeline.rateEvents = append(
				timeline.rateEvents,
				impactEvent{
					TaskID:       params.TaskID,
					Impact:       impact,
					TimeInterval: params.Interval,
				},
			)

		case ImpactSetInUse:
			timeline.locks = append(
				timeline.locks,
				params.Interval,
			)
		}
	}

	sort.Slice(
		timeline.rateEvents,
		func(i, j int) bool {
			return timeline.rateEvents[i].TimeStart < timeline.rateEvents[j].TimeStart
		},
	)

	sort.Slice(
		timeline.locks,
		func(i, j int) bool {
			return timeline.locks[i].TimeStart < timeline.locks[j].TimeStart
		},
	)

	return nil
}

func (timeline *ResourceTimeline) GetSchedule() string {
	if len(timeline.allocations) == 0 &&
		len(timeline.rateEvents) == 0 &&
		len(timeline.locks) == 0 {
		return "Timeline: (empty)"
	}

	var sb strings.Builder

	sb.WriteString("Timeline:\n")

	for _, alloc := range timeline.allocations {
		sb.WriteString(
			fmt.Sprintf(
				"- %s holds %.2f → Task %s\n",

				alloc.TimeInterval,
				alloc.Amount,
				alloc.TaskID,
			),
		)
	}

	for _, event := range timeline.rateEvents {
		sb.WriteString(
			fmt.Sprintf(
				"- %s rate x%.2f → Task %s\n",

				event.TimeInterval,
				event.Impact.RateMultiplier,
				event.TaskID,
			),
		)
	}

	for _, lock := range timeline.locks {
		sb.WriteString(
			fmt.Sprintf(
				"- %s exclusive\n",

				lock,
			),
		)
	}

	return sb.String()
}
