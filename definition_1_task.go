package scheduler

import (
	"slices"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

type ConstraintKind uint8

const (
	// ConstraintStartAfterEnd requires the task to begin after the referenced task finishes.
	ConstraintStartAfterEnd ConstraintKind = iota + 1

	// ConstraintContained requires the task to lie entirely within the referenced task's interval.
	ConstraintContained
)

type TaskConstraint struct {
	ReferencedTaskID string
	Kind             ConstraintKind
}

func (constraint *TaskConstraint) IsValid() error {
	if len(constraint.ReferencedTaskID) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - TaskConstraint",
			Issue: goerrors.ErrNilInput{
				InputName: "ReferencedTaskID",
			},
		}
	}

	if constraint.Kind != ConstraintStartAfterEnd && constraint.Kind != ConstraintContained {
		return goerrors.ErrValidation{
			Caller: "IsValid - TaskConstraint",
			Issue: goerrors.ErrInvalidInput{
				InputName: "Kind",
			},
		}
	}

	return nil
}

// ResourceConstraint bounds the amount of a resource the task may hold.
// Amount is the explicit request; when zero it defaults to MinAmount.
type ResourceConstraint struct {
	ResourceID string
	MinAmount  float64
	MaxAmount  float64
	Amount     float64
}

func (constraint *ResourceConstraint) RequestedAmount() float64 {
	return ternary(
		constraint.Amount == 0,

		constraint.MinAmount,
		constraint.Amount,
	)
}

func (constraint *ResourceConstraint) IsValid() error {
	if len(constraint.ResourceID) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ResourceConstraint",
			Issue: goerrors.ErrNilInput{
				InputName: "ResourceID",
			},
		}
	}

	if constraint.MinAmount < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ResourceConstraint",
			Issue: goerrors.ErrNegativeInput{
				InputName: "MinAmount",
			},
		}
	}

	if constraint.MinAmount > constraint.MaxAmount {
		return goerrors.ErrValidation{
			Caller: "IsValid - ResourceConstraint",
			Issue: goerrors.ErrInvalidInput{
				InputName: "MaxAmount",
			},
		}
	}

	return nil
}

type ImpactKind uint8

const (
	// ImpactRateChange multiplies the resource's baseline rate while the task runs.
	ImpactRateChange ImpactKind = iota + 1

	// ImpactSetInUse holds an exclusive lock on the resource while the task runs.
	ImpactSetInUse
)

// ResourceImpact is a closed tagged variant: RateMultiplier carries
// the payload for ImpactRateChange and is ignored for ImpactSetInUse.
type ResourceImpact struct {
	ResourceID     string
	RateMultiplier float64
	Kind           ImpactKind
}

func NewRateChangeImpact(resourceID string, multiplier float64) ResourceImpact {
	return ResourceImpact{
		ResourceID:     resourceID,
		RateMultiplier: multiplier,
		Kind:           ImpactRateChange,
	}
}

func NewSetInUseImpact(resourceID string) ResourceImpact {
	return ResourceImpact{
		ResourceID: resourceID,
		Kind:       ImpactSetInUse,
	}
}

func (impact *ResourceImpact) IsValid() error {
	if len(impact.ResourceID) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ResourceImpact",
			Issue: goerrors.ErrNilInput{
				InputName: "ResourceID",
			},
		}
	}

	switch impact.Kind {
	case ImpactRateChange:
		if impact.RateMultiplier <= 0 {
			return goerrors.ErrValidation{
				Caller: "IsValid - ResourceImpact",
				Issue: goerrors.ErrInvalidInput{
					InputName: "RateMultiplier",
				},
			}
		}

	case ImpactSetInUse:
		if impact.RateMultiplier != 0 {
			return goerrors.ErrValidation{
				Caller: "IsValid - ResourceImpact",
				Issue: goerrors.ErrInvalidInput{
					InputName: "RateMultiplier",
				},
			}
		}

	default:
		return goerrors.ErrValidation{
			Caller: "IsValid - ResourceImpact",
			Issue: goerrors.ErrInvalidInput{
				InputName: "Kind",
			},
		}
	}

	return nil
}

// Task is immutable once scheduling begins. The window is
// [TimeStart, TimeEnd), durations are seconds, priority 1 is highest.
type Task struct {
	Name        string
	Description string

	TaskConstraints     []TaskConstraint
	ResourceConstraints []ResourceConstraint
	ResourceImpacts     []ResourceImpact

	ID string

	TimeStart         int64
	TimeEnd           int64
	DurationMin       int64
	DurationMax       int64
	DurationPreferred int64

	Priority uint16
}

type ParamsNewTask struct {
	Name        string `valid:"required"`
	Description string

	TaskConstraints     []TaskConstraint
	ResourceConstraints []ResourceConstraint
	ResourceImpacts     []ResourceImpact

	// ID is generated when left empty.
	ID string

	TimeStart         int64
	TimeEnd           int64
	DurationMin       int64
	DurationMax       int64
	DurationPreferred int64

	Priority uint16
}

func (params *ParamsNewTask) IsValid() error {
	if params.TimeStart >= params.TimeEnd {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName: "TimeEnd",
			},
		}
	}

	if params.DurationMin <= 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName: "DurationMin",
			},
		}
	}

	if params.DurationMin > params.DurationMax {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName: "DurationMax",
			},
		}
	}

	if params.DurationPreferred < params.DurationMin ||
		params.DurationPreferred > params.DurationMax {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName: "DurationPreferred",
			},
		}
	}

	if params.DurationMax > params.TimeEnd-params.TimeStart {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName: "DurationMax - exceeds time window",
			},
		}
	}

	if params.Priority == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName: "Priority",
			},
		}
	}

	for _, constraint := range params.TaskConstraints {
		if errValidation := constraint.IsValid(); errValidation != nil {
			return errValidation
		}
	}

	for _, constraint := range params.ResourceConstraints {
		if errValidation := constraint.IsValid(); errValidation != nil {
			return errValidation
		}
	}

	for _, impact := range params.ResourceImpacts {
		if errValidation := impact.IsValid(); errValidation != nil {
			return errValidation
		}
	}

	return nil
}

func NewTask(params *ParamsNewTask) (*Task, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewTask",
				Issue:  errValidation,
			}
	}

	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &Task{
			Name:        params.Name,
			Description: params.Description,

			TaskConstraints:     params.TaskConstraints,
			ResourceConstraints: params.ResourceConstraints,
			ResourceImpacts:     params.ResourceImpacts,

			ID: ternary(
				len(params.ID) == 0,

				uuid.NewString(),
				params.ID,
			),

			TimeStart:         params.TimeStart,
			TimeEnd:           params.TimeEnd,
			DurationMin:       params.DurationMin,
			DurationMax:       params.DurationMax,
			DurationPreferred: params.DurationPreferred,

			Priority: params.Priority,
		},
		nil
}

// IsValidDefinition checks the structural invariants a scheduling run
// requires. A window too short for DurationMin is not structural: it is
// per-task infeasibility the run records as TIME_WINDOW_EXHAUSTED.
func (task *Task) IsValidDefinition() error {
	if len(task.ID) == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValidDefinition - Task",
			Issue: goerrors.ErrNilInput{
				InputName: "ID",
			},
		}
	}

	if task.TimeStart >= task.TimeEnd {
		return goerrors.ErrValidation{
			Caller: "IsValidDefinition - Task",
			Issue: goerrors.ErrInvalidInput{
				InputName: "TimeEnd",
			},
		}
	}

	if task.DurationMin <= 0 ||
		task.DurationMin > task.DurationMax ||
		task.DurationPreferred < task.DurationMin ||
		task.DurationPreferred > task.DurationMax {
		return goerrors.ErrValidation{
			Caller: "IsValidDefinition - Task",
			Issue: goerrors.ErrInvalidInput{
				InputName: "Duration range",
			},
		}
	}

	if task.Priority == 0 {
		return goerrors.ErrValidation{
			Caller: "IsValidDefinition - Task",
			Issue: goerrors.ErrInvalidInput{
				InputName: "Priority",
			},
		}
	}

	for ix := range task.TaskConstraints {
		if errValidation := task.TaskConstraints[ix].IsValid(); errValidation != nil {
			return errValidation
		}
	}

	for ix := range task.ResourceConstraints {
		if errValidation := task.ResourceConstraints[ix].IsValid(); errValidation != nil {
			return errValidation
		}
	}

	for ix := range task.ResourceImpacts {
		if errValidation := task.ResourceImpacts[ix].IsValid(); errValidation != nil {
			return errValidation
		}
	}

	return nil
}

func (task *Task) Window() TimeInterval {
	return TimeInterval{
		TimeStart: task.TimeStart,
		TimeEnd:   task.TimeEnd,
	}
}

func (task *Task) GetResourceConstraint(resourceID string) *ResourceConstraint {
	for ix := range task.ResourceConstraints {
		if task.ResourceConstraints[ix].ResourceID == resourceID {
			return &task.ResourceConstraints[ix]
		}
	}

	return nil
}

func (task *Task) GetResourceImpacts(resourceID string) []ResourceImpact {
	var result []ResourceImpact

	for _, impact := range task.ResourceImpacts {
		if impact.ResourceID == resourceID {
			result = append(result, impact)
		}
	}

	return result
}

// GetTouchedResourceIDs returns, sorted, every resource the task
// constrains or impacts.
func (task *Task) GetTouchedResourceIDs() []string {
	touched := make(map[string]bool)

	for _, constraint := range task.ResourceConstraints {
		touched[constraint.ResourceID] = true
	}

	for _, impact := range task.ResourceImpacts {
		touched[impact.ResourceID] = true
	}

	result := make([]string, 0, len(touched))

	for resourceID := range touched {
		result = append(result, resourceID)
	}

	slices.Sort(result)

	return result
}
