package scheduler

import (
	goerrors "github.com/TudorHulban/go-errors"
)

// ConstraintValidator checks temporal relations between a candidate
// placement and already-committed intervals, and resource bounds that
// reject a task before any timeline is consulted.
type ConstraintValidator struct{}

// ValidateTemporal reports whether the candidate interval satisfies the
// constraint against the committed intervals. A referenced task that has
// not been committed makes the constraint unsatisfiable for this run.
func (v *ConstraintValidator) ValidateTemporal(
	candidate *TimeInterval,
	constraint *TaskConstraint,
	committed map[string]TimeInterval,
) bool {
	referenced, wasCommitted := committed[constraint.ReferencedTaskID]
	if !wasCommitted {
		return false
	}

	switch constraint.Kind {
	case ConstraintStartAfterEnd:
		return candidate.TimeStart >= referenced.TimeEnd

	case ConstraintContained:
		return referenced.TimeStart <= candidate.TimeStart &&
			candidate.TimeEnd <= referenced.TimeEnd
	}

	return false
}

// ValidateAllTemporal applies ValidateTemporal over every task constraint.
func (v *ConstraintValidator) ValidateAllTemporal(
	candidate *TimeInterval,
	task *Task,
	committed map[string]TimeInterval,
) bool {
	for ix := range task.TaskConstraints {
		if !v.ValidateTemporal(candidate, &task.TaskConstraints[ix], committed) {
			return false
		}
	}

	return true
}

// ValidateResourceBounds verifies every declared resource constraint's
// requested amount lies within [MinAmount, MaxAmount].
func (v *ConstraintValidator) ValidateResourceBounds(task *Task) error {
	for ix := range task.ResourceConstraints {
		constraint := &task.ResourceConstraints[ix]
		requested := constraint.RequestedAmount()

		if requested < constraint.MinAmount || requested > constraint.MaxAmount {
			return goerrors.ErrValidation{
				Caller: "ValidateResourceBounds",
				Issue: goerrors.ErrInvalidInput{
					InputName:  "Amount - outside declared bounds for resource " + constraint.ResourceID,
					InputValue: requested,
				},
			}
		}
	}

	return nil
}

// FirstUnscheduledDependency returns the ID of the first referenced task
// that never committed, if any.
func (v *ConstraintValidator) FirstUnscheduledDependency(
	task *Task,
	committed map[string]TimeInterval,
) (string, bool) {
	for _, constraint := range task.TaskConstraints {
		if _, wasCommitted := committed[constraint.ReferencedTaskID]; !wasCommitted {
			return constraint.ReferencedTaskID,
				true
		}
	}

	return "",
		false
}
