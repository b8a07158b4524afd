package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsTask(t *testing.T) {
	t.Run(
		"1. empty params",
		func(t *testing.T) {
			task, errCr := NewTask(
				&ParamsNewTask{},
			)
			require.Error(t, errCr)
			require.Nil(t, task)
		},
	)

	t.Run(
		"2. inverted window",
		func(t *testing.T) {
			task, errCr := NewTask(
				&ParamsNewTask{
					Name:              "task",
					TimeStart:         100,
					TimeEnd:           50,
					DurationMin:       10,
					DurationMax:       20,
					DurationPreferred: 15,
					Priority:          1,
				},
			)
			require.Error(t, errCr)
			require.Nil(t, task)
		},
	)

	t.Run(
		"3. preferred duration outside range",
		func(t *testing.T) {
			task, errCr := NewTask(
				&ParamsNewTask{
					Name:              "task",
					TimeStart:         0,
					TimeEnd:           100,
					DurationMin:       10,
					DurationMax:       20,
					DurationPreferred: 30,
					Priority:          1,
				},
			)
			require.Error(t, errCr)
			require.Nil(t, task)
		},
	)

	t.Run(
		"4. max duration exceeds window",
		func(t *testing.T) {
			task, errCr := NewTask(
				&ParamsNewTask{
					Name:              "task",
					TimeStart:         0,
					TimeEnd:           15,
					DurationMin:       10,
					DurationMax:       20,
					DurationPreferred: 15,
					Priority:          1,
				},
			)
			require.Error(t, errCr)
			require.Nil(t, task)
		},
	)

	t.Run(
		"5. zero priority",
		func(t *testing.T) {
			task, errCr := NewTask(
				&ParamsNewTask{
					Name:              "task",
					TimeStart:         0,
					TimeEnd:           100,
					DurationMin:       10,
					DurationMax:       20,
					DurationPreferred: 15,
				},
			)
			require.Error(t, errCr)
			require.Nil(t, task)
		},
	)

	t.Run(
		"6. constraint without referenced task",
		func(t *testing.T) {
			task, errCr := NewTask(
				&ParamsNewTask{
					Name:              "task",
					TimeStart:         0,
					TimeEnd:           100,
					DurationMin:       10,
					DurationMax:       20,
					DurationPreferred: 15,
					Priority:          1,

					TaskConstraints: []TaskConstraint{
						{
							Kind: ConstraintStartAfterEnd,
						},
					},
				},
			)
			require.Error(t, errCr)
			require.Nil(t, task)
		},
	)

	t.Run(
		"7. impact payload mismatch",
		func(t *testing.T) {
			task, errCr := NewTask(
				&ParamsNewTask{
					Name:              "task",
					TimeStart:         0,
					TimeEnd:           100,
					DurationMin:       10,
					DurationMax:       20,
					DurationPreferred: 15,
					Priority:          1,

					ResourceImpacts: []ResourceImpact{
						{
							ResourceID:     "battery",
							Kind:           ImpactSetInUse,
							RateMultiplier: 2,
						},
					},
				},
			)
			require.Error(t, errCr)
			require.Nil(t, task)
		},
	)
}

func TestLifeCycleTask(t *testing.T) {
	task, errCr := NewTask(
		&ParamsNewTask{
			Name:              "inspection run",
			Description:       "hull inspection",
			TimeStart:         0,
			TimeEnd:           3600,
			DurationMin:       120,
			DurationMax:       300,
			DurationPreferred: 180,
			Priority:          1,

			ResourceConstraints: []ResourceConstraint{
				{
					ResourceID: "arm",
					MinAmount:  1,
					MaxAmount:  1,
				},
			},
			ResourceImpacts: []ResourceImpact{
				NewRateChangeImpact("battery", 2),
				NewSetInUseImpact("arm"),
			},
		},
	)
	require.NoError(t, errCr)
	require.NotNil(t, task)
	require.NotEmpty(t, task.ID)
	require.NoError(t, task.IsValidDefinition())

	require.Equal(t,
		TimeInterval{TimeStart: 0, TimeEnd: 3600},
		task.Window(),
	)

	require.Equal(t,
		[]string{"arm", "battery"},
		task.GetTouchedResourceIDs(),
	)

	require.NotNil(t, task.GetResourceConstraint("arm"))
	require.Nil(t, task.GetResourceConstraint("battery"))
	require.Len(t, task.GetResourceImpacts("battery"), 1)
	require.Len(t, task.GetResourceImpacts("arm"), 1)
}

func TestRequestedAmountPolicy(t *testing.T) {
	t.Run(
		"1. explicit amount wins",
		func(t *testing.T) {
			constraint := ResourceConstraint{
				ResourceID: "slots",
				MinAmount:  1,
				MaxAmount:  5,
				Amount:     3,
			}
			require.InDelta(t, 3, constraint.RequestedAmount(), 0)
		},
	)

	t.Run(
		"2. zero amount defaults to minimum",
		func(t *testing.T) {
			constraint := ResourceConstraint{
				ResourceID: "slots",
				MinAmount:  2,
				MaxAmount:  5,
			}
			require.InDelta(t, 2, constraint.RequestedAmount(), 0)
		},
	)
}

func TestTimeIntervalHalfOpen(t *testing.T) {
	first := TimeInterval{TimeStart: 0, TimeEnd: 60}
	second := TimeInterval{TimeStart: 60, TimeEnd: 120}

	require.False(t, first.Overlaps(&second))
	require.False(t, second.Overlaps(&first))

	overlapping := TimeInterval{TimeStart: 59, TimeEnd: 61}
	require.True(t, first.Overlaps(&overlapping))
	require.True(t, second.Overlaps(&overlapping))

	outer := TimeInterval{TimeStart: 0, TimeEnd: 120}
	require.True(t, outer.Contains(&first))
	require.True(t, outer.Contains(&second))
	require.False(t, first.Contains(&outer))

	require.True(t, first.ContainsInstant(0))
	require.False(t, first.ContainsInstant(60))
	require.EqualValues(t, 60, first.Duration())
}
