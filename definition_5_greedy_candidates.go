package scheduler

import "slices"

// candidateDurations enumerates durations deterministically: preferred
// first, then widening in step increments alternately toward the minimum
// and the maximum, with both bounds always included last.
func candidateDurations(task *Task, step int64) []int64 {
	durations := []int64{task.DurationPreferred}

	for offset := step; ; offset = offset + step {
		lower := task.DurationPreferred - offset
		upper := task.DurationPreferred + offset

		if lower < task.DurationMin && upper > task.DurationMax {
			break
		}

		if lower >= task.DurationMin {
			durations = append(durations, lower)
		}

		if upper <= task.DurationMax {
			durations = append(durations, upper)
		}
	}

	if !slices.Contains(durations, task.DurationMin) {
		durations = append(durations, task.DurationMin)
	}

	if !slices.Contains(durations, task.DurationMax) {
		durations = append(durations, task.DurationMax)
	}

	return durations
}
