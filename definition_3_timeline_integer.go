package scheduler

import "slices"

// queryFeasibleInteger sweeps the sub-intervals induced by existing
// allocation boundaries inside the candidate interval. The candidate
// fits when every sub-interval keeps the held sum plus the requested
// amount at or below the capacity.
func (timeline *ResourceTimeline) queryFeasibleInteger(interval *TimeInterval, amount float64) bool {
	if amount == 0 {
		return true
	}

	if amount > timeline.resource.MaxCapacity {
		return false
	}

	boundaries := []int64{
		interval.TimeStart,
		interval.TimeEnd,
	}

	for _, alloc := range timeline.allocations {
		if !alloc.Overlaps(interval) {
			continue
		}

		if alloc.TimeStart > interval.TimeStart {
			boundaries = append(boundaries, alloc.TimeStart)
		}

		if alloc.TimeEnd < interval.TimeEnd {
			boundaries = append(boundaries, alloc.TimeEnd)
		}
	}

	slices.Sort(boundaries)
	boundaries = slices.Compact(boundaries)

	for ix := 0; ix < len(boundaries)-1; ix++ {
		subInterval := TimeInterval{
			TimeStart: boundaries[ix],
			TimeEnd:   boundaries[ix+1],
		}

		held := amount

		for _, alloc := range timeline.allocations {
			if alloc.Overlaps(&subInterval) {
				held = held + alloc.Amount
			}
		}

		if held > timeline.resource.MaxCapacity {
			return false
		}
	}

	return true
}
