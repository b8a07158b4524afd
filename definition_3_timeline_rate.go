package scheduler

import "slices"

func (timeline *ResourceTimeline) lockConflicts(interval *TimeInterval) bool {
	for ix := range timeline.locks {
		if timeline.locks[ix].Overlaps(interval) {
			return true
		}
	}

	return false
}

// queryFeasibleRate simulates the candidate's rate-change impacts merged
// into the committed event set. The rate is piecewise constant between
// event boundaries, so the value is monotonic on each segment and only
// the boundaries need checking against [MinValue, MaxValue].
func (timeline *ResourceTimeline) queryFeasibleRate(interval *TimeInterval, impacts []ResourceImpact) bool {
	merged := make([]impactEvent, 0, len(timeline.rateEvents)+len(impacts))
	merged = append(merged, timeline.rateEvents...)

	for _, impact := range impacts {
		if impact.Kind != ImpactRateChange {
			continue
		}

		merged = append(
			merged,
			impactEvent{
				Impact:       impact,
				TimeInterval: *interval,
			},
		)
	}

	if len(merged) == 0 {
		return true
	}

	boundaries := make([]int64, 0, 2*len(merged)+1)
	boundaries = append(boundaries, timeline.resource.EpochStart)

	for _, event := range merged {
		boundaries = append(boundaries, event.TimeStart, event.TimeEnd)
	}

	slices.Sort(boundaries)
	boundaries = slices.Compact(boundaries)

	// Cumulative integral of the effective rate from the earliest
	// boundary; anchoring at EpochStart turns it into the value curve.
	integral := make([]float64, len(boundaries))

	for ix := 0; ix < len(boundaries)-1; ix++ {
		rate := timeline.resource.BaselineRate

		for _, event := range merged {
			if event.ContainsInstant(boundaries[ix]) {
				rate = rate * event.Impact.RateMultiplier
			}
		}

		elapsed := boundaries[ix+1] - boundaries[ix]

		integral[ix+1] = integral[ix] + rate*float64(elapsed)
	}

	epochIx, _ := slices.BinarySearch(boundaries, timeline.resource.EpochStart)

	for ix := range boundaries {
		value := timeline.resource.InitialValue + integral[ix] - integral[epochIx]

		if value < timeline.resource.MinValue || value > timeline.resource.MaxValue {
			return false
		}
	}

	return true
}
