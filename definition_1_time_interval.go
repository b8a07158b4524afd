package scheduler

import "fmt"

// TimeInterval is half-open: closed at TimeStart, open at TimeEnd.
// Two intervals abutting at a shared instant do not overlap.
type TimeInterval struct {
	TimeStart int64
	TimeEnd   int64
}

func (interval *TimeInterval) Duration() int64 {
	return interval.TimeEnd - interval.TimeStart
}

func (interval *TimeInterval) Overlaps(other *TimeInterval) bool {
	return interval.TimeStart < other.TimeEnd &&
		other.TimeStart < interval.TimeEnd
}

func (interval *TimeInterval) Contains(other *TimeInterval) bool {
	return interval.TimeStart <= other.TimeStart &&
		other.TimeEnd <= interval.TimeEnd
}

func (interval *TimeInterval) ContainsInstant(atTimestamp int64) bool {
	return interval.TimeStart <= atTimestamp &&
		atTimestamp < interval.TimeEnd
}

func (interval TimeInterval) String() string {
	return fmt.Sprintf(
		"[%d-%d)",

		interval.TimeStart,
		interval.TimeEnd,
	)
}
