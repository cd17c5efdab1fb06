package schedule

import "time"

// Recurrence describes how a slot repeats when created
type Recurrence string

const (
	RecurrenceNone   Recurrence = "NONE"
	RecurrenceDaily  Recurrence = "DAILY"
	RecurrenceWeekly Recurrence = "WEEKLY"
)

// maxOccurrences caps runaway repeat-until ranges.
const maxOccurrences = 366

// Occurrence is one expanded [Start, End) slot interval
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Expand generates the slot intervals a recurring schedule request describes.
// The first occurrence is [start, end); subsequent ones step by a day or a
// week until the occurrence would start after `until`. NONE yields the single
// interval regardless of until.
func Expand(start, end time.Time, rec Recurrence, until time.Time) []Occurrence {
	occurrences := []Occurrence{{Start: start, End: end}}
	if rec == RecurrenceNone {
		return occurrences
	}

	var step time.Duration
	switch rec {
	case RecurrenceDaily:
		step = 24 * time.Hour
	case RecurrenceWeekly:
		step = 7 * 24 * time.Hour
	default:
		return occurrences
	}

	for len(occurrences) < maxOccurrences {
		next := Occurrence{
			Start: occurrences[len(occurrences)-1].Start.Add(step),
			End:   occurrences[len(occurrences)-1].End.Add(step),
		}
		if next.Start.After(until) {
			break
		}
		occurrences = append(occurrences, next)
	}

	return occurrences
}

// IsValidRecurrence checks a recurrence string from the request
func IsValidRecurrence(s string) bool {
	switch Recurrence(s) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly:
		return true
	default:
		return false
	}
}
