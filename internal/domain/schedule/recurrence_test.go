package schedule

import (
	"testing"
	"time"
)

func TestExpandNoneYieldsSingleOccurrence(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	occ := Expand(start, end, RecurrenceNone, start.AddDate(0, 1, 0))
	if len(occ) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occ))
	}
	if !occ[0].Start.Equal(start) || !occ[0].End.Equal(end) {
		t.Fatal("occurrence does not match the requested interval")
	}
}

func TestExpandDailyStepsByDay(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	until := start.AddDate(0, 0, 4)

	occ := Expand(start, end, RecurrenceDaily, until)
	if len(occ) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(occ))
	}
	for i := 1; i < len(occ); i++ {
		if occ[i].Start.Sub(occ[i-1].Start) != 24*time.Hour {
			t.Fatal("daily occurrences must be 24h apart")
		}
		if occ[i].End.Sub(occ[i].Start) != time.Hour {
			t.Fatal("occurrence duration must be preserved")
		}
	}
}

func TestExpandWeeklyStopsAtUntil(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	until := start.AddDate(0, 0, 15)

	occ := Expand(start, end, RecurrenceWeekly, until)
	// Day 0, 7 and 14; day 21 is past until.
	if len(occ) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occ))
	}
	last := occ[len(occ)-1]
	if last.Start.After(until) {
		t.Fatal("occurrence generated past the until bound")
	}
}

func TestExpandCapsRunawayRanges(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	until := start.AddDate(10, 0, 0)

	occ := Expand(start, end, RecurrenceDaily, until)
	if len(occ) != maxOccurrences {
		t.Fatalf("expected cap at %d occurrences, got %d", maxOccurrences, len(occ))
	}
}

func TestOverlapsUsesHalfOpenIntervals(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	s := &Schedule{StartTime: base, EndTime: base.Add(time.Hour)}

	if !s.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)) {
		t.Fatal("expected partial overlap to conflict")
	}
	// Back-to-back slots share an endpoint but do not conflict.
	if s.Overlaps(s.EndTime, s.EndTime.Add(time.Hour)) {
		t.Fatal("touching slots must not conflict")
	}
	if s.Overlaps(base.Add(-time.Hour), base) {
		t.Fatal("touching slots must not conflict")
	}
}
