package services

import (
	"testing"
	"time"
)

func TestIsBusinessDay(t *testing.T) {
	s := NewCalendarService()

	saturday := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	if s.IsBusinessDay(saturday, "US") {
		t.Error("Saturday must not be a business day")
	}

	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !s.IsBusinessDay(monday, "US") {
		t.Error("ordinary Monday must be a business day")
	}

	// July 4th 2026 falls on a Saturday; the observed holiday is Friday.
	observed := time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC)
	if s.IsBusinessDay(observed, "US") {
		t.Error("observed Independence Day must not be a business day")
	}

	// Unknown country codes degrade to a weekday check.
	if !s.IsBusinessDay(observed, "ZZ") {
		t.Error("unknown country should only exclude weekends")
	}
}
