package analytics

import "time"

// DateGrouping selects the calendar resolution for trend buckets.
type DateGrouping string

const (
	GroupDaily     DateGrouping = "daily"
	GroupWeekly    DateGrouping = "weekly"
	GroupMonthly   DateGrouping = "monthly"
	GroupQuarterly DateGrouping = "quarterly"
	GroupAnnually  DateGrouping = "annually"
)

// ParseDateGrouping normalizes a client-supplied grouping string.
// Unknown values fall back to weekly.
func ParseDateGrouping(s string) DateGrouping {
	switch DateGrouping(s) {
	case GroupDaily, GroupWeekly, GroupMonthly, GroupQuarterly, GroupAnnually:
		return DateGrouping(s)
	}
	return GroupWeekly
}

// PeriodBucket is an inclusive UTC time range. End is exactly one
// millisecond before the next bucket's start.
type PeriodBucket struct {
	Start time.Time `json:"period_start"`
	End   time.Time `json:"period_end"`
}

// BucketFor maps an instant to its calendar-aligned bucket. All math is
// UTC; the time-of-day of t is stripped before bucketing. Weeks start on
// Monday. Monthly, quarterly and annual buckets follow true calendar
// boundaries, so month lengths and leap years are handled exactly.
func BucketFor(t time.Time, g DateGrouping) PeriodBucket {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	var start, next time.Time
	switch g {
	case GroupDaily:
		start = day
		next = start.AddDate(0, 0, 1)
	case GroupWeekly:
		wd := int(day.Weekday())
		if wd == 0 {
			wd = 7 // Sunday belongs to the week that started the previous Monday
		}
		start = day.AddDate(0, 0, -(wd - 1))
		next = start.AddDate(0, 0, 7)
	case GroupMonthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(0, 1, 0)
	case GroupQuarterly:
		qm := time.Month((int(day.Month())-1)/3*3 + 1)
		start = time.Date(day.Year(), qm, 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(0, 3, 0)
	case GroupAnnually:
		start = time.Date(day.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(1, 0, 0)
	default:
		return BucketFor(t, GroupWeekly)
	}

	return PeriodBucket{Start: start, End: next.Add(-time.Millisecond)}
}

// BucketRange returns the ascending sequence of buckets covering [from, to].
// Returns nil when from is after to.
func BucketRange(from, to time.Time, g DateGrouping) []PeriodBucket {
	if from.After(to) {
		return nil
	}

	var buckets []PeriodBucket
	b := BucketFor(from, g)
	for !b.Start.After(to.UTC()) {
		buckets = append(buckets, b)
		b = BucketFor(b.End.Add(time.Millisecond), g)
	}
	return buckets
}
