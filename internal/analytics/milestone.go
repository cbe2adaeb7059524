package analytics

import (
	"math"
	"sort"
)

// SegmentType distinguishes the two kinds of milestone work items.
type SegmentType string

const (
	SegmentTestRun SegmentType = "test-run"
	SegmentSession SegmentType = "session"
)

// RunCaseRow is one test-run case of a milestone with its current status
// and, when a result exists, the summed result + step-result elapsed.
type RunCaseRow struct {
	TestRunID   uint
	TestRunName string
	StatusID    uint
	StatusName  string
	StatusColor string
	HasResult   bool
	Elapsed     int64  // seconds, result + step results, when HasResult
	Estimate    *int64 // seconds, case estimate, relevant while pending
	Completed   bool   // status IsCompleted flag
}

// SessionRow is one exploratory session of a milestone. Sessions always
// map to exactly one segment.
type SessionRow struct {
	SessionID   uint
	SessionName string
	StatusID    uint
	StatusName  string
	StatusColor string
	HasResult   bool
	Elapsed     int64
	Estimate    *int64
	Completed   bool
}

// MilestoneSegment is one unit of a milestone's progress bar: a status
// group of a test run, or a session. Elapsed and estimate are mutually
// exclusive by construction: a segment is either done (has elapsed) or
// pending (has estimate).
type MilestoneSegment struct {
	Type        SegmentType `json:"type"`
	SourceID    uint        `json:"source_id"`
	SourceName  string      `json:"source_name"`
	StatusID    uint        `json:"status_id"`
	StatusName  string      `json:"status_name"`
	StatusColor string      `json:"status_color"`
	Elapsed     int64       `json:"elapsed"`
	Estimate    *int64      `json:"estimate"`
	IsPending   bool        `json:"is_pending"`
	ItemCount   int         `json:"item_count"`
}

// BuildSegments folds run cases into one segment per (testRunId, statusId)
// pair and appends one segment per session. Elapsed sums over cases with
// results; estimate sums case estimates over cases still pending. Output
// order is deterministic: test-run segments by run then status ID,
// followed by sessions by session ID.
func BuildSegments(runCases []RunCaseRow, sessions []SessionRow) []MilestoneSegment {
	type groupKey struct {
		runID    uint
		statusID uint
	}

	groups := make(map[groupKey]*MilestoneSegment)
	for _, row := range runCases {
		k := groupKey{row.TestRunID, row.StatusID}
		seg, ok := groups[k]
		if !ok {
			seg = &MilestoneSegment{
				Type:        SegmentTestRun,
				SourceID:    row.TestRunID,
				SourceName:  row.TestRunName,
				StatusID:    row.StatusID,
				StatusName:  row.StatusName,
				StatusColor: row.StatusColor,
				IsPending:   true,
			}
			groups[k] = seg
		}

		seg.ItemCount++
		if row.HasResult {
			seg.Elapsed += row.Elapsed
			seg.IsPending = false
		} else if row.Estimate != nil {
			if seg.Estimate == nil {
				seg.Estimate = new(int64)
			}
			*seg.Estimate += *row.Estimate
		}
	}

	segments := make([]MilestoneSegment, 0, len(groups)+len(sessions))
	for _, seg := range groups {
		segments = append(segments, *seg)
	}
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].SourceID != segments[j].SourceID {
			return segments[i].SourceID < segments[j].SourceID
		}
		return segments[i].StatusID < segments[j].StatusID
	})

	for _, s := range sessions {
		segments = append(segments, MilestoneSegment{
			Type:        SegmentSession,
			SourceID:    s.SessionID,
			SourceName:  s.SessionName,
			StatusID:    s.StatusID,
			StatusName:  s.StatusName,
			StatusColor: s.StatusColor,
			Elapsed:     s.Elapsed,
			Estimate:    s.Estimate,
			IsPending:   !s.HasResult,
			ItemCount:   1,
		})
	}
	return segments
}

// CompletionRate returns min(100, completed/total*100) rounded, 0 when
// the milestone has no cases.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	rate := int(math.Round(float64(completed) / float64(total) * 100))
	if rate > 100 {
		return 100
	}
	return rate
}

// minSegmentWidth keeps pending and tiny segments visible in the bar.
const minSegmentWidth = 3.0

// SegmentWidths computes rendering widths (percentages summing to 100)
// proportional to elapsed time, with a minimum-width floor for pending
// segments and for segments that would fall below it. When no segment
// has elapsed time the bar splits evenly.
func SegmentWidths(segments []MilestoneSegment) []float64 {
	n := len(segments)
	if n == 0 {
		return nil
	}

	var totalElapsed int64
	for _, s := range segments {
		totalElapsed += s.Elapsed
	}

	widths := make([]float64, n)
	if totalElapsed == 0 {
		for i := range widths {
			widths[i] = 100.0 / float64(n)
		}
		return widths
	}

	floored := make([]bool, n)
	flooredCount := 0
	for i, s := range segments {
		widths[i] = float64(s.Elapsed) / float64(totalElapsed) * 100
		if s.IsPending || widths[i] < minSegmentWidth {
			floored[i] = true
			flooredCount++
		}
	}

	if flooredCount == n || minSegmentWidth*float64(flooredCount) >= 100 {
		for i := range widths {
			widths[i] = 100.0 / float64(n)
		}
		return widths
	}

	// Re-scale the proportional segments into whatever the floors leave over.
	var proportionalSum float64
	for i := range segments {
		if !floored[i] {
			proportionalSum += widths[i]
		}
	}
	remaining := 100 - minSegmentWidth*float64(flooredCount)
	for i := range widths {
		if floored[i] {
			widths[i] = minSegmentWidth
		} else {
			widths[i] = widths[i] / proportionalSum * remaining
		}
	}
	return widths
}
