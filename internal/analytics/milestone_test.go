package analytics

import (
	"math"
	"testing"
)

func estimate(v int64) *int64 { return &v }

func TestBuildSegments_GroupsRunCasesByStatus(t *testing.T) {
	runCases := []RunCaseRow{
		{TestRunID: 1, TestRunName: "Smoke", StatusID: 1, StatusName: "Passed", HasResult: true, Elapsed: 120, Completed: true},
		{TestRunID: 1, TestRunName: "Smoke", StatusID: 1, StatusName: "Passed", HasResult: true, Elapsed: 60, Completed: true},
		{TestRunID: 1, TestRunName: "Smoke", StatusID: 2, StatusName: "Failed", HasResult: true, Elapsed: 30, Completed: true},
		{TestRunID: 1, TestRunName: "Smoke", StatusID: 5, StatusName: "Untested", Estimate: estimate(300)},
	}

	segments := BuildSegments(runCases, nil)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	passed := segments[0]
	if passed.StatusID != 1 || passed.ItemCount != 2 || passed.Elapsed != 180 {
		t.Errorf("passed segment = %+v, expected itemCount 2 and elapsed 180", passed)
	}
	if passed.IsPending || passed.Estimate != nil {
		t.Error("a segment with results must not be pending or carry an estimate")
	}

	untested := segments[2]
	if !untested.IsPending {
		t.Error("untested segment should be pending")
	}
	if untested.Estimate == nil || *untested.Estimate != 300 {
		t.Errorf("untested estimate = %v, expected 300", untested.Estimate)
	}
	if untested.Elapsed != 0 {
		t.Errorf("pending segment elapsed = %d, expected 0", untested.Elapsed)
	}
}

func TestBuildSegments_SessionsAreSingletons(t *testing.T) {
	sessions := []SessionRow{
		{SessionID: 9, SessionName: "Exploratory", StatusID: 1, StatusName: "Passed", HasResult: true, Elapsed: 600, Completed: true},
		{SessionID: 10, SessionName: "Regression sweep", StatusID: 5, StatusName: "Untested", Estimate: estimate(900)},
	}

	segments := BuildSegments(nil, sessions)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	for _, s := range segments {
		if s.Type != SegmentSession {
			t.Errorf("type = %s, expected session", s.Type)
		}
		if s.ItemCount != 1 {
			t.Errorf("session itemCount = %d, expected 1", s.ItemCount)
		}
	}
	if !segments[1].IsPending {
		t.Error("session without a result should be pending")
	}
}

func TestBuildSegments_DeterministicOrder(t *testing.T) {
	runCases := []RunCaseRow{
		{TestRunID: 2, StatusID: 3, HasResult: true, Elapsed: 5},
		{TestRunID: 1, StatusID: 2, HasResult: true, Elapsed: 5},
		{TestRunID: 1, StatusID: 1, HasResult: true, Elapsed: 5},
	}
	sessions := []SessionRow{{SessionID: 4, StatusID: 1}}

	segments := BuildSegments(runCases, sessions)
	if segments[0].SourceID != 1 || segments[0].StatusID != 1 {
		t.Errorf("first segment = %+v", segments[0])
	}
	if segments[1].SourceID != 1 || segments[1].StatusID != 2 {
		t.Errorf("second segment = %+v", segments[1])
	}
	if segments[2].SourceID != 2 {
		t.Errorf("third segment = %+v", segments[2])
	}
	if segments[3].Type != SegmentSession {
		t.Error("sessions must come after test-run segments")
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		want      int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{12, 10, 100}, // capped
		{1, 3, 33},
	}

	for _, tt := range tests {
		if got := CompletionRate(tt.completed, tt.total); got != tt.want {
			t.Errorf("CompletionRate(%d, %d) = %d, expected %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSegmentWidths_ProportionalToElapsed(t *testing.T) {
	segments := []MilestoneSegment{
		{Elapsed: 300},
		{Elapsed: 100},
	}

	widths := SegmentWidths(segments)
	if math.Abs(widths[0]-75) > 1e-9 || math.Abs(widths[1]-25) > 1e-9 {
		t.Errorf("widths = %v, expected [75 25]", widths)
	}
}

func TestSegmentWidths_PendingFloor(t *testing.T) {
	segments := []MilestoneSegment{
		{Elapsed: 1000},
		{IsPending: true, Estimate: estimate(60)},
	}

	widths := SegmentWidths(segments)
	if widths[1] != minSegmentWidth {
		t.Errorf("pending width = %f, expected the %v%% floor", widths[1], minSegmentWidth)
	}
	if math.Abs(widths[0]+widths[1]-100) > 1e-9 {
		t.Errorf("widths sum = %f, expected 100", widths[0]+widths[1])
	}
}

func TestSegmentWidths_TinySegmentGetsFloor(t *testing.T) {
	segments := []MilestoneSegment{
		{Elapsed: 990},
		{Elapsed: 10}, // 1% raw, below the floor
	}

	widths := SegmentWidths(segments)
	if widths[1] != minSegmentWidth {
		t.Errorf("tiny segment width = %f, expected floor", widths[1])
	}
}

func TestSegmentWidths_AllPendingSplitsEvenly(t *testing.T) {
	segments := []MilestoneSegment{
		{IsPending: true},
		{IsPending: true},
		{IsPending: true},
		{IsPending: true},
	}

	widths := SegmentWidths(segments)
	for i, w := range widths {
		if math.Abs(w-25) > 1e-9 {
			t.Errorf("width[%d] = %f, expected 25", i, w)
		}
	}
}

func TestSegmentWidths_Empty(t *testing.T) {
	if widths := SegmentWidths(nil); widths != nil {
		t.Errorf("expected nil, got %v", widths)
	}
}
