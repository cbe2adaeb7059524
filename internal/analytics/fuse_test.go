package analytics

import (
	"testing"
	"time"
)

func exec(id uint, at string, success, failure bool, src ExecutionSource) Execution {
	var t *time.Time
	if at != "" {
		v := ts(at)
		t = &v
	}
	return Execution{TestCaseID: 1, RecordID: id, ExecutedAt: t, IsSuccess: success, IsFailure: failure, Source: src}
}

func TestFuse_OrdersByExecutedAtDescending(t *testing.T) {
	manual := []Execution{
		exec(1, "2024-03-01T10:00:00Z", true, false, SourceManual),
		exec(2, "2024-03-03T10:00:00Z", false, true, SourceManual),
	}
	automated := []Execution{
		exec(3, "2024-03-02T10:00:00Z", true, false, SourceAutomated),
	}

	fused := Fuse(manual, automated)
	if len(fused) != 3 {
		t.Fatalf("expected 3 executions, got %d", len(fused))
	}
	if fused[0].RecordID != 2 || fused[1].RecordID != 3 || fused[2].RecordID != 1 {
		t.Errorf("order = [%d %d %d], expected [2 3 1]", fused[0].RecordID, fused[1].RecordID, fused[2].RecordID)
	}
}

func TestFuse_NoSourcePriority(t *testing.T) {
	// An older automated result must not shadow a newer manual one or vice versa.
	manual := []Execution{exec(1, "2024-03-05T10:00:00Z", false, true, SourceManual)}
	automated := []Execution{exec(2, "2024-03-01T10:00:00Z", true, false, SourceAutomated)}

	latest, ok := Latest(manual, automated)
	if !ok {
		t.Fatal("expected a latest execution")
	}
	if latest.Source != SourceManual || !latest.IsFailure {
		t.Errorf("latest = %+v, expected the newer manual failure", latest)
	}

	latest, _ = Latest(
		[]Execution{exec(1, "2024-03-01T10:00:00Z", false, true, SourceManual)},
		[]Execution{exec(2, "2024-03-05T10:00:00Z", true, false, SourceAutomated)},
	)
	if latest.Source != SourceAutomated || !latest.IsSuccess {
		t.Errorf("latest = %+v, expected the newer automated pass", latest)
	}
}

func TestFuse_ExcludesNeutralAndUntimestamped(t *testing.T) {
	manual := []Execution{
		exec(1, "", true, false, SourceManual),                      // never executed
		exec(2, "2024-03-01T10:00:00Z", false, false, SourceManual), // neutral status
	}
	automated := []Execution{
		exec(3, "2024-03-02T10:00:00Z", false, false, SourceAutomated), // skipped
	}

	if fused := Fuse(manual, automated); len(fused) != 0 {
		t.Errorf("expected empty timeline, got %d entries", len(fused))
	}
	if _, ok := Latest(manual, automated); ok {
		t.Error("Latest should report ok=false for a case with no qualifying executions")
	}
}

func TestFuse_SameInstantIsDeterministic(t *testing.T) {
	// Manual and automated disagree at the literal same instant: no
	// reconciliation, both stay in the timeline in a stable order.
	manual := []Execution{exec(5, "2024-03-01T10:00:00Z", true, false, SourceManual)}
	automated := []Execution{exec(9, "2024-03-01T10:00:00Z", false, true, SourceAutomated)}

	first := Fuse(manual, automated)
	if len(first) != 2 {
		t.Fatalf("expected both records, got %d", len(first))
	}
	for i := 0; i < 10; i++ {
		again := Fuse(manual, automated)
		if again[0].RecordID != first[0].RecordID || again[1].RecordID != first[1].RecordID {
			t.Fatal("tie-break order is not deterministic")
		}
	}
}

func TestClassifyResultType(t *testing.T) {
	tests := []struct {
		resultType string
		success    bool
		failure    bool
		ok         bool
	}{
		{ResultTypePassed, true, false, true},
		{ResultTypeFailure, false, true, true},
		{ResultTypeError, false, true, true},
		{ResultTypeSkipped, false, false, false},
		{"UNKNOWN", false, false, false},
	}

	for _, tt := range tests {
		success, failure, ok := ClassifyResultType(tt.resultType)
		if success != tt.success || failure != tt.failure || ok != tt.ok {
			t.Errorf("ClassifyResultType(%s) = (%v, %v, %v), expected (%v, %v, %v)",
				tt.resultType, success, failure, ok, tt.success, tt.failure, tt.ok)
		}
	}
}
