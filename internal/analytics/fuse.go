package analytics

import (
	"sort"
	"time"
)

// ExecutionSource tags where an execution record came from. Used for
// filtering only; it carries no precedence in the fused timeline.
type ExecutionSource string

const (
	SourceManual    ExecutionSource = "manual"
	SourceAutomated ExecutionSource = "automated"
)

// Automated result types as reported by JUnit imports.
const (
	ResultTypePassed  = "PASSED"
	ResultTypeFailure = "FAILURE"
	ResultTypeError   = "ERROR"
	ResultTypeSkipped = "SKIPPED"
)

// Execution is one normalized timeline entry for a test case, built from
// either a manual test-run result or an automated (JUnit) result.
type Execution struct {
	TestCaseID uint
	RecordID   uint
	ExecutedAt *time.Time
	IsSuccess  bool
	IsFailure  bool
	Source     ExecutionSource
}

// qualifies reports whether a record counts as an actual execution.
// Records with no timestamp or with a neutral status (neither success
// nor failure, e.g. untested or skipped) are excluded entirely.
func (e Execution) qualifies() bool {
	return e.ExecutedAt != nil && (e.IsSuccess || e.IsFailure)
}

// ClassifyResultType derives success/failure flags from an automated
// result's declared type when no explicit status mapping exists.
// SKIPPED and unknown types report ok=false and are excluded, matching
// the manual "skipped" exclusion.
func ClassifyResultType(resultType string) (success, failure, ok bool) {
	switch resultType {
	case ResultTypePassed:
		return true, false, true
	case ResultTypeFailure, ResultTypeError:
		return false, true, true
	}
	return false, false, false
}

// Fuse merges manual and automated execution records for one test case
// into a single timeline ordered by ExecutedAt descending. Non-qualifying
// records are dropped. When two records share the exact same instant the
// order is deterministic (source, then record ID) but carries no
// precedence semantics: both remain independent executions.
func Fuse(manual, automated []Execution) []Execution {
	fused := make([]Execution, 0, len(manual)+len(automated))
	for _, e := range manual {
		if e.qualifies() {
			fused = append(fused, e)
		}
	}
	for _, e := range automated {
		if e.qualifies() {
			fused = append(fused, e)
		}
	}

	sort.SliceStable(fused, func(i, j int) bool {
		ti, tj := *fused[i].ExecutedAt, *fused[j].ExecutedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		if fused[i].Source != fused[j].Source {
			return fused[i].Source < fused[j].Source
		}
		return fused[i].RecordID < fused[j].RecordID
	})
	return fused
}

// Latest returns the single most recent qualifying execution across both
// sources, or ok=false when the case has never been executed.
func Latest(manual, automated []Execution) (Execution, bool) {
	fused := Fuse(manual, automated)
	if len(fused) == 0 {
		return Execution{}, false
	}
	return fused[0], true
}
