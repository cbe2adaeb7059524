package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/caseflow/caseflow/internal/analytics"
	"github.com/caseflow/caseflow/internal/models"
	"github.com/caseflow/caseflow/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmptyReport = errors.New("junit report contains no test cases")

// junitTestSuites is the <testsuites> root. Single-suite reports that
// use <testsuite> as the root are handled separately in ParseJUnit.
type junitTestSuites struct {
	XMLName xml.Name         `xml:"testsuites"`
	Suites  []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string           `xml:"name,attr"`
	Timestamp string           `xml:"timestamp,attr"`
	Cases     []junitTestCase  `xml:"testcase"`
	Nested    []junitTestSuite `xml:"testsuite"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitOutcome `xml:"failure"`
	Error     *junitOutcome `xml:"error"`
	Skipped   *junitOutcome `xml:"skipped"`
}

type junitOutcome struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// ParsedResult is one normalized testcase from a JUnit report.
type ParsedResult struct {
	Name       string
	ResultType string
	ExecutedAt *time.Time
	Elapsed    int64 // seconds, rounded
	Message    string
}

// ParsedReport is the normalized form of one JUnit XML document.
type ParsedReport struct {
	SuiteName string
	Results   []ParsedResult
}

// ParseJUnit parses a JUnit XML document, accepting either <testsuites>
// or a bare <testsuite> root and flattening nested suites. Testcases
// with no outcome child are PASSED; suite timestamps (when parseable as
// RFC3339 or the common timezone-less variant) become ExecutedAt.
func ParseJUnit(data []byte) (*ParsedReport, error) {
	var root junitTestSuites
	if err := xml.Unmarshal(data, &root); err != nil {
		var single junitTestSuite
		if err2 := xml.Unmarshal(data, &single); err2 != nil {
			return nil, fmt.Errorf("parse junit xml: %w", err)
		}
		root.Suites = []junitTestSuite{single}
	}

	report := &ParsedReport{}
	var walk func(s junitTestSuite)
	walk = func(s junitTestSuite) {
		if report.SuiteName == "" && s.Name != "" {
			report.SuiteName = s.Name
		}
		executedAt := parseJUnitTimestamp(s.Timestamp)
		for _, tc := range s.Cases {
			report.Results = append(report.Results, normalizeTestCase(tc, executedAt))
		}
		for _, nested := range s.Nested {
			walk(nested)
		}
	}
	for _, s := range root.Suites {
		walk(s)
	}

	if len(report.Results) == 0 {
		return nil, ErrEmptyReport
	}
	return report, nil
}

func normalizeTestCase(tc junitTestCase, executedAt *time.Time) ParsedResult {
	name := tc.Name
	if tc.ClassName != "" {
		name = tc.ClassName + "." + tc.Name
	}

	r := ParsedResult{
		Name:       name,
		ResultType: analytics.ResultTypePassed,
		ExecutedAt: executedAt,
	}
	switch {
	case tc.Failure != nil:
		r.ResultType = analytics.ResultTypeFailure
		r.Message = outcomeMessage(tc.Failure)
	case tc.Error != nil:
		r.ResultType = analytics.ResultTypeError
		r.Message = outcomeMessage(tc.Error)
	case tc.Skipped != nil:
		r.ResultType = analytics.ResultTypeSkipped
		r.Message = outcomeMessage(tc.Skipped)
	}
	if secs, err := strconv.ParseFloat(tc.Time, 64); err == nil && secs > 0 {
		r.Elapsed = int64(math.Round(secs))
	}
	return r
}

func outcomeMessage(o *junitOutcome) string {
	if o.Message != "" {
		return o.Message
	}
	return o.Body
}

func parseJUnitTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

type JUnitImportService struct {
	db *gorm.DB
}

func NewJUnitImportService(db *gorm.DB) *JUnitImportService {
	return &JUnitImportService{db: db}
}

type JUnitImportResult struct {
	ImportID  string `json:"import_id"`
	SuiteName string `json:"suite_name"`
	Total     int    `json:"total"`
	Matched   int    `json:"matched"`
	Unmatched int    `json:"unmatched"`
}

// Import parses raw JUnit XML and stores one AutomatedRun with a result
// row per testcase that matches a Caseflow case by title. Results whose
// name matches nothing are counted but not stored; a report where
// nothing matches still creates the (empty) run so the import is
// auditable.
func (s *JUnitImportService) Import(projectID uint, raw []byte, source string, importedBy uint) (*JUnitImportResult, error) {
	return s.ImportWithID(uuid.NewString(), projectID, raw, source, importedBy)
}

// ImportWithID runs an import under a caller-supplied batch id. Queued
// imports use this so the id handed back at enqueue time matches the
// stored run.
func (s *JUnitImportService) ImportWithID(importID string, projectID uint, raw []byte, source string, importedBy uint) (*JUnitImportResult, error) {
	report, err := ParseJUnit(raw)
	if err != nil {
		return nil, err
	}

	var cases []models.TestCase
	if err := s.db.Where("project_id = ?", projectID).Find(&cases).Error; err != nil {
		return nil, err
	}
	caseByTitle := make(map[string]uint, len(cases))
	for _, tc := range cases {
		caseByTitle[tc.Title] = tc.ID
	}

	now := time.Now().UTC()
	result := &JUnitImportResult{
		ImportID:  importID,
		SuiteName: report.SuiteName,
		Total:     len(report.Results),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		run := models.AutomatedRun{
			ProjectID:  projectID,
			ImportID:   importID,
			SuiteName:  report.SuiteName,
			Source:     source,
			ImportedBy: importedBy,
		}
		if err := tx.Create(&run).Error; err != nil {
			return err
		}

		for _, parsed := range report.Results {
			caseID, ok := caseByTitle[parsed.Name]
			if !ok {
				result.Unmatched++
				continue
			}
			executedAt := parsed.ExecutedAt
			if executedAt == nil {
				t := now
				executedAt = &t
			}
			row := models.AutomatedResult{
				AutomatedRunID: run.ID,
				TestCaseID:     caseID,
				ResultType:     parsed.ResultType,
				ExecutedAt:     executedAt,
				Elapsed:        parsed.Elapsed,
				Message:        parsed.Message,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			result.Matched++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("import_id", importID).
		Uint("project_id", projectID).
		Int("matched", result.Matched).
		Int("unmatched", result.Unmatched).
		Msg("junit report imported")
	return result, nil
}
