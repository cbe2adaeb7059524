package services

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DryRun: true,
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

// Strict-grouping databases reject selected columns that are not listed
// in GROUP BY, even when the grouped key determines them through a
// join. Every non-aggregated select column must therefore be grouped.
func TestCaseRowsQuery_GroupsAllSelectedColumns(t *testing.T) {
	svc := NewMilestoneProgressService(dryRunDB(t))

	var rows []milestoneCaseRow
	stmt := svc.caseRowsQuery(7).Scan(&rows).Statement
	sql := stmt.SQL.String()

	idx := strings.Index(sql, "GROUP BY")
	if idx < 0 {
		t.Fatalf("no GROUP BY in query: %s", sql)
	}
	grouped := sql[idx:]

	for _, col := range []string{
		"test_run_cases.id",
		"test_runs.id",
		"test_runs.name",
		"statuses.id",
		"statuses.name",
		"statuses.color",
		"statuses.is_completed",
		"test_cases.estimate",
	} {
		if !strings.Contains(grouped, col) {
			t.Errorf("GROUP BY missing %s: %s", col, grouped)
		}
	}
}
