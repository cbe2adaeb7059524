package analytics

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
)

// TrendEntity is one countable entity (typically a test case) with its
// creation time, soft-delete flag and grouping dimension label.
type TrendEntity struct {
	Dimension string
	Automated bool
	CreatedAt time.Time
	Deleted   bool
}

// TrendCell holds the pivoted counts of one dimension in one period.
// Change fields are nil for the first period (nothing to compare with).
type TrendCell struct {
	Automated        int  `json:"automated"`
	Manual           int  `json:"manual"`
	Total            int  `json:"total"`
	PercentAutomated int  `json:"percent_automated"`
	AutomatedChange  *int `json:"automated_change"`
	ManualChange     *int `json:"manual_change"`
}

// TrendRow is one period of the pivoted trend, keyed by dimension.
// Cells stay strongly typed here; flattening to string-keyed columns
// happens only at the serialization boundary.
type TrendRow struct {
	Period PeriodBucket
	Cells  map[string]TrendCell
}

// DimensionKey strips all whitespace from a dimension label to form its
// column-key prefix. Two labels that strip to the same key collide; this
// is a documented limitation, not silently resolved here.
func DimensionKey(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, label)
}

// PivotTrend buckets entities into the given ascending periods and pivots
// cumulative counts per dimension. The count model is cumulative: a
// period includes every non-deleted entity created on or before the
// period's end, not just entities created during the period. Rows come
// back in the same ascending period order.
func PivotTrend(entities []TrendEntity, buckets []PeriodBucket) []TrendRow {
	keys := make([]string, 0)
	seen := make(map[string]bool)
	for _, e := range entities {
		k := DimensionKey(e.Dimension)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	rows := make([]TrendRow, 0, len(buckets))
	var prev map[string]TrendCell

	for _, b := range buckets {
		cells := make(map[string]TrendCell, len(keys))
		for _, k := range keys {
			cells[k] = TrendCell{}
		}

		for _, e := range entities {
			if e.Deleted || e.CreatedAt.UTC().After(b.End) {
				continue
			}
			k := DimensionKey(e.Dimension)
			c := cells[k]
			if e.Automated {
				c.Automated++
			} else {
				c.Manual++
			}
			cells[k] = c
		}

		for k, c := range cells {
			c.Total = c.Automated + c.Manual
			if c.Total > 0 {
				c.PercentAutomated = int(math.Round(float64(c.Automated) / float64(c.Total) * 100))
			}
			if prev != nil {
				p := prev[k]
				ac := c.Automated - p.Automated
				mc := c.Manual - p.Manual
				c.AutomatedChange = &ac
				c.ManualChange = &mc
			}
			cells[k] = c
		}

		rows = append(rows, TrendRow{Period: b, Cells: cells})
		prev = cells
	}
	return rows
}
