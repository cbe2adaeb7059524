package services

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PageSizeAll is the resolved value of the "All" page-size sentinel.
const PageSizeAll = -1

const defaultPageSize = 25

// PageSize accepts either a number or the string "All" in JSON request
// bodies. "All" resolves to the PageSizeAll sentinel.
type PageSize int

func (p *PageSize) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if strings.EqualFold(s, "all") {
		*p = PageSizeAll
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*p = PageSize(n)
	return nil
}

func (p PageSize) MarshalJSON() ([]byte, error) {
	if p == PageSizeAll {
		return json.Marshal("All")
	}
	return json.Marshal(int(p))
}

// normalize resolves the effective page size: the sentinel passes
// through, zero and negatives fall back to the default.
func (p PageSize) normalize() int {
	if p == PageSizeAll {
		return PageSizeAll
	}
	if p <= 0 {
		return defaultPageSize
	}
	return int(p)
}

// paginate slices out one page. Page numbers are 1-based; page 0 means
// page 1. size PageSizeAll returns everything.
func paginate[T any](items []T, page, size int) []T {
	if size == PageSizeAll {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
