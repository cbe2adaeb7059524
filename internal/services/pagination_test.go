package services

import (
	"encoding/json"
	"testing"
)

func TestPageSizeUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  PageSize
	}{
		{`25`, 25},
		{`"50"`, 50},
		{`"All"`, PageSizeAll},
		{`"all"`, PageSizeAll},
		{`"ALL"`, PageSizeAll},
	}

	for _, tt := range tests {
		var p PageSize
		if err := json.Unmarshal([]byte(tt.input), &p); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.input, err)
			continue
		}
		if p != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, p, tt.want)
		}
	}
}

func TestPageSizeUnmarshalInvalid(t *testing.T) {
	var p PageSize
	if err := json.Unmarshal([]byte(`"many"`), &p); err == nil {
		t.Error("expected error for non-numeric page size")
	}
}

func TestPageSizeNormalize(t *testing.T) {
	if got := PageSize(0).normalize(); got != defaultPageSize {
		t.Errorf("normalize(0) = %d, want %d", got, defaultPageSize)
	}
	if got := PageSize(PageSizeAll).normalize(); got != PageSizeAll {
		t.Errorf("normalize(All) = %d, want sentinel", got)
	}
	if got := PageSize(10).normalize(); got != 10 {
		t.Errorf("normalize(10) = %d, want 10", got)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := paginate(items, 1, 2); len(got) != 2 || got[0] != 1 {
		t.Errorf("page 1 size 2 = %v", got)
	}
	if got := paginate(items, 3, 2); len(got) != 1 || got[0] != 5 {
		t.Errorf("page 3 size 2 = %v", got)
	}
	if got := paginate(items, 4, 2); len(got) != 0 {
		t.Errorf("out-of-range page = %v, want empty", got)
	}
	if got := paginate(items, 0, 2); len(got) != 2 || got[0] != 1 {
		t.Errorf("page 0 treated as page 1 = %v", got)
	}
	if got := paginate(items, 1, PageSizeAll); len(got) != 5 {
		t.Errorf("All sentinel = %v, want all items", got)
	}
}
