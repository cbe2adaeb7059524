package analytics

import "testing"

func TestClampStaleDays(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 7}, {6, 7}, {7, 7}, {30, 30}, {90, 90}, {91, 90}, {10000, 90},
	}
	for _, tt := range tests {
		if got := ClampStaleDays(tt.in); got != tt.want {
			t.Errorf("ClampStaleDays(%d) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestClampMinExecutions(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 3}, {0, 3}, {3, 3}, {10, 10}, {20, 20}, {21, 20},
	}
	for _, tt := range tests {
		if got := ClampMinExecutions(tt.in); got != tt.want {
			t.Errorf("ClampMinExecutions(%d) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestClampLookbackDays(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0}, // all-time sentinel
		{1, 30}, {29, 30}, {30, 30}, {180, 180}, {365, 365}, {366, 365},
	}
	for _, tt := range tests {
		if got := ClampLookbackDays(tt.in); got != tt.want {
			t.Errorf("ClampLookbackDays(%d) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}
