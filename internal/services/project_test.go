package services

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Checkout Service", "checkout-service"},
		{"API (v2)", "api-v2"},
		{"  spaced out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"___", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.name); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
