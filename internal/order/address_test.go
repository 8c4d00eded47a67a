package order

import "testing"

func TestIsAddressComplete(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"street and city", "123 Main St, Seattle", true},
		{"street city state", "123 Main St, Seattle, WA", true},
		{"no comma", "123 Main St Seattle", false},
		{"too few tokens", "123, Seattle", false},
		{"street without digit", "Main Street, Seattle, WA", false},
		{"street too short", "12 St, Seattle, WA", false},
		{"city is bare region code", "123 Main St, WA", false},
		{"city is region code lowercase", "123 Main St, wa", false},
		{"city too short", "123 Main St, Ab", false},
		{"city without letters", "123 Main St, 98101, WA", false},
		{"business prefix", "Pike Place Fish Co, 86 Pike Pl, Seattle", false}, // street segment has no digit
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAddressComplete(tt.address, "WA"); got != tt.want {
				t.Errorf("IsAddressComplete(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}

func TestIsAddressCompleteRegionCaseInsensitive(t *testing.T) {
	if IsAddressComplete("123 Main St, Wa", "WA") {
		t.Error("bare region code in any case should not count as a city")
	}
	if !IsAddressComplete("123 Main St, Walla Walla", "WA") {
		t.Error("city names starting with the region code must still pass")
	}
}
