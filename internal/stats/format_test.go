package stats

import "testing"

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{23456, "23,456"},
		{1234567, "1,234,567"},
		{2.5, "2.5"},
		{1234.25, "1,234.25"},
		{-1500, "-1,500"},
		{-0.5, "-0.5"},
	}
	for _, tc := range cases {
		if got := FormatCount(tc.in); got != tc.want {
			t.Fatalf("FormatCount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCountKeepsShortestDecimals(t *testing.T) {
	if got := FormatCount(1234.1); got != "1,234.1" {
		t.Fatalf("expected 1,234.1, got %q", got)
	}
}
