package usecase

import "testing"

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{20.00, 2000},
		{19.99, 1999},
		{40.00, 4000},
		// Exact halves round to the nearest even cent.
		{0.125, 12},
		{0.375, 38},
	}

	for _, tc := range cases {
		if got := toMinorUnits(tc.amount); got != tc.want {
			t.Fatalf("toMinorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
