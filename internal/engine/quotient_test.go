package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/Veraticus/grocery-manager/internal/common"
)

func TestComputeQuotient(t *testing.T) {
	tests := []struct {
		name        string
		frequency   int
		weight      int
		groceryDays int
		want        float64
	}{
		{"once every two weeks, one grocery day", 1, 2, 1, 0.5},
		{"once every two weeks, three grocery days", 1, 2, 3, 0.15},
		{"once every two weeks, four grocery days rounds half to even", 1, 2, 4, 0.1},
		{"weekly, one grocery day", 1, 1, 1, 1.0},
		{"monthly, two grocery days", 1, 4, 2, 0.1},
		{"monthly, three grocery days", 1, 4, 3, 0.1},
		{"monthly, every day", 1, 4, 7, 0.05},
		{"three a week, two grocery days", 3, 1, 2, 1.5},
		{"twice a week, every day", 2, 1, 7, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeQuotient(tt.frequency, tt.weight, tt.groceryDays)
			if err != nil {
				t.Fatalf("ComputeQuotient() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeQuotient(%d, %d, %d) = %v, want %v",
					tt.frequency, tt.weight, tt.groceryDays, got, tt.want)
			}
		})
	}
}

func TestComputeQuotient_ZeroDivisor(t *testing.T) {
	tests := []struct {
		name        string
		weight      int
		groceryDays int
	}{
		{"no grocery days", 2, 0},
		{"no time frame weight", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeQuotient(1, tt.weight, tt.groceryDays)
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("ComputeQuotient() error = %v, want ErrDivisionByZero", err)
			}
			if !errors.Is(err, common.ErrConfiguration) {
				t.Errorf("ComputeQuotient() error = %v, want ErrConfiguration", err)
			}
			if math.IsInf(got, 0) || math.IsNaN(got) {
				t.Errorf("ComputeQuotient() = %v, want a finite value", got)
			}
		})
	}
}

func TestRoundToTwentieth(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.0, 0.0},
		{0.024, 0.0},
		{0.026, 0.05},
		{0.125, 0.1},
		{0.375, 0.4},
		{0.9, 0.9},
		{1.0 / 3.0, 0.35},
	}

	for _, tt := range tests {
		if got := roundToTwentieth(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("roundToTwentieth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
