package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/tripcost/internal/model"
)

func TestClampInputs(t *testing.T) {
	got := ClampInputs(model.Inputs{
		BaselinePerPersonUSD:   -10,
		ExtrasPerPersonUSD:     math.NaN(),
		NumPeople:              0,
		SharedBaselineFraction: -0.5,
		SharedExtrasFraction:   1.5,
		MonthlyIncomeUSD:       -1,
		EmergencyPercent:       101,
	})
	want := model.Inputs{
		NumPeople:            1,
		SharedExtrasFraction: 1,
		EmergencyPercent:     100,
	}
	if got != want {
		t.Fatalf("ClampInputs = %+v, want %+v", got, want)
	}
}

func TestClampInputs_KeepsValid(t *testing.T) {
	in := model.DefaultInputs()
	if got := ClampInputs(in); got != in {
		t.Fatalf("ClampInputs(defaults) = %+v, want unchanged %+v", got, in)
	}
}

func TestClampMultiplier(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, MinMultiplier},
		{-1, MinMultiplier},
		{math.NaN(), MinMultiplier},
		{0.1, 0.1},
		{1.35, 1.35},
	}
	for _, tt := range tests {
		if got := ClampMultiplier(tt.in); got != tt.want {
			t.Errorf("ClampMultiplier(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampPeople(t *testing.T) {
	for in, want := range map[int]int{-1: 1, 0: 1, 1: 1, 2: 2, 3: 2} {
		if got := ClampPeople(in); got != want {
			t.Errorf("ClampPeople(%d) = %d, want %d", in, got, want)
		}
	}
}
