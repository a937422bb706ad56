package cli

import (
	"testing"
	"time"
)

func TestFormatCost(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{4.5, "$4.50"},
		{42.37, "$42.4"},
		{512, "$512"},
		{5500, "$5,500"},
		{1234567.8, "$1,234,568"},
		{-300, "-$300"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.in); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMultiplier(t *testing.T) {
	if got := FormatMultiplier(1.05); got != "x1.05" {
		t.Errorf("FormatMultiplier(1.05) = %q", got)
	}
	if got := FormatMultiplier(0.1); got != "x0.10" {
		t.Errorf("FormatMultiplier(0.1) = %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	if got := FormatMonths(1); got != "1 mo" {
		t.Errorf("FormatMonths(1) = %q", got)
	}
	if got := FormatMonths(0); got != "0 mos" {
		t.Errorf("FormatMonths(0) = %q", got)
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.9213, "0.9213"},
		{1, "1.0000"},
		{36.5, "36.50"},
		{25400.4, "25,400"},
	}
	for _, tt := range tests {
		if got := FormatRate(tt.in); got != tt.want {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(3000, 1000); got != "+$2,000" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(1000, 3000); got != "-$2,000" {
		t.Errorf("FormatDelta down = %q", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := FormatElapsed(85 * time.Millisecond); got != "85ms" {
		t.Errorf("FormatElapsed(85ms) = %q", got)
	}
	if got := FormatElapsed(1234 * time.Millisecond); got != "1.2s" {
		t.Errorf("FormatElapsed(1.234s) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.4567); got != "45.7%" {
		t.Errorf("FormatPercent(0.4567) = %q", got)
	}
}
