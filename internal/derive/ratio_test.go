package derive

import (
	"math"
	"testing"

	"github.com/newthinker/tradejournal/internal/core"
)

func TestNormalizeRRRatio(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical", "1:2", "1:2"},
		{"spaces and trailing zeros", " 1 : 2.00 ", "1:2"},
		{"scaled", "2:4", "1:2"},
		{"fractional", "2:5", "1:2.5"},
		{"rounded", "3:4", "1:1.33"},
		{"plain multiple", "2", "1:2"},
		{"plain fractional", "1.50", "1:1.5"},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"zero left", "0:2", "0:2"},
		{"empty left", ":2", ":2"},
		{"zero right", "1:0", "1:0"},
		{"negative right", "1:-2", "1:-2"},
		{"negative left", "-1:2", "1:-2"},
		{"non numeric side", "a:2", "a:2"},
		{"three parts", "1:2:3", "1:2:3"},
		{"plain zero", "0", "0"},
		{"plain negative", "-1", "-1"},
		{"garbage", "abc", "abc"},
		{"trimmed on failure", "  1:x ", "1:x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRRRatio(tt.in); got != tt.want {
				t.Errorf("NormalizeRRRatio(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeRRMultiple(t *testing.T) {
	if got := NormalizeRRMultiple(2); got != "1:2" {
		t.Errorf("got %q, want 1:2", got)
	}
	if got := NormalizeRRMultiple(2.499); got != "1:2.5" {
		t.Errorf("got %q, want 1:2.5", got)
	}
	if got := NormalizeRRMultiple(0); got != "0" {
		t.Errorf("got %q, want 0", got)
	}
	if got := NormalizeRRMultiple(math.NaN()); got != "NaN" {
		t.Errorf("got %q, want NaN", got)
	}
}

func TestNormalizeRRValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"1:3", "1:3"},
		{core.String("4:6"), "1:1.5"},
		{(*string)(nil), ""},
		{2.0, "1:2"},
		{core.Float(3), "1:3"},
		{(*float64)(nil), ""},
		{2, "1:2"},
		{struct{}{}, ""},
	}
	for _, tt := range tests {
		if got := NormalizeRRValue(tt.in); got != tt.want {
			t.Errorf("NormalizeRRValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRRRatio_Idempotent(t *testing.T) {
	for _, in := range []string{"1:2", "2:5", "3:7", "1.5", "10"} {
		once := NormalizeRRRatio(in)
		if twice := NormalizeRRRatio(once); twice != once {
			t.Errorf("normalizing %q twice gave %q then %q", in, once, twice)
		}
	}
}
