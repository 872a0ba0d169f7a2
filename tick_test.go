package motif_test

import (
	"fmt"
	"testing"

	"github.com/vsariola/motif"
)

func TestFromBeats(t *testing.T) {
	var tests = []struct {
		numerator, denominator uint64
		want                   motif.Tick
	}{
		{1, 4, 480},
		{1, 16, 120},
		{3, 8, 720},
		{1, 3, 640},
		{1, 1, 1920},
		{0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.numerator, tt.denominator), func(t *testing.T) {
			if got := motif.FromBeats(tt.numerator, tt.denominator); got != tt.want {
				t.Errorf("FromBeats(%v, %v) = %v, want %v", tt.numerator, tt.denominator, got, tt.want)
			}
		})
	}
}

func TestTickArithmetic(t *testing.T) {
	if got := motif.FromQuarters(2); got != 960 {
		t.Errorf("FromQuarters(2) = %v, want 960", uint64(got))
	}
	if got := motif.Tick(100).Add(20); got != 120 {
		t.Errorf("Add = %v, want 120", uint64(got))
	}
	if got := motif.Tick(100).Sub(20); got != 80 {
		t.Errorf("Sub = %v, want 80", uint64(got))
	}
	if got := motif.Tick(10).SaturatingSub(20); got != 0 {
		t.Errorf("SaturatingSub below zero = %v, want 0", uint64(got))
	}
	if got := motif.Tick(720).Quarters(); got != 1.5 {
		t.Errorf("Quarters = %v, want 1.5", got)
	}
}

func TestSnapToGrid(t *testing.T) {
	var tests = []struct {
		tick motif.Tick
		grid uint64
		want motif.Tick
	}{
		{0, 120, 0},
		{59, 120, 0},
		{60, 120, 120}, // ties round up
		{130, 120, 120},
		{179, 120, 120},
		{180, 120, 240},
		{1000, 1, 1000},
	}
	for _, tt := range tests {
		if got := tt.tick.SnapToGrid(tt.grid); got != tt.want {
			t.Errorf("Tick(%d).SnapToGrid(%d) = %d, want %d", uint64(tt.tick), tt.grid, uint64(got), uint64(tt.want))
		}
	}
}

func TestTickString(t *testing.T) {
	if got := motif.Tick(480).String(); got != "1q" {
		t.Errorf("got %q, want %q", got, "1q")
	}
	if got := motif.Tick(540).String(); got != "1q+60" {
		t.Errorf("got %q, want %q", got, "1q+60")
	}
}
