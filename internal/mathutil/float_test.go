package mathutil

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{9, 9, 75, 9},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if got := Clamp(7, 1, 3); got != 3 {
		t.Errorf("Clamp int = %d, want 3", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("1.5 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Error("NaN and infinities must not be finite")
	}
	if AllFinite(1, 2, math.NaN()) {
		t.Error("AllFinite should reject NaN")
	}
	if !AllFinite() {
		t.Error("AllFinite of nothing should be true")
	}
}

func TestChunkSize(t *testing.T) {
	if got := ChunkSize(10000, 8, 64); got != 1250 {
		t.Errorf("ChunkSize = %d, want 1250", got)
	}
	if got := ChunkSize(100, 8, 64); got != 64 {
		t.Errorf("ChunkSize = %d, want 64", got)
	}
	if got := ChunkSize(100, 0, 1); got != 100 {
		t.Errorf("ChunkSize with zero workers = %d, want 100", got)
	}
}
