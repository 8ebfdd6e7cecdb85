package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	unit := V3(1, 1, 1)
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        BoxFromCenter(V3(0, 0, 0), unit),
			b:        BoxFromCenter(V3(0.5, 0.5, 0.5), unit),
			expected: true,
		},
		{
			name:     "separated on x",
			a:        BoxFromCenter(V3(0, 0, 0), unit),
			b:        BoxFromCenter(V3(2, 0, 0), unit),
			expected: false,
		},
		{
			name:     "separated on y only",
			a:        BoxFromCenter(V3(0, 0, 0), unit),
			b:        BoxFromCenter(V3(0, 3, 0), unit),
			expected: false,
		},
		{
			name:     "separated on z only",
			a:        BoxFromCenter(V3(0, 0, 0), unit),
			b:        BoxFromCenter(V3(0, 0, -1.5), unit),
			expected: false,
		},
		{
			name:     "touching faces",
			a:        BoxFromCenter(V3(0, 0, 0), unit),
			b:        BoxFromCenter(V3(1, 0, 0), unit),
			expected: false,
		},
		{
			name:     "contained box",
			a:        BoxFromCenter(V3(0, 0, 0), V3(4, 4, 4)),
			b:        BoxFromCenter(V3(1, 1, 1), unit),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxFromBase(t *testing.T) {
	b := BoxFromBase(V3(2, 1, 0), V3(0.5, 1.3, 0.4))

	if b.Min.Y() != 1 {
		t.Errorf("Min.Y = %f, expected 1 (feet on base)", b.Min.Y())
	}
	if math.Abs(b.Max.Y()-2.3) > 1e-9 {
		t.Errorf("Max.Y = %f, expected 2.3", b.Max.Y())
	}
	if b.Min.X() != 1.75 || b.Max.X() != 2.25 {
		t.Errorf("x extent = [%f, %f], expected [1.75, 2.25]", b.Min.X(), b.Max.X())
	}
	if c := b.Center(); math.Abs(c.Z()) > 1e-9 {
		t.Errorf("Center().Z = %f, expected 0", c.Z())
	}
}

func TestBoxContainsAndTranslate(t *testing.T) {
	b := BoxFromCenter(V3(0, 0, 0), V3(2, 2, 2))
	if !b.Contains(V3(0.5, -0.5, 0.9)) {
		t.Error("point inside should be contained")
	}
	if b.Contains(V3(1, 0, 0)) {
		t.Error("max face is exclusive")
	}

	moved := b.Translate(V3(0, 0, 10))
	if !moved.Contains(V3(0, 0, 10)) || moved.Contains(V3(0, 0, 0)) {
		t.Error("Translate should move the box along z")
	}
	if s := moved.Size(); s != V3(2, 2, 2) {
		t.Errorf("Translate changed size to %v", s)
	}
}

func TestRotatedZ(t *testing.T) {
	size := V3(3, 0.5, 0.5)

	flat := RotatedZ(size, 0)
	if math.Abs(flat.X()-3) > 1e-9 || math.Abs(flat.Y()-0.5) > 1e-9 {
		t.Errorf("unrotated extents = %v", flat)
	}

	upright := RotatedZ(size, math.Pi/2)
	if math.Abs(upright.X()-0.5) > 1e-9 || math.Abs(upright.Y()-3) > 1e-9 {
		t.Errorf("quarter turn extents = %v, expected (0.5, 3)", upright)
	}
	if upright.Z() != 0.5 {
		t.Errorf("z extent should not change, got %f", upright.Z())
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, -0.2, 0.1); math.Abs(got+0.02) > 1e-12 {
		t.Errorf("Lerp(0, -0.2, 0.1) = %f, expected -0.02", got)
	}
	if Lerp(3, 3, 0.5) != 3 {
		t.Error("Lerp between equal values should be stable")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClampHelpers(t *testing.T) {
	if Clamp(-2, -1, 1) != -1 || Clamp(2, -1, 1) != 1 || Clamp(0, -1, 1) != 0 {
		t.Error("Clamp should bound lane indices to [-1, 1]")
	}
	if ClampF(0.7, 0.2, 0.5) != 0.5 || ClampF(0.1, 0.2, 0.5) != 0.2 {
		t.Error("ClampF out of range")
	}
	if Min(5, 10) != 5 || Max(5, 10) != 10 {
		t.Error("Min/Max")
	}
}
