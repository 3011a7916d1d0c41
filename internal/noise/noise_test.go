package noise

import "testing"

func TestFieldDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		x, y, z := float64(i)*0.37, float64(i)*0.11, float64(i)*0.05
		if a.At3(x, y, z) != b.At3(x, y, z) {
			t.Fatalf("same seed produced different noise at %d", i)
		}
		if a.At2(x, y) != b.At2(x, y) {
			t.Fatalf("same seed produced different 2D noise at %d", i)
		}
	}
}

func TestRanges(t *testing.T) {
	f := New(3)
	for i := 0; i < 500; i++ {
		x, y, z := float64(i)*0.173, float64(i%37)*0.29, float64(i)*0.01
		if v := f.Unit3(x, y, z); v < 0 || v > 1 {
			t.Fatalf("Unit3 out of range: %v", v)
		}
		if v := f.FBM(x, y, z, 4); v < 0 || v > 1 {
			t.Fatalf("FBM out of range: %v", v)
		}
		if v := Value(x, y, 9); v < 0 || v > 1 {
			t.Fatalf("Value out of range: %v", v)
		}
	}
}

func TestValueContinuity(t *testing.T) {
	prev := Value(0, 0.5, 1)
	for i := 1; i <= 1000; i++ {
		v := Value(float64(i)*0.001, 0.5, 1)
		if d := v - prev; d > 0.05 || d < -0.05 {
			t.Fatalf("value noise jumped by %v at step %d", d, i)
		}
		prev = v
	}
}
