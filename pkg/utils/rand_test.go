package utils

import "testing"

func TestRandSourceDeterministic(t *testing.T) {
	a := NewRandSource(42)
	b := NewRandSource(42)

	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}

func TestRandSourceSeedsIndependent(t *testing.T) {
	a := NewRandSource(1)
	b := NewRandSource(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	if same {
		t.Fatal("Expected different sequences for different seeds")
	}
}

func TestUniformFloat64Range(t *testing.T) {
	r := NewRandSource(7)
	for i := 0; i < 1000; i++ {
		v := r.UniformFloat64(-2, 3)
		if v < -2 || v >= 3 {
			t.Fatalf("Expected value in [-2, 3), got %v", v)
		}
	}
}

func TestIntnRange(t *testing.T) {
	r := NewRandSource(7)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(5); v < 0 || v >= 5 {
			t.Fatalf("Expected value in [0, 5), got %d", v)
		}
	}
}
