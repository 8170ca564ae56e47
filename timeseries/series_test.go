package timeseries

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}
}

func TestStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := math.Sqrt(4.571428571428571)

	result := s.Std()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected std %f, got %f", expected, result)
	}
}

func TestDiff(t *testing.T) {
	s := New([]float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	expected := []float64{2, 3, 4, 5}
	if len(diff.Values) != len(expected) {
		t.Errorf("Expected length %d, got %d", len(expected), len(diff.Values))
	}

	for i, v := range diff.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestLag(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	lagged := s.Lag(2)

	expected := []float64{1, 2, 3}
	if len(lagged.Values) != len(expected) {
		t.Errorf("Expected length %d, got %d", len(expected), len(lagged.Values))
	}

	for i, v := range lagged.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestSlice(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	sliced := s.Slice(1, 4)

	expected := []float64{2, 3, 4}
	if len(sliced.Values) != len(expected) {
		t.Errorf("Expected length %d, got %d", len(expected), len(sliced.Values))
	}

	for i, v := range sliced.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestLog(t *testing.T) {
	s := New([]float64{1, math.E, math.E * math.E})
	logged := s.Log()

	expected := []float64{0, 1, 2}
	for i, v := range logged.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestNormalize(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	normalized := s.Normalize()

	// Mean should be close to 0
	if math.Abs(normalized.Mean()) > 1e-10 {
		t.Errorf("Expected mean close to 0, got %f", normalized.Mean())
	}

	// Std should be close to 1
	if math.Abs(normalized.Std()-1) > 1e-10 {
		t.Errorf("Expected std close to 1, got %f", normalized.Std())
	}
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	copied := s.Copy()

	// Modify original
	s.Values[0] = 100

	// Copy should be unchanged
	if copied.Values[0] != 1 {
		t.Errorf("Copy was modified when original changed")
	}
}

func TestFinite(t *testing.T) {
	s := NewNamed("spread", []float64{1, math.NaN(), 3, math.Inf(1), 5, math.Inf(-1)})
	f := s.Finite()

	expected := []float64{1, 3, 5}
	if f.Len() != len(expected) {
		t.Fatalf("Expected %d finite values, got %d", len(expected), f.Len())
	}
	for i, v := range expected {
		if f.Values[i] != v {
			t.Errorf("Expected %f at index %d, got %f", v, i, f.Values[i])
		}
	}
	if len(f.Timestamps) != 3 || !f.Timestamps[1].Equal(s.Timestamps[2]) {
		t.Error("Timestamps should follow the kept observations")
	}
	if f.Name != "spread" {
		t.Errorf("Expected name to be kept, got %q", f.Name)
	}
}

func TestDiffKeepsAlignment(t *testing.T) {
	s := New([]float64{10, 12, 11})
	diff := s.Diff()
	lag := s.Lag(1)

	if len(diff.Timestamps) != 2 || !diff.Timestamps[0].Equal(s.Timestamps[1]) {
		t.Error("Diff should be stamped with the later observation")
	}
	if !lag.Timestamps[0].Equal(diff.Timestamps[0]) {
		t.Error("Lag(1) and Diff should be aligned")
	}

	short := New([]float64{1}).Diff()
	if short.Len() != 0 {
		t.Errorf("Expected empty diff, got %d values", short.Len())
	}
}
