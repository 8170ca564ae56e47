package timeseries

import (
	"errors"
	"math"
	"time"
)

// Series is an ordered sequence of observations with optional timestamps.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a series from values, stamping them hourly from now.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewNamed creates a named series from values.
func NewNamed(name string, values []float64) *Series {
	s := New(values)
	s.Name = name
	return s
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Diff returns the first difference y[t] - y[t-1].
func (s *Series) Diff() *Series {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}, Name: s.Name + "_diff"}
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		result[i-1] = s.Values[i] - s.Values[i-1]
	}

	return &Series{
		Timestamps: s.tail(1, len(result)),
		Values:     result,
		Name:       s.Name + "_diff",
	}
}

// Lag returns y[t-k] aligned with y[t] for t >= k, i.e. the first
// len-k values.
func (s *Series) Lag(k int) *Series {
	if k <= 0 || k >= len(s.Values) {
		return &Series{Values: []float64{}, Name: s.Name + "_lag"}
	}

	result := make([]float64, len(s.Values)-k)
	copy(result, s.Values[:len(s.Values)-k])

	return &Series{
		Timestamps: s.tail(k, len(result)),
		Values:     result,
		Name:       s.Name + "_lag",
	}
}

// Slice returns a copy of the observations from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) >= end {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	return s.Slice(0, len(s.Values))
}

// Finite returns a copy holding only the finite observations.
func (s *Series) Finite() *Series {
	keepTS := len(s.Timestamps) == len(s.Values)
	out := &Series{Name: s.Name, Values: make([]float64, 0, len(s.Values))}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out.Values = append(out.Values, v)
		if keepTS {
			out.Timestamps = append(out.Timestamps, s.Timestamps[i])
		}
	}
	return out
}

// Log applies the natural logarithm. Non-positive values become NaN.
func (s *Series) Log() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v > 0 {
			result[i] = math.Log(v)
		} else {
			result[i] = math.NaN()
		}
	}

	out := s.Copy()
	out.Values = result
	out.Name = s.Name + "_log"
	return out
}

// Normalize standardizes the series to z-scores using the sample
// standard deviation. A constant series is returned as a copy.
func (s *Series) Normalize() *Series {
	mean := s.Mean()
	std := s.Std()

	if std == 0 {
		return s.Copy()
	}

	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		result[i] = (v - mean) / std
	}

	out := s.Copy()
	out.Values = result
	out.Name = s.Name + "_z"
	return out
}

// tail copies n timestamps starting at offset, or returns nil when the
// series carries no timestamps.
func (s *Series) tail(offset, n int) []time.Time {
	if len(s.Timestamps) < offset+n {
		return nil
	}
	ts := make([]time.Time, n)
	copy(ts, s.Timestamps[offset:offset+n])
	return ts
}
