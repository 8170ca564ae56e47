package pairs

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ZScores standardises each value against the trailing lookback window
// using the sample standard deviation. Entries before the first full
// window, and windows with zero (or undefined) deviation, are 0. A
// lookback <= 0 standardises against the whole series.
func ZScores(data []float64, lookback int) []float64 {
	n := len(data)
	out := make([]float64, n)
	if lookback <= 0 {
		if n < 2 {
			return out
		}
		mean, std := stat.MeanStdDev(data, nil)
		if std > 0 {
			for i, v := range data {
				out[i] = (v - mean) / std
			}
		}
		return out
	}
	if n < lookback || lookback < 2 {
		return out
	}

	for i := lookback - 1; i < n; i++ {
		mean, std := stat.MeanStdDev(data[i-lookback+1:i+1], nil)
		if std > 0 {
			out[i] = (data[i] - mean) / std
		}
	}
	return out
}

// TradeCycles summarises how long the z-score takes to travel from an
// entry band back to an exit band.
type TradeCycles struct {
	// Count is the number of completed cycles.
	Count int `json:"count" yaml:"count"`
	// MeanLength and MedianLength are in observations, entry and exit
	// bar included.
	MeanLength   float64 `json:"mean_length" yaml:"mean_length"`
	MedianLength int     `json:"median_length" yaml:"median_length"`
	// SuccessRate is completed cycles over cycles opened.
	SuccessRate float64 `json:"success_rate" yaml:"success_rate"`
	// IsValid requires at least 5 cycles and a success rate above 0.7.
	IsValid bool `json:"is_valid" yaml:"is_valid"`
}

// MeasureTradeCycles opens a cycle when |z| reaches entry and closes it
// when z crosses back inside exit on the same side.
func MeasureTradeCycles(zScores []float64, entry, exit float64) TradeCycles {
	var lengths []int
	inTrade := false
	start := 0
	long := false

	for i, z := range zScores {
		if !inTrade && math.Abs(z) >= entry {
			inTrade, start, long = true, i, z > 0
		}
		if !inTrade {
			continue
		}
		if (long && z <= exit) || (!long && z >= -exit) {
			lengths = append(lengths, i-start+1)
			inTrade = false
		}
	}

	if len(lengths) == 0 {
		return TradeCycles{}
	}

	opened := len(lengths)
	if inTrade {
		opened++
	}
	total := 0
	for _, l := range lengths {
		total += l
	}
	sort.Ints(lengths)

	tc := TradeCycles{
		Count:        len(lengths),
		MeanLength:   float64(total) / float64(len(lengths)),
		MedianLength: lengths[len(lengths)/2],
		SuccessRate:  float64(len(lengths)) / float64(opened),
	}
	tc.IsValid = tc.Count >= 5 && tc.SuccessRate > 0.7
	return tc
}
