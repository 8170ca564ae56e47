package stats

import (
	"errors"
	"math"

	"github.com/sartorproj/goregression/timeseries"
)

// ErrConstantSeries is returned when autocorrelations are undefined
// because the series has zero variance.
var ErrConstantSeries = errors.New("stats: constant series")

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag, or nil for an empty or constant
// series.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := series.Mean()
	variance := 0.0
	for _, v := range series.Values {
		diff := v - mean
		variance += diff * diff
	}

	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (series.Values[i] - mean) * (series.Values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// ACFBound is the approximate 95% band ±1.96/sqrt(n) for white noise.
func ACFBound(n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return 1.96 / math.Sqrt(float64(n))
}

// SignificantLags returns the lags (excluding 0) whose autocorrelation
// lies outside ±bound.
func SignificantLags(acf []float64, bound float64) []int {
	var significant []int
	for i := 1; i < len(acf); i++ {
		if math.Abs(acf[i]) > bound {
			significant = append(significant, i)
		}
	}
	return significant
}
