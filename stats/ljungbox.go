package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goregression/timeseries"
)

// LjungBoxResult represents the result of a portmanteau autocorrelation test.
type LjungBoxResult struct {
	Statistic float64 `json:"statistic" yaml:"statistic"`
	PValue    float64 `json:"p_value" yaml:"p_value"`
	Lags      int     `json:"lags" yaml:"lags"`
	DOF       int     `json:"dof" yaml:"dof"`
}

// LjungBox performs the Ljung-Box test for autocorrelation in residuals.
// The null hypothesis is that there is no autocorrelation up to lag h.
// fitdf is the number of estimated parameters subtracted from the degrees
// of freedom.
func LjungBox(series *timeseries.Series, lags, fitdf int) (*LjungBoxResult, error) {
	return portmanteau(series, lags, fitdf, func(acf []float64, n int) float64 {
		q := 0.0
		for k := 1; k < len(acf); k++ {
			q += (acf[k] * acf[k]) / float64(n-k)
		}
		return q * float64(n*(n+2))
	})
}

// BoxPierce performs the Box-Pierce test, the unweighted form of Ljung-Box.
func BoxPierce(series *timeseries.Series, lags, fitdf int) (*LjungBoxResult, error) {
	return portmanteau(series, lags, fitdf, func(acf []float64, n int) float64 {
		q := 0.0
		for k := 1; k < len(acf); k++ {
			q += acf[k] * acf[k]
		}
		return q * float64(n)
	})
}

func portmanteau(series *timeseries.Series, lags, fitdf int, statistic func([]float64, int) float64) (*LjungBoxResult, error) {
	n := series.Len()
	if n < minObservations || lags < 1 {
		return nil, ErrInsufficientData
	}
	if lags >= n {
		lags = n - 1
	}

	acf := ACF(series, lags)
	if acf == nil {
		return nil, ErrConstantSeries
	}

	q := statistic(acf, n)
	dof := max(lags-fitdf, 1)

	return &LjungBoxResult{
		Statistic: q,
		PValue:    distuv.ChiSquared{K: float64(dof)}.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// DurbinWatson calculates the Durbin-Watson statistic for first-order
// autocorrelation. Values near 2 indicate none, below 2 positive and above
// 2 negative autocorrelation. It returns NaN for fewer than two residuals
// or all-zero residuals.
func DurbinWatson(residuals []float64) float64 {
	n := len(residuals)
	if n < 2 {
		return math.NaN()
	}

	numerator := 0.0
	denominator := 0.0
	for i := 1; i < n; i++ {
		diff := residuals[i] - residuals[i-1]
		numerator += diff * diff
	}
	for _, r := range residuals {
		denominator += r * r
	}

	if denominator == 0 {
		return math.NaN()
	}
	return numerator / denominator
}
