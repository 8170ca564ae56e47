package pairs

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goregression/matrix"
	"github.com/sartorproj/goregression/ols"
	"github.com/sartorproj/goregression/timeseries"
)

// DefaultMaxHalfLife is the longest half-life, in observations, that is
// still considered tradable (one year of daily bars).
const DefaultMaxHalfLife = 252

// minHalfLifeObs is the shortest spread HalfLife will estimate from.
const minHalfLifeObs = 20

// HalfLifeResult is the speed of mean reversion of a spread.
type HalfLifeResult struct {
	// HalfLife is -ln2/Lambda when Lambda < 0, otherwise 0.
	HalfLife float64 `json:"half_life" yaml:"half_life"`
	// Lambda is the slope of Δs_t on s_{t-1}.
	Lambda  float64 `json:"lambda" yaml:"lambda"`
	IsValid bool    `json:"is_valid" yaml:"is_valid"`
}

// HalfLife estimates the half-life of mean reversion from
//
//	Δs_t = c + λ s_{t-1} + ε_t
//
// as -ln2/λ. The estimate is valid when it lies in (0, maxHalfLife);
// maxHalfLife <= 0 means DefaultMaxHalfLife. Spreads shorter than 20
// observations give an invalid result without error.
func HalfLife(spread []float64, maxHalfLife float64) (*HalfLifeResult, error) {
	if maxHalfLife <= 0 {
		maxHalfLife = DefaultMaxHalfLife
	}
	if len(spread) < minHalfLifeObs {
		return &HalfLifeResult{}, nil
	}

	lambda, err := reversionSpeed(spread)
	if err != nil {
		return nil, err
	}

	res := &HalfLifeResult{Lambda: lambda}
	if lambda < 0 {
		res.HalfLife = -math.Ln2 / lambda
	}
	res.IsValid = res.HalfLife > 0 && res.HalfLife < maxHalfLife
	return res, nil
}

// RollingHalfLife estimates the half-life over each trailing window.
// Entries without a full window, or whose window does not mean-revert,
// are NaN.
func RollingHalfLife(spread []float64, window int) []float64 {
	n := len(spread)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if window < 3 || n < window+1 {
		return out
	}

	for i := window - 1; i < n; i++ {
		lambda, err := reversionSpeed(spread[i-window+1 : i+1])
		if err != nil || lambda >= 0 {
			continue
		}
		out[i] = -math.Ln2 / lambda
	}
	return out
}

// reversionSpeed returns λ from Δs_t = c + λ s_{t-1}.
func reversionSpeed(spread []float64) (float64, error) {
	s := timeseries.New(spread)
	y := s.Diff().Values
	lagged := s.Lag(1).Values

	nObs := len(y)
	x := make([]float64, 0, 2*nObs)
	for _, v := range lagged {
		x = append(x, 1, v)
	}
	res, err := ols.FitFlat(x, y, nObs, 2)
	if err != nil {
		return 0, err
	}
	return res.Coefficients()[1], nil
}

// HurstExponent estimates the Hurst exponent by rescaled-range analysis
// over chunk sizes 10, 20, ... up to min(100, n/2). Values below 0.5
// suggest mean reversion. Series shorter than 100 observations return 0.5.
func HurstExponent(data []float64) (float64, error) {
	n := len(data)
	if n < 100 {
		return 0.5, nil
	}

	maxLag := min(100, n/2)
	var logLags, logRS []float64

	for lag := 10; lag <= maxLag; lag += 10 {
		var rs []float64
		cum := make([]float64, lag)
		for i := 0; i < n-lag; i += lag {
			chunk := data[i : i+lag]
			mean, std := stat.PopMeanStdDev(chunk, nil)
			if std <= 0 {
				continue
			}
			sum := 0.0
			for j, v := range chunk {
				sum += v - mean
				cum[j] = sum
			}
			rs = append(rs, (floats.Max(cum)-floats.Min(cum))/std)
		}
		if len(rs) > 0 {
			logLags = append(logLags, math.Log(float64(lag)))
			logRS = append(logRS, math.Log(stat.Mean(rs, nil)))
		}
	}

	if len(logLags) < 3 {
		return 0.5, nil
	}

	x, err := matrix.New(len(logLags), 1, logLags)
	if err != nil {
		return 0, err
	}
	res, err := ols.Fit(ols.AddIntercept(x), logRS)
	if errors.Is(err, matrix.ErrSingularMatrix) {
		return 0.5, nil
	}
	if err != nil {
		return 0, err
	}
	return res.Coefficients()[1], nil
}
