// Package pairs analyses the relationship between two price series for
// mean-reversion trading: OLS hedge ratios, spreads, half-life of mean
// reversion, rolling z-scores and an Engle-Granger style cointegration
// check on the spread.
package pairs

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goregression/matrix"
	"github.com/sartorproj/goregression/ols"
)

var (
	// ErrLengthMismatch is returned when the two legs have different lengths.
	ErrLengthMismatch = errors.New("pairs: series lengths differ")
	// ErrTooShort is returned when a series is too short for the operation.
	ErrTooShort = errors.New("pairs: series too short")
)

// Hedge is the regression a_t = Alpha + Beta*b_t + e_t.
type Hedge struct {
	Alpha float64 `json:"alpha" yaml:"alpha"`
	Beta  float64 `json:"beta" yaml:"beta"`
	// RSquared is the coefficient of determination of the fit.
	RSquared float64 `json:"r_squared" yaml:"r_squared"`
	// BetaStdError is the standard error of Beta.
	BetaStdError float64 `json:"beta_std_error" yaml:"beta_std_error"`
}

// HedgeRatio regresses a on an intercept and b by OLS.
func HedgeRatio(a, b []float64) (*Hedge, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	if len(a) < 3 {
		return nil, ErrTooShort
	}

	x, err := matrix.New(len(b), 1, b)
	if err != nil {
		return nil, err
	}
	res, err := ols.Fit(ols.AddIntercept(x), a)
	if err != nil {
		return nil, err
	}

	coef := res.Coefficients()
	return &Hedge{
		Alpha:        coef[0],
		Beta:         coef[1],
		RSquared:     res.RSquared(),
		BetaStdError: res.StdErrors()[1],
	}, nil
}

// RollingHedgeRatios fits HedgeRatio on the trailing window ending at each
// index. Indexes before the first full window, and windows whose
// regression is singular, get NaN.
func RollingHedgeRatios(a, b []float64, window int) (alphas, betas []float64, err error) {
	if len(a) != len(b) {
		return nil, nil, ErrLengthMismatch
	}
	if window < 3 {
		return nil, nil, ErrTooShort
	}

	n := len(a)
	alphas = make([]float64, n)
	betas = make([]float64, n)
	for i := 0; i < n; i++ {
		alphas[i], betas[i] = math.NaN(), math.NaN()
		if i < window-1 {
			continue
		}
		h, err := HedgeRatio(a[i-window+1:i+1], b[i-window+1:i+1])
		if errors.Is(err, matrix.ErrSingularMatrix) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		alphas[i], betas[i] = h.Alpha, h.Beta
	}
	return alphas, betas, nil
}

// Spread returns a_t - (alpha + beta*b_t).
func Spread(a, b []float64, alpha, beta float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - (alpha + beta*b[i])
	}
	return out, nil
}

// RollingSpread is Spread with per-index coefficients.
func RollingSpread(a, b, alphas, betas []float64) ([]float64, error) {
	if len(a) != len(b) || len(a) != len(alphas) || len(a) != len(betas) {
		return nil, ErrLengthMismatch
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - (alphas[i] + betas[i]*b[i])
	}
	return out, nil
}

// Ratio returns a_t / b_t.
func Ratio(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] / b[i]
	}
	return out, nil
}

// Distance returns |a_t/a_0 - b_t/b_0|, the gap between the two legs
// normalised to their first price.
func Distance(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	if len(a) == 0 {
		return nil, ErrTooShort
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = math.Abs(a[i]/a[0] - b[i]/b[0])
	}
	return out, nil
}

// Correlation returns the Pearson correlation of a and b, or 0 when either
// series is constant.
func Correlation(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	if len(a) < 2 {
		return 0, ErrTooShort
	}
	c := stat.Correlation(a, b, nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, nil
	}
	return c, nil
}
