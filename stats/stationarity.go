package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/goregression/matrix"
	"github.com/sartorproj/goregression/ols"
	"github.com/sartorproj/goregression/timeseries"
)

// Deterministic terms of a unit-root regression.
const (
	RegressionNone          = "n"  // no constant
	RegressionConstant      = "c"  // constant only
	RegressionConstantTrend = "ct" // constant and linear trend
)

// ErrInsufficientData is returned when a series is too short for a test.
var ErrInsufficientData = errors.New("stats: insufficient data")

// minObservations is the shortest series the unit-root tests accept.
const minObservations = 10

// ADFOptions configures the Augmented Dickey-Fuller test.
type ADFOptions struct {
	// MaxLag is the largest number of lagged differences considered.
	// Zero or negative selects 12*(n/100)^(1/4).
	MaxLag int
	// Regression is one of RegressionNone, RegressionConstant,
	// RegressionConstantTrend. Empty means RegressionConstant.
	Regression string
	// AutoLag chooses the lag count in 0..MaxLag with the lowest AIC.
	// When false, MaxLag lags are used.
	AutoLag bool
	// Significance is the level used for IsStationary: 0.01, 0.05 or 0.10.
	// Zero means 0.05.
	Significance float64
}

// DefaultADFOptions returns AIC lag selection with a constant term.
func DefaultADFOptions() ADFOptions {
	return ADFOptions{Regression: RegressionConstant, AutoLag: true, Significance: 0.05}
}

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic      float64            `json:"statistic" yaml:"statistic"`
	PValue         float64            `json:"p_value" yaml:"p_value"`
	Lags           int                `json:"lags" yaml:"lags"`
	NObs           int                `json:"nobs" yaml:"nobs"`
	AIC            float64            `json:"aic" yaml:"aic"`
	Regression     string             `json:"regression" yaml:"regression"`
	CriticalValues map[string]float64 `json:"critical_values" yaml:"critical_values"`
	IsStationary   bool               `json:"is_stationary" yaml:"is_stationary"`
}

// ADF performs the Augmented Dickey-Fuller test for a unit root.
// The null hypothesis is that the series has a unit root. The auxiliary
// regression is
//
//	Δy_t = [α] + [δt] + γ y_{t-1} + Σ φ_i Δy_{t-i} + ε_t
//
// and the statistic is the t-ratio of γ. A singular auxiliary regression
// returns matrix.ErrSingularMatrix.
func ADF(series *timeseries.Series, opts ADFOptions) (*ADFResult, error) {
	if opts.Regression == "" {
		opts.Regression = RegressionConstant
	}
	if _, ok := dfCriticalValues[opts.Regression]; !ok {
		return nil, fmt.Errorf("stats: unknown regression %q", opts.Regression)
	}
	if opts.Significance == 0 {
		opts.Significance = 0.05
	}

	n := series.Len()
	if n < minObservations {
		return nil, ErrInsufficientData
	}

	ntrend := deterministicTerms(opts.Regression)
	maxLag := opts.MaxLag
	if maxLag <= 0 {
		maxLag = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	// keep at least as many observations as regressors, twice over
	if limit := (n-1)/2 - ntrend - 1; maxLag > limit {
		maxLag = max(limit, 0)
	}

	diff := series.Diff().Values
	lags := maxLag

	if opts.AutoLag {
		bestAIC := math.Inf(1)
		for p := 0; p <= maxLag; p++ {
			res, _, err := adfRegression(series.Values, diff, p, maxLag, opts.Regression)
			if err != nil {
				return nil, err
			}
			if aic := res.AIC(); aic < bestAIC {
				bestAIC, lags = aic, p
			}
		}
	}

	res, levelIdx, err := adfRegression(series.Values, diff, lags, lags, opts.Regression)
	if err != nil {
		return nil, err
	}

	stat := res.TStats()[levelIdx]
	cls, err := classify(stat, opts.Significance, opts.Regression)
	if err != nil {
		return nil, err
	}

	return &ADFResult{
		Statistic:      stat,
		PValue:         cls.PValue,
		Lags:           lags,
		NObs:           res.NObs(),
		AIC:            res.AIC(),
		Regression:     opts.Regression,
		CriticalValues: cls.CriticalValues,
		IsStationary:   cls.IsStationary,
	}, nil
}

// adfRegression fits the ADF auxiliary regression with p lagged
// differences, starting at diff index start so that fits with different
// p can share a sample. It returns the fit and the column of y_{t-1}.
func adfRegression(levels, diff []float64, p, start int, regression string) (*ols.Result, int, error) {
	nObs := len(diff) - start
	ntrend := deterministicTerms(regression)
	k := ntrend + 1 + p
	if nObs <= k {
		return nil, 0, ErrInsufficientData
	}

	x := make([]float64, 0, nObs*k)
	y := make(matrix.Vector, nObs)
	for i := 0; i < nObs; i++ {
		t := i + start
		y[i] = diff[t]
		if ntrend >= 1 {
			x = append(x, 1)
		}
		if ntrend == 2 {
			x = append(x, float64(t+1))
		}
		x = append(x, levels[t])
		for j := 1; j <= p; j++ {
			x = append(x, diff[t-j])
		}
	}

	design, err := matrix.New(nObs, k, x)
	if err != nil {
		return nil, 0, err
	}
	res, err := ols.Fit(design, y)
	if err != nil {
		return nil, 0, err
	}
	return res, ntrend, nil
}

func deterministicTerms(regression string) int {
	switch regression {
	case RegressionNone:
		return 0
	case RegressionConstantTrend:
		return 2
	default:
		return 1
	}
}

// KPSSResult represents the result of a KPSS test.
type KPSSResult struct {
	Statistic      float64            `json:"statistic" yaml:"statistic"`
	PValue         float64            `json:"p_value" yaml:"p_value"`
	Lags           int                `json:"lags" yaml:"lags"`
	CriticalValues map[string]float64 `json:"critical_values" yaml:"critical_values"`
	IsStationary   bool               `json:"is_stationary" yaml:"is_stationary"`
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test.
// The null hypothesis is that the series is stationary around a level
// ("c") or a linear trend ("ct").
func KPSS(series *timeseries.Series, regression string, nlags int) (*KPSSResult, error) {
	n := series.Len()
	if n < minObservations {
		return nil, ErrInsufficientData
	}
	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	residuals, err := detrend(series.Values, regression)
	if err != nil {
		return nil, err
	}

	// Partial sums
	etaSq := 0.0
	cum := 0.0
	for _, r := range residuals {
		cum += r
		etaSq += cum * cum
	}

	s2 := longRunVariance(residuals, nlags)
	if s2 <= 0 {
		s2 = 1e-10
	}
	stat := etaSq / (float64(n) * float64(n) * s2)

	table := kpssLevelTable
	if regression == RegressionConstantTrend {
		table = kpssTrendTable
	}
	pValue := table.PValue(stat)

	cv := make(map[string]float64, 3)
	for _, pt := range table {
		switch pt.PValue {
		case 0.10:
			cv["10%"] = pt.Statistic
		case 0.05:
			cv["5%"] = pt.Statistic
		case 0.01:
			cv["1%"] = pt.Statistic
		}
	}

	return &KPSSResult{
		Statistic:      stat,
		PValue:         pValue,
		Lags:           nlags,
		CriticalValues: cv,
		IsStationary:   stat < cv["5%"],
	}, nil
}

// detrend removes the mean ("c") or an OLS linear trend ("ct").
func detrend(values []float64, regression string) ([]float64, error) {
	n := len(values)
	if regression != RegressionConstantTrend {
		mean := 0.0
		for _, v := range values {
			mean += v
		}
		mean /= float64(n)
		out := make([]float64, n)
		for i, v := range values {
			out[i] = v - mean
		}
		return out, nil
	}

	x := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		x = append(x, 1, float64(i))
	}
	res, err := ols.FitFlat(x, values, n, 2)
	if err != nil {
		return nil, err
	}
	return res.Residuals(), nil
}

// longRunVariance is the Newey-West estimator with Bartlett weights.
func longRunVariance(residuals []float64, nlags int) float64 {
	n := len(residuals)
	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)

	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}
	return s2
}

// PhillipsPerronResult represents the result of a Phillips-Perron test.
type PhillipsPerronResult struct {
	Statistic      float64            `json:"statistic" yaml:"statistic"`
	PValue         float64            `json:"p_value" yaml:"p_value"`
	Lags           int                `json:"lags" yaml:"lags"`
	CriticalValues map[string]float64 `json:"critical_values" yaml:"critical_values"`
	IsStationary   bool               `json:"is_stationary" yaml:"is_stationary"`
}

// PhillipsPerron performs the Phillips-Perron unit-root test. It fits
// Δy_t = α + γ y_{t-1} + ε_t and corrects the t-ratio of γ for serial
// correlation with a Newey-West long-run variance.
func PhillipsPerron(series *timeseries.Series, nlags int) (*PhillipsPerronResult, error) {
	n := series.Len()
	if n < minObservations {
		return nil, ErrInsufficientData
	}
	if nlags <= 0 {
		nlags = int(math.Floor(4 * math.Pow(float64(n)/100, 0.25)))
	}

	nObs := n - 1
	diff := series.Diff().Values
	x := make([]float64, 0, 2*nObs)
	for i := 0; i < nObs; i++ {
		x = append(x, 1, series.Values[i])
	}
	res, err := ols.FitFlat(x, diff, nObs, 2)
	if err != nil {
		return nil, err
	}

	residuals := res.Residuals()
	gamma0 := res.SSR() / float64(nObs)
	lambda2 := longRunVariance(residuals, nlags)
	if lambda2 <= 0 {
		lambda2 = gamma0
	}
	tStat := res.TStats()[1]
	se := res.StdErrors()[1]

	// Z_t = sqrt(γ0/λ²)·t - (λ²-γ0)·T·se / (2·λ·s)
	correction := (lambda2 - gamma0) * float64(nObs) * se /
		(2 * math.Sqrt(lambda2) * math.Sqrt(res.Sigma2()))
	stat := math.Sqrt(gamma0/lambda2)*tStat - correction

	cls := ClassifyStationarity(stat)
	return &PhillipsPerronResult{
		Statistic:      stat,
		PValue:         cls.PValue,
		Lags:           nlags,
		CriticalValues: cls.CriticalValues,
		IsStationary:   cls.IsStationary,
	}, nil
}
