package stats

import (
	"errors"
	"math"
	"sort"
)

// CriticalPoint pairs a test statistic with its p-value.
type CriticalPoint struct {
	Statistic float64
	PValue    float64
}

// CriticalValueTable is a lookup table ordered by ascending statistic.
// Tables are static and must not be modified after construction.
type CriticalValueTable []CriticalPoint

// DefaultCriticalValues maps ADF statistics (constant, no trend) to
// approximate p-values.
var DefaultCriticalValues = CriticalValueTable{
	{-4.0, 0.01},
	{-3.5, 0.025},
	{-3.0, 0.05},
	{-2.5, 0.10},
	{-2.0, 0.20},
	{-1.5, 0.50},
	{-1.0, 0.75},
	{0.0, 0.99},
}

// kpssLevelTable and kpssTrendTable hold the KPSS upper-tail critical
// values for level and trend stationarity.
var (
	kpssLevelTable = CriticalValueTable{
		{0.347, 0.10},
		{0.463, 0.05},
		{0.574, 0.025},
		{0.739, 0.01},
	}
	kpssTrendTable = CriticalValueTable{
		{0.119, 0.10},
		{0.146, 0.05},
		{0.176, 0.025},
		{0.216, 0.01},
	}
)

// Asymptotic Dickey-Fuller critical values by deterministic terms.
var dfCriticalValues = map[string]map[string]float64{
	RegressionNone:          {"1%": -2.58, "5%": -1.95, "10%": -1.62},
	RegressionConstant:      {"1%": -3.43, "5%": -2.86, "10%": -2.57},
	RegressionConstantTrend: {"1%": -3.96, "5%": -3.41, "10%": -3.12},
}

// ErrUnsupportedSignificance is returned for a significance level other
// than 0.01, 0.05 or 0.10.
var ErrUnsupportedSignificance = errors.New("stats: significance must be 0.01, 0.05 or 0.10")

// PValue interpolates linearly between the two entries bracketing stat.
// Statistics beyond either end are clamped to the end p-value. A NaN
// statistic yields NaN.
func (t CriticalValueTable) PValue(stat float64) float64 {
	n := len(t)
	if n == 0 {
		return 1
	}
	if math.IsNaN(stat) {
		return math.NaN()
	}
	if stat <= t[0].Statistic {
		return t[0].PValue
	}
	if stat >= t[n-1].Statistic {
		return t[n-1].PValue
	}

	// first entry strictly above stat; 1 <= hi <= n-1 here
	hi := sort.Search(n, func(i int) bool { return t[i].Statistic > stat })
	lo := hi - 1
	x1, y1 := t[lo].Statistic, t[lo].PValue
	x2, y2 := t[hi].Statistic, t[hi].PValue
	return y1 + (stat-x1)*(y2-y1)/(x2-x1)
}

// StationarityResult is the interpretation of a unit-root test statistic.
type StationarityResult struct {
	Statistic      float64            `json:"statistic" yaml:"statistic"`
	PValue         float64            `json:"p_value" yaml:"p_value"`
	IsStationary   bool               `json:"is_stationary" yaml:"is_stationary"`
	CriticalValues map[string]float64 `json:"critical_values" yaml:"critical_values"`
}

// ClassifyStationarity interprets an ADF statistic from a constant-only
// regression. The p-value comes from DefaultCriticalValues; the series
// is called stationary when the statistic lies below the 5% critical
// value (-2.86).
func ClassifyStationarity(stat float64) *StationarityResult {
	res, _ := ClassifyStationarityAt(stat, 0.05)
	return res
}

// ClassifyStationarityAt is ClassifyStationarity with a chosen
// significance level (0.01, 0.05 or 0.10).
func ClassifyStationarityAt(stat, significance float64) (*StationarityResult, error) {
	return classify(stat, significance, RegressionConstant)
}

func classify(stat, significance float64, regression string) (*StationarityResult, error) {
	key, err := significanceKey(significance)
	if err != nil {
		return nil, err
	}
	cv := criticalValues(regression)
	return &StationarityResult{
		Statistic:      stat,
		PValue:         DefaultCriticalValues.PValue(stat),
		IsStationary:   stat < cv[key],
		CriticalValues: cv,
	}, nil
}

// criticalValues returns a fresh copy of the critical values for a
// regression type, defaulting to constant-only.
func criticalValues(regression string) map[string]float64 {
	src, ok := dfCriticalValues[regression]
	if !ok {
		src = dfCriticalValues[RegressionConstant]
	}
	out := make(map[string]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func significanceKey(level float64) (string, error) {
	switch level {
	case 0.01:
		return "1%", nil
	case 0.05:
		return "5%", nil
	case 0.10:
		return "10%", nil
	}
	return "", ErrUnsupportedSignificance
}
