package pairs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goregression/stats"
	"github.com/sartorproj/goregression/timeseries"
)

// Spread models.
const (
	ModelOLS       = "ols"       // a - (alpha + beta*b)
	ModelRatio     = "ratio"     // a / b
	ModelEuclidean = "euclidean" // |a/a0 - b/b0|
)

// Options configures Analyze.
type Options struct {
	// Model is ModelOLS (default), ModelRatio or ModelEuclidean.
	Model string
	// Lookback is the rolling window for hedge ratios and half-lives.
	// With ModelOLS, zero fits one hedge ratio over the whole sample.
	Lookback int
	// ZScoreLookback is the z-score window; zero uses the whole series.
	ZScoreLookback int
	// EntryZ and ExitZ bound trade cycles.
	EntryZ float64
	ExitZ  float64
	// MaxHalfLife bounds a valid half-life; zero means DefaultMaxHalfLife.
	MaxHalfLife float64
	// ADF configures the stationarity test of the spread.
	ADF stats.ADFOptions
}

// DefaultOptions returns a static OLS hedge with a 20 bar z-score window
// and 2.0 / 0.5 entry and exit bands.
func DefaultOptions() Options {
	return Options{
		Model:          ModelOLS,
		ZScoreLookback: 20,
		EntryZ:         2.0,
		ExitZ:          0.5,
		MaxHalfLife:    DefaultMaxHalfLife,
		ADF:            stats.DefaultADFOptions(),
	}
}

// Analysis is the full report for one pair.
type Analysis struct {
	Model       string  `json:"model" yaml:"model"`
	NObs        int     `json:"nobs" yaml:"nobs"`
	Correlation float64 `json:"correlation" yaml:"correlation"`
	// Hedge is the full-sample regression (ModelOLS with Lookback 0).
	Hedge *Hedge `json:"hedge,omitempty" yaml:"hedge,omitempty"`
	// Alphas and Betas are the rolling coefficients (ModelOLS with Lookback > 0).
	Alphas []float64 `json:"alphas,omitempty" yaml:"alphas,omitempty"`
	Betas  []float64 `json:"betas,omitempty" yaml:"betas,omitempty"`
	// Spread is the modelled series: residual spread, ratio or distance.
	Spread          []float64        `json:"spread" yaml:"spread"`
	Mean            float64          `json:"mean" yaml:"mean"`
	StdDev          float64          `json:"std_dev" yaml:"std_dev"`
	ZScores         []float64        `json:"z_scores" yaml:"z_scores"`
	LatestZ         float64          `json:"latest_z" yaml:"latest_z"`
	MinZ            float64          `json:"min_z" yaml:"min_z"`
	MaxZ            float64          `json:"max_z" yaml:"max_z"`
	ADF             *stats.ADFResult `json:"adf" yaml:"adf"`
	HalfLife        *HalfLifeResult  `json:"half_life" yaml:"half_life"`
	RollingHalfLife []float64        `json:"rolling_half_life,omitempty" yaml:"rolling_half_life,omitempty"`
	Hurst           float64          `json:"hurst" yaml:"hurst"`
	TradeCycles     TradeCycles      `json:"trade_cycles" yaml:"trade_cycles"`
	Cointegrated    bool             `json:"cointegrated" yaml:"cointegrated"`
}

// Analyze builds the modelled spread of a against b and runs the
// stationarity, half-life and z-score analysis on it. Cointegrated is the
// ADF verdict on the spread; ADF critical values are used rather than
// residual-based Engle-Granger ones.
func Analyze(a, b []float64, opts Options) (*Analysis, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	if opts.Model == "" {
		opts.Model = ModelOLS
	}

	corr, err := Correlation(a, b)
	if err != nil {
		return nil, err
	}
	out := &Analysis{Model: opts.Model, NObs: len(a), Correlation: corr}

	// rolling fits leave NaN until the first full window
	warmup := 0
	switch opts.Model {
	case ModelOLS:
		if opts.Lookback > 0 {
			out.Alphas, out.Betas, err = RollingHedgeRatios(a, b, opts.Lookback)
			if err != nil {
				return nil, err
			}
			out.Spread, err = RollingSpread(a, b, out.Alphas, out.Betas)
			warmup = opts.Lookback - 1
		} else {
			out.Hedge, err = HedgeRatio(a, b)
			if err != nil {
				return nil, fmt.Errorf("hedge ratio: %w", err)
			}
			out.Spread, err = Spread(a, b, out.Hedge.Alpha, out.Hedge.Beta)
		}
	case ModelRatio:
		out.Spread, err = Ratio(a, b)
	case ModelEuclidean:
		out.Spread, err = Distance(a, b)
	default:
		return nil, fmt.Errorf("pairs: unknown model %q", opts.Model)
	}
	if err != nil {
		return nil, err
	}

	clean := timeseries.NewNamed("spread", out.Spread[min(warmup, len(out.Spread)):]).Finite()
	if clean.Len() > 0 {
		out.Mean, out.StdDev = stat.MeanStdDev(clean.Values, nil)
	}

	out.ZScores = ZScores(out.Spread, opts.ZScoreLookback)
	if n := len(out.ZScores); n > 0 {
		out.LatestZ = out.ZScores[n-1]
		out.MinZ, out.MaxZ = finiteRange(out.ZScores)
	}
	out.TradeCycles = MeasureTradeCycles(out.ZScores, opts.EntryZ, opts.ExitZ)

	out.ADF, err = stats.ADF(clean, opts.ADF)
	if err != nil {
		return nil, fmt.Errorf("spread adf: %w", err)
	}
	out.Cointegrated = out.ADF.IsStationary

	out.HalfLife, err = HalfLife(clean.Values, opts.MaxHalfLife)
	if err != nil {
		return nil, fmt.Errorf("half-life: %w", err)
	}
	if opts.Lookback > 0 {
		out.RollingHalfLife = RollingHalfLife(out.Spread, opts.Lookback)
	}

	out.Hurst, err = HurstExponent(clean.Values)
	if err != nil {
		return nil, fmt.Errorf("hurst: %w", err)
	}
	return out, nil
}

func finiteRange(values []float64) (lo, hi float64) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0
	}
	return floats.Min(finite), floats.Max(finite)
}
