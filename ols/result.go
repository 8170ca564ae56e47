package ols

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/goregression/matrix"
)

// Result holds a fitted regression. It is immutable; slice accessors
// return copies.
type Result struct {
	coefficients []float64
	stdErrors    []float64
	ssr          float64
	nobs         int
	nparams      int

	fitted    []float64
	residuals []float64
	y         []float64
}

// Coefficients returns the estimated parameters, one per design column.
func (r *Result) Coefficients() []float64 { return clone(r.coefficients) }

// StdErrors returns the standard error of each coefficient. Entries are
// +Inf when the residual variance is undefined (nobs <= nparams) or the
// corresponding diagonal of (X'X)^-1 came out negative.
func (r *Result) StdErrors() []float64 { return clone(r.stdErrors) }

// SSR returns the sum of squared residuals.
func (r *Result) SSR() float64 { return r.ssr }

// NObs returns the number of observations.
func (r *Result) NObs() int { return r.nobs }

// NParams returns the number of estimated parameters.
func (r *Result) NParams() int { return r.nparams }

// DF returns the residual degrees of freedom, nobs - nparams.
func (r *Result) DF() int { return r.nobs - r.nparams }

// Fitted returns the predicted values X·beta.
func (r *Result) Fitted() []float64 { return clone(r.fitted) }

// Residuals returns y - X·beta.
func (r *Result) Residuals() []float64 { return clone(r.residuals) }

// Sigma2 returns the residual variance SSR/df, or +Inf when df <= 0.
func (r *Result) Sigma2() float64 {
	if r.DF() <= 0 {
		return math.Inf(1)
	}
	return r.ssr / float64(r.DF())
}

// TStats returns coefficient / standard error for each parameter.
// An infinite standard error yields 0.
func (r *Result) TStats() []float64 {
	out := make([]float64, r.nparams)
	for i, c := range r.coefficients {
		out[i] = c / r.stdErrors[i]
	}
	return out
}

// PValues returns two-sided p-values for H0: coefficient = 0 under a
// Student's t distribution with DF degrees of freedom. Entries are NaN
// when DF <= 0 or the standard error is not finite.
func (r *Result) PValues() []float64 {
	out := make([]float64, r.nparams)
	df := r.DF()
	if df <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	for i, t := range r.TStats() {
		if math.IsInf(r.stdErrors[i], 0) || math.IsNaN(t) {
			out[i] = math.NaN()
			continue
		}
		out[i] = 2 * dist.Survival(math.Abs(t))
	}
	return out
}

// RSquared returns the coefficient of determination 1 - SSR/SST, where
// SST is taken around the mean of y. It returns NaN for a constant y.
func (r *Result) RSquared() float64 {
	mean := 0.0
	for _, v := range r.y {
		mean += v
	}
	mean /= float64(len(r.y))

	sst := 0.0
	for _, v := range r.y {
		d := v - mean
		sst += d * d
	}
	if sst == 0 {
		return math.NaN()
	}
	return 1 - r.ssr/sst
}

// AdjRSquared returns R² adjusted for the number of parameters.
func (r *Result) AdjRSquared() float64 {
	if r.DF() <= 0 {
		return math.NaN()
	}
	n := float64(r.nobs)
	return 1 - (1-r.RSquared())*(n-1)/float64(r.DF())
}

// LogLikelihood returns the Gaussian log-likelihood at the ML variance
// estimate SSR/nobs.
func (r *Result) LogLikelihood() float64 {
	n := float64(r.nobs)
	if r.ssr <= 0 {
		return math.Inf(1)
	}
	return -n / 2 * (math.Log(2*math.Pi) + math.Log(r.ssr/n) + 1)
}

// AIC returns the Akaike information criterion.
func (r *Result) AIC() float64 {
	return -2*r.LogLikelihood() + 2*float64(r.nparams)
}

// BIC returns the Bayesian information criterion.
func (r *Result) BIC() float64 {
	return -2*r.LogLikelihood() + float64(r.nparams)*math.Log(float64(r.nobs))
}

// Predict evaluates the fitted model at a single design row.
func (r *Result) Predict(row []float64) (float64, error) {
	return matrix.Dot(row, r.coefficients)
}

// String returns a short coefficient table.
func (r *Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "OLS: nobs=%d nparams=%d ssr=%.6g\n", r.nobs, r.nparams, r.ssr)
	for i, c := range r.coefficients {
		fmt.Fprintf(&sb, "  b%d = %.6g (se %.6g)\n", i, c, r.stdErrors[i])
	}
	return sb.String()
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
