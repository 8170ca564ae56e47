package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sartorproj/goregression/matrix"
	"github.com/sartorproj/goregression/ols"
	"github.com/sartorproj/goregression/stats"
	"github.com/sartorproj/goregression/timeseries"
)

type fitReport struct {
	Parameters   []string         `json:"parameters" yaml:"parameters"`
	Coefficients []number         `json:"coefficients" yaml:"coefficients"`
	StdErrors    []number         `json:"std_errors" yaml:"std_errors"`
	TStats       []number         `json:"t_stats" yaml:"t_stats"`
	PValues      []number         `json:"p_values" yaml:"p_values"`
	SSR          number           `json:"ssr" yaml:"ssr"`
	NObs         int              `json:"nobs" yaml:"nobs"`
	NParams      int              `json:"nparams" yaml:"nparams"`
	DF           int              `json:"df" yaml:"df"`
	RSquared     number           `json:"r_squared" yaml:"r_squared"`
	AdjRSquared  number           `json:"adj_r_squared" yaml:"adj_r_squared"`
	AIC          number           `json:"aic" yaml:"aic"`
	BIC          number           `json:"bic" yaml:"bic"`
	DurbinWatson number           `json:"durbin_watson" yaml:"durbin_watson"`
	LjungBox     *portmanteauInfo `json:"ljung_box,omitempty" yaml:"ljung_box,omitempty"`
}

type portmanteauInfo struct {
	Statistic number `json:"statistic" yaml:"statistic"`
	PValue    number `json:"p_value" yaml:"p_value"`
	Lags      int    `json:"lags" yaml:"lags"`
}

func newFitCommand(a *app) *cobra.Command {
	var (
		yCol      string
		xCols     string
		intercept bool
		residuals string
	)

	cmd := &cobra.Command{
		Use:   "fit <csv>",
		Short: "Fit an OLS regression of one column on others",
		Example: `  goregression fit prices.csv --y AAA --x BBB,CCC --intercept
  goregression fit data.csv --y y --x const,x1 --residuals resid.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regressors := splitColumns(xCols)
			if yCol == "" || len(regressors) == 0 {
				return errors.New("--y and --x are required")
			}
			if slices.Contains(regressors, yCol) {
				return fmt.Errorf("column %q is both response and regressor", yCol)
			}

			columns := append(append([]string(nil), regressors...), yCol)
			table, err := a.loadColumns(args[0], columns)
			if err != nil {
				return err
			}

			n, k := table.Len(), len(regressors)
			data := make([]float64, 0, n*k)
			for i := 0; i < n; i++ {
				for _, c := range regressors {
					data = append(data, table.Values[c][i])
				}
			}
			x, err := matrix.New(n, k, data)
			if err != nil {
				return err
			}
			names := regressors
			if intercept {
				x = ols.AddIntercept(x)
				names = append([]string{"const"}, regressors...)
			}

			res, err := ols.Fit(x, table.Values[yCol])
			if err != nil {
				return fmt.Errorf("fit: %w", err)
			}
			klog.V(1).InfoS("regression fitted", "nobs", res.NObs(), "nparams", res.NParams(), "ssr", res.SSR())

			rep := &fitReport{
				Parameters:   names,
				Coefficients: numbers(res.Coefficients()),
				StdErrors:    numbers(res.StdErrors()),
				TStats:       numbers(res.TStats()),
				PValues:      numbers(res.PValues()),
				SSR:          number(res.SSR()),
				NObs:         res.NObs(),
				NParams:      res.NParams(),
				DF:           res.DF(),
				RSquared:     number(res.RSquared()),
				AdjRSquared:  number(res.AdjRSquared()),
				AIC:          number(res.AIC()),
				BIC:          number(res.BIC()),
				DurbinWatson: number(stats.DurbinWatson(res.Residuals())),
			}

			resid := &timeseries.Series{Name: "residuals", Values: res.Residuals()}
			if len(table.Timestamps) == n {
				resid.Timestamps = table.Timestamps
			}
			if lb, err := stats.LjungBox(resid, min(10, n/5), 0); err == nil {
				rep.LjungBox = &portmanteauInfo{
					Statistic: number(lb.Statistic),
					PValue:    number(lb.PValue),
					Lags:      lb.Lags,
				}
			}

			if residuals != "" {
				if err := timeseries.SaveCSV(resid, residuals); err != nil {
					return fmt.Errorf("save residuals: %w", err)
				}
				klog.V(1).InfoS("residuals written", "file", residuals)
			}

			return a.emit(cmd.OutOrStdout(), "fit", flatten(table, columns), rep)
		},
	}

	cmd.Flags().StringVar(&yCol, "y", "", "response column")
	cmd.Flags().StringVar(&xCols, "x", "", "comma-separated regressor columns")
	cmd.Flags().BoolVar(&intercept, "intercept", false, "prepend a constant column")
	cmd.Flags().StringVar(&residuals, "residuals", "", "write residuals to this CSV file")
	return cmd
}
