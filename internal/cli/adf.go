package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sartorproj/goregression/stats"
)

type unitRootInfo struct {
	Statistic      number             `json:"statistic" yaml:"statistic"`
	PValue         number             `json:"p_value" yaml:"p_value"`
	Lags           int                `json:"lags" yaml:"lags"`
	NObs           int                `json:"nobs,omitempty" yaml:"nobs,omitempty"`
	Regression     string             `json:"regression,omitempty" yaml:"regression,omitempty"`
	CriticalValues map[string]float64 `json:"critical_values" yaml:"critical_values"`
	IsStationary   bool               `json:"is_stationary" yaml:"is_stationary"`
}

type adfReport struct {
	Column           string        `json:"column" yaml:"column"`
	ADF              *unitRootInfo `json:"adf" yaml:"adf"`
	KPSS             *unitRootInfo `json:"kpss,omitempty" yaml:"kpss,omitempty"`
	PhillipsPerron   *unitRootInfo `json:"phillips_perron,omitempty" yaml:"phillips_perron,omitempty"`
	IntegrationOrder *int          `json:"integration_order,omitempty" yaml:"integration_order,omitempty"`
}

func adfInfo(r *stats.ADFResult) *unitRootInfo {
	return &unitRootInfo{
		Statistic:      number(r.Statistic),
		PValue:         number(r.PValue),
		Lags:           r.Lags,
		NObs:           r.NObs,
		Regression:     r.Regression,
		CriticalValues: r.CriticalValues,
		IsStationary:   r.IsStationary,
	}
}

func newADFCommand(a *app) *cobra.Command {
	var (
		column     string
		regression string
		maxLag     int
		noAutoLag  bool
		logValues  bool
		normalize  bool
		withKPSS   bool
		withPP     bool
		order      bool
	)

	cmd := &cobra.Command{
		Use:   "adf <csv>",
		Short: "Run the Augmented Dickey-Fuller test on a column",
		Example: `  goregression adf prices.csv --column close --log
  goregression adf spread.csv --column spread --regression ct --kpss --pp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if column == "" {
				return errors.New("--column is required")
			}
			table, err := a.loadColumns(args[0], []string{column})
			if err != nil {
				return err
			}
			series, err := table.Series(column)
			if err != nil {
				return err
			}
			if logValues {
				series = series.Log().Finite()
			}
			if normalize {
				series = series.Normalize()
			}

			opts := a.cfg.ADFOptions()
			if cmd.Flags().Changed("regression") {
				opts.Regression = regression
			}
			if cmd.Flags().Changed("max-lag") {
				opts.MaxLag = maxLag
			}
			if noAutoLag {
				opts.AutoLag = false
			}

			res, err := stats.ADF(series, opts)
			if err != nil {
				return fmt.Errorf("adf: %w", err)
			}
			klog.V(1).InfoS("adf complete", "column", column, "statistic", res.Statistic, "lags", res.Lags)

			rep := &adfReport{Column: column, ADF: adfInfo(res)}
			if withKPSS {
				kpssRegression := stats.RegressionConstant
				if opts.Regression == stats.RegressionConstantTrend {
					kpssRegression = stats.RegressionConstantTrend
				}
				k, err := stats.KPSS(series, kpssRegression, 0)
				if err != nil {
					return fmt.Errorf("kpss: %w", err)
				}
				rep.KPSS = &unitRootInfo{
					Statistic:      number(k.Statistic),
					PValue:         number(k.PValue),
					Lags:           k.Lags,
					Regression:     kpssRegression,
					CriticalValues: k.CriticalValues,
					IsStationary:   k.IsStationary,
				}
			}
			if withPP {
				pp, err := stats.PhillipsPerron(series, 0)
				if err != nil {
					return fmt.Errorf("phillips-perron: %w", err)
				}
				rep.PhillipsPerron = &unitRootInfo{
					Statistic:      number(pp.Statistic),
					PValue:         number(pp.PValue),
					Lags:           pp.Lags,
					CriticalValues: pp.CriticalValues,
					IsStationary:   pp.IsStationary,
				}
			}
			if order {
				d, err := stats.IntegrationOrder(series, 2, stats.UnitRootADF)
				if err != nil {
					return fmt.Errorf("integration order: %w", err)
				}
				rep.IntegrationOrder = &d
			}

			return a.emit(cmd.OutOrStdout(), "adf", series.Values, rep)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "column to test")
	cmd.Flags().StringVar(&regression, "regression", stats.RegressionConstant, "deterministic terms: n, c or ct")
	cmd.Flags().IntVar(&maxLag, "max-lag", 0, "largest lag considered (0 selects 12*(n/100)^0.25)")
	cmd.Flags().BoolVar(&noAutoLag, "no-autolag", false, "use max-lag lags instead of choosing by AIC")
	cmd.Flags().BoolVar(&logValues, "log", false, "test the natural log of the column")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "standardise the column to z-scores before testing")
	cmd.Flags().BoolVar(&withKPSS, "kpss", false, "also run the KPSS test")
	cmd.Flags().BoolVar(&withPP, "pp", false, "also run the Phillips-Perron test")
	cmd.Flags().BoolVar(&order, "order", false, "report the number of differences needed for stationarity")
	return cmd
}

func newClassifyCommand(a *app) *cobra.Command {
	var significance float64

	cmd := &cobra.Command{
		Use:   "classify <statistic>",
		Short: "Look up the p-value and verdict for an ADF statistic",
		Long: `Classify interpolates the p-value of a Dickey-Fuller statistic
(constant, no trend) in a fixed table and reports the series as stationary
when the statistic lies below the critical value at the chosen
significance level (5% by default, -2.86).`,
		Example: `  goregression classify -- -3.2
  goregression classify --significance 0.10 -- -2.7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid statistic %q: %w", args[0], err)
			}
			level := a.cfg.Significance
			if cmd.Flags().Changed("significance") {
				level = significance
			}
			res, err := stats.ClassifyStationarityAt(stat, level)
			if err != nil {
				return err
			}
			rep := &unitRootInfo{
				Statistic:      number(res.Statistic),
				PValue:         number(res.PValue),
				CriticalValues: res.CriticalValues,
				IsStationary:   res.IsStationary,
			}
			return a.emit(cmd.OutOrStdout(), "classify", []float64{stat}, rep)
		},
	}

	cmd.Flags().Float64Var(&significance, "significance", 0.05, "significance level: 0.01, 0.05 or 0.10")
	return cmd
}
