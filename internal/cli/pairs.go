package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sartorproj/goregression/pairs"
)

type pairsReport struct {
	A            string        `json:"a" yaml:"a"`
	B            string        `json:"b" yaml:"b"`
	Model        string        `json:"model" yaml:"model"`
	NObs         int           `json:"nobs" yaml:"nobs"`
	Correlation  number        `json:"correlation" yaml:"correlation"`
	Hedge        *hedgeInfo    `json:"hedge,omitempty" yaml:"hedge,omitempty"`
	Mean         number        `json:"mean" yaml:"mean"`
	StdDev       number        `json:"std_dev" yaml:"std_dev"`
	LatestZ      number        `json:"latest_z" yaml:"latest_z"`
	MinZ         number        `json:"min_z" yaml:"min_z"`
	MaxZ         number        `json:"max_z" yaml:"max_z"`
	ADF          *unitRootInfo `json:"adf" yaml:"adf"`
	Cointegrated bool          `json:"cointegrated" yaml:"cointegrated"`
	HalfLife     number        `json:"half_life" yaml:"half_life"`
	HalfLifeOK   bool          `json:"half_life_valid" yaml:"half_life_valid"`
	Hurst        number        `json:"hurst" yaml:"hurst"`

	TradeCycles pairs.TradeCycles `json:"trade_cycles" yaml:"trade_cycles"`

	Series *pairsSeries `json:"series,omitempty" yaml:"series,omitempty"`
}

type hedgeInfo struct {
	Alpha        number `json:"alpha" yaml:"alpha"`
	Beta         number `json:"beta" yaml:"beta"`
	RSquared     number `json:"r_squared" yaml:"r_squared"`
	BetaStdError number `json:"beta_std_error" yaml:"beta_std_error"`
}

type pairsSeries struct {
	Spread          []number `json:"spread" yaml:"spread"`
	ZScores         []number `json:"z_scores" yaml:"z_scores"`
	Alphas          []number `json:"alphas,omitempty" yaml:"alphas,omitempty"`
	Betas           []number `json:"betas,omitempty" yaml:"betas,omitempty"`
	RollingHalfLife []number `json:"rolling_half_life,omitempty" yaml:"rolling_half_life,omitempty"`
}

func newPairsCommand(a *app) *cobra.Command {
	var (
		colA, colB     string
		model          string
		lookback       int
		zscoreLookback int
		withSeries     bool
	)

	cmd := &cobra.Command{
		Use:   "pairs <csv>",
		Short: "Analyse two price columns for mean reversion",
		Example: `  goregression pairs prices.csv --a AAA --b BBB
  goregression pairs prices.csv --a AAA --b BBB --model ols --lookback 60 --series`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if colA == "" || colB == "" {
				return errors.New("--a and --b are required")
			}
			if colA == colB {
				return errors.New("--a and --b must name different columns")
			}
			table, err := a.loadColumns(args[0], []string{colA, colB})
			if err != nil {
				return err
			}

			opts := a.cfg.PairsOptions()
			opts.Model = model
			opts.Lookback = lookback
			if cmd.Flags().Changed("zscore-lookback") {
				opts.ZScoreLookback = zscoreLookback
			}

			res, err := pairs.Analyze(table.Values[colA], table.Values[colB], opts)
			if err != nil {
				return fmt.Errorf("pairs: %w", err)
			}
			klog.V(1).InfoS("pair analysed", "a", colA, "b", colB, "model", res.Model,
				"adf", res.ADF.Statistic, "halfLife", res.HalfLife.HalfLife)

			rep := &pairsReport{
				A:            colA,
				B:            colB,
				Model:        res.Model,
				NObs:         res.NObs,
				Correlation:  number(res.Correlation),
				Mean:         number(res.Mean),
				StdDev:       number(res.StdDev),
				LatestZ:      number(res.LatestZ),
				MinZ:         number(res.MinZ),
				MaxZ:         number(res.MaxZ),
				ADF:          adfInfo(res.ADF),
				Cointegrated: res.Cointegrated,
				HalfLife:     number(res.HalfLife.HalfLife),
				HalfLifeOK:   res.HalfLife.IsValid,
				Hurst:        number(res.Hurst),
				TradeCycles:  res.TradeCycles,
			}
			if h := res.Hedge; h != nil {
				rep.Hedge = &hedgeInfo{
					Alpha:        number(h.Alpha),
					Beta:         number(h.Beta),
					RSquared:     number(h.RSquared),
					BetaStdError: number(h.BetaStdError),
				}
			}
			if withSeries {
				rep.Series = &pairsSeries{
					Spread:          numbers(res.Spread),
					ZScores:         numbers(res.ZScores),
					Alphas:          numbers(res.Alphas),
					Betas:           numbers(res.Betas),
					RollingHalfLife: numbers(res.RollingHalfLife),
				}
			}

			return a.emit(cmd.OutOrStdout(), "pairs", flatten(table, []string{colA, colB}), rep)
		},
	}

	cmd.Flags().StringVar(&colA, "a", "", "first leg (regressand)")
	cmd.Flags().StringVar(&colB, "b", "", "second leg (regressor)")
	cmd.Flags().StringVar(&model, "model", pairs.ModelOLS, "spread model: ols, ratio or euclidean")
	cmd.Flags().IntVar(&lookback, "lookback", 0, "rolling window for hedge ratios and half-lives (0 = static)")
	cmd.Flags().IntVar(&zscoreLookback, "zscore-lookback", 20, "z-score window (0 = whole series)")
	cmd.Flags().BoolVar(&withSeries, "series", false, "include per-observation series in the report")
	return cmd
}
