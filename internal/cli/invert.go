package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goregression/matrix"
)

type invertReport struct {
	N       int        `json:"n" yaml:"n"`
	Inverse [][]number `json:"inverse" yaml:"inverse"`
}

func newInvertCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "invert <csv>",
		Short: "Invert a square matrix read from a headerless CSV",
		Long: `Invert reads one matrix row per CSV line and inverts it by Gauss-Jordan
elimination with partial pivoting. Pivots smaller than 1e-12 in magnitude
are reported as a singular matrix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readMatrixFile(args[0], a.cfg.Delimiter())
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			m, err := matrix.NewFromRows(rows)
			if err != nil {
				return err
			}
			inv, err := matrix.Invert(m)
			if err != nil {
				return err
			}

			rep := &invertReport{N: inv.Rows()}
			for _, row := range inv.ToRows() {
				rep.Inverse = append(rep.Inverse, numbers(row))
			}
			return a.emit(cmd.OutOrStdout(), "invert", m.RawData(), rep)
		},
	}
}
