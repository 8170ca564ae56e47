// Package cli implements the goregression command line interface.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/sartorproj/goregression/internal/config"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	output  string
	cfg     *config.Config
}

// NewRootCommand builds the goregression command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "goregression",
		Short: "OLS regression and stationarity analysis for numeric CSV data",
		Long: `goregression fits ordinary least squares regressions, inverts matrices,
runs unit-root tests and analyses price pairs from CSV files. Reports are
written as JSON or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.goregression/config.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "report format: json or yaml (overrides config)")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(
		newFitCommand(a),
		newInvertCommand(a),
		newADFCommand(a),
		newClassifyCommand(a),
		newPairsCommand(a),
		newConfigCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer klog.Flush()
	if err := NewRootCommand().Execute(); err != nil {
		klog.ErrorS(err, "command failed")
		klog.Flush()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// optionalConfig marks commands that may run before their config file exists.
const optionalConfig = "optional-config"

func (a *app) loadConfig(cmd *cobra.Command) error {
	path := a.cfgFile
	if _, ok := cmd.Annotations[optionalConfig]; ok && path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("output") {
		c.Output = a.output
		if err := c.Validate(); err != nil {
			return err
		}
	}
	a.cfg = c
	klog.V(2).InfoS("configuration loaded", "file", a.cfgFile, "output", c.Output)
	return nil
}

// emit writes a report for command name in the configured format.
func (a *app) emit(w io.Writer, name string, input []float64, result any) error {
	return writeReport(w, a.cfg.Output, newReport(name, input, result))
}
