// Package cli implements the ecoprompt command line interface.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/omegabytes/ecoprompt/config"
	"github.com/omegabytes/ecoprompt/refdata"
	"github.com/omegabytes/ecoprompt/report"
)

// app holds what every subcommand needs. It is populated by the root command's
// PersistentPreRunE before any subcommand runs.
type app struct {
	cfg   *config.Config
	store *refdata.Store
	calc  *report.Calculator
}

// NewRootCmd creates the root Cobra command for the ecoprompt CLI.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "ecoprompt",
		Short:         "Estimate the environmental footprint of AI model queries",
		Long:          "ecoprompt estimates the energy, water and carbon footprint of a model query from its token counts.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default ~/.ecoprompt/config.yaml)")
	cmd.PersistentFlags().String("data-dir", "", "directory holding the reference JSON documents (default: embedded)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		newImpactCmd(a),
		newCompareCmd(a),
		newSuggestCmd(a),
		newAnnualCmd(a),
		newModelsCmd(a),
	)
	return cmd
}

const rootCmdExample = `  # Footprint of a short GPT-4o query
  ecoprompt impact --model gpt-4o --input 100 --output 300

  # Estimate tokens from the prompt itself
  ecoprompt impact --model gpt-4o --prompt "Summarize the history of Rome"

  # Rank models for the same query
  ecoprompt compare --models gpt-4o,gpt-4.1-nano,llama-3.2-1b --input 100 --output 300

  # Ways to lower the footprint of a query
  ecoprompt suggest --model claude-3.7-sonnet --input 1000 --output 1500

  # Project a year of emissions at 10000 queries a day growing 5% a month
  ecoprompt annual --daily 10000 --carbon-per-query 0.15 --growth 0.05`

func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	level := cfg.Logging.Level
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = zerolog.DebugLevel.String()
	}
	config.InitLogger(level, cfg.Logging.Format)

	store, err := loadStore(cfg.DataDir)
	if err != nil {
		log.Error().Err(err).Str("data_dir", cfg.DataDir).Msg("failed to load reference data")
		return err
	}

	a.cfg = cfg
	a.store = store
	a.calc = report.NewCalculator(store, cfg.ReportOptions()...)
	return nil
}

func loadStore(dir string) (*refdata.Store, error) {
	if dir == "" {
		return refdata.Default()
	}
	store, err := refdata.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("data dir %s: %w", dir, err)
	}
	return store, nil
}
