package cli

import (
	"github.com/spf13/cobra"

	"github.com/omegabytes/ecoprompt/impact"
	"github.com/omegabytes/ecoprompt/report"
)

type impactParams struct {
	model   string
	input   int
	output  int
	prompt  string
	formula bool
	json    bool
}

// impactOutput is the --json document of the impact command.
type impactOutput struct {
	report.CompleteImpact
	FormulaEnergy *impact.Energy `json:"formula_energy,omitempty"`
}

func newImpactCmd(a *app) *cobra.Command {
	var p impactParams

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Show the energy, water and carbon footprint of one query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImpact(cmd, a, p)
		},
	}

	cmd.Flags().StringVar(&p.model, "model", "", "model id (see `ecoprompt models`)")
	cmd.Flags().IntVar(&p.input, "input", 0, "input tokens")
	cmd.Flags().IntVar(&p.output, "output", 0, "output tokens")
	cmd.Flags().StringVar(&p.prompt, "prompt", "", "prompt text used to estimate missing token counts")
	cmd.Flags().BoolVar(&p.formula, "formula", false, "also estimate energy from latency and throughput")
	cmd.Flags().BoolVar(&p.json, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func runImpact(cmd *cobra.Command, a *app, p impactParams) error {
	result, err := a.calc.CompleteImpact(p.model, p.input, p.output, p.prompt)
	if err != nil {
		return err
	}

	out := impactOutput{CompleteImpact: result}
	if p.formula {
		energy, err := impact.NewEnergyCalculator(a.store).
			CalculateEnergy(p.model, result.Tokens.Input, result.Tokens.Output, false)
		if err != nil {
			return err
		}
		out.FormulaEnergy = &energy
	}

	if p.json {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	return renderImpact(a, out).writeTo(cmd.OutOrStdout())
}

func renderImpact(a *app, out impactOutput) *section {
	r := out.CompleteImpact
	env := r.EnvironmentalImpact

	s := newSection("Environmental Impact: " + r.Model.Name)
	s.field("Model", "%s (%s on %s)", r.Model.ID, r.Model.Provider, r.Model.Host)
	s.field("Tokens", "%d in / %d out (%s)", r.Tokens.Input, r.Tokens.Output, r.Category)
	s.field("Energy", "%.3f Wh (%.3f - %.3f)", env.Energy.Wh, env.Energy.ConfidenceInterval.Min, env.Energy.ConfidenceInterval.Max)
	s.field("Water", "%.2f mL (cooling %.2f, electricity %.2f)",
		env.Water.ML, env.Water.Breakdown.OnsiteCoolingML, env.Water.Breakdown.OffsiteElectricityML)
	s.field("Carbon", "%.3f gCO2e", env.Carbon.GCO2e)

	if f := out.FormulaEnergy; f != nil {
		s.field("Formula energy", "%.3f Wh (%.2fs at %.2f kW, PUE %.2f)",
			f.EnergyWh, f.Details.TotalTimeSeconds, f.Details.PowerKW, f.Details.PUE)
	}

	s.blank()
	s.line(a.calc.Conversions().FormatForDisplay(env.Energy.Wh, env.Water.ML, env.Carbon.GCO2e))
	return s
}
