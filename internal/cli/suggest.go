package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omegabytes/ecoprompt/report"
)

type suggestParams struct {
	model  string
	input  int
	output int
	prompt string
	json   bool
}

func newSuggestCmd(a *app) *cobra.Command {
	var p suggestParams

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest ways to lower the footprint of a query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.calc.OptimizationSuggestions(p.model, p.input, p.output, p.prompt)
			if err != nil {
				return err
			}
			if p.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return renderSuggestions(result).writeTo(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&p.model, "model", "", "model id")
	cmd.Flags().IntVar(&p.input, "input", 0, "input tokens")
	cmd.Flags().IntVar(&p.output, "output", 0, "output tokens")
	cmd.Flags().StringVar(&p.prompt, "prompt", "", "prompt text used to estimate missing token counts")
	cmd.Flags().BoolVar(&p.json, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func renderSuggestions(r report.Suggestions) *section {
	current := r.CurrentImpact
	s := newSection("Optimization Suggestions: " + current.Model.Name)
	s.field("Current", "%.3f Wh | %.2f mL | %.3f gCO2e",
		current.EnvironmentalImpact.Energy.Wh,
		current.EnvironmentalImpact.Water.ML,
		current.EnvironmentalImpact.Carbon.GCO2e)
	s.blank()

	if len(r.Suggestions) == 0 {
		s.line(okStyle.Render("Nothing to improve: this query is already efficient"))
		return s
	}
	for i, sg := range r.Suggestions {
		s.line(valueStyle.Render(fmt.Sprintf("%d. %s", i+1, sg.Title)))
		s.line("   " + sg.Description)
		s.line(mutedStyle.Render(fmt.Sprintf("   %s, saves %.3f Wh (%.1f%%)", sg.Action, sg.Savings.EnergyWh, sg.Savings.Percentage)))
	}
	s.blank()
	s.field("Total potential savings", "%.3f Wh (%.1f%%)",
		r.TotalPotentialSavings.EnergyWh, r.TotalPotentialSavings.Percentage)
	return s
}
