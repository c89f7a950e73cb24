package cli

import (
	"github.com/spf13/cobra"

	"github.com/omegabytes/ecoprompt/conversion"
	"github.com/omegabytes/ecoprompt/impact"
)

type annualParams struct {
	daily          int
	carbonPerQuery float64
	growth         float64
	json           bool
}

func newAnnualCmd(_ *app) *cobra.Command {
	var p annualParams

	cmd := &cobra.Command{
		Use:   "annual",
		Short: "Project a year of emissions for a daily query volume",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := impact.AnnualImpact(p.daily, p.carbonPerQuery, p.growth)
			if err != nil {
				return err
			}
			if p.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return renderAnnual(result).writeTo(cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&p.daily, "daily", 0, "queries per day in the first month")
	cmd.Flags().Float64Var(&p.carbonPerQuery, "carbon-per-query", 0, "gCO2e per query")
	cmd.Flags().Float64Var(&p.growth, "growth", 0, "monthly growth rate, 0.2 for 20%")
	cmd.Flags().BoolVar(&p.json, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("daily")
	_ = cmd.MarkFlagRequired("carbon-per-query")
	return cmd
}

func renderAnnual(a impact.Annual) *section {
	s := newSection("Annual Projection")
	s.field("Queries", "%s", conversion.FormatNumber(int64(a.AnnualQueries)))
	s.field("Daily volume", "%s → %s (%.1f%% monthly growth)",
		conversion.FormatNumber(int64(a.DailyQueriesStart)),
		conversion.FormatNumber(int64(a.DailyQueriesEnd)),
		a.GrowthRate*100)
	s.field("Carbon", "%.2f kgCO2e (%.3f tCO2e)", a.AnnualCarbonKg, a.AnnualCarbonT)
	return s
}
