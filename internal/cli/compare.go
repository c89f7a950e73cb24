package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omegabytes/ecoprompt/report"
)

type compareParams struct {
	models    []string
	input     int
	output    int
	normalize string
	metric    string
	json      bool
}

func newCompareCmd(a *app) *cobra.Command {
	var p compareParams

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank models by eco score for the same query",
		Long: `Evaluate every model for the same token counts and rank them by eco score
(33% energy, 33% water, 34% carbon, lower is better).

With --metric the models are compared on energy, water or carbon alone.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, a, p)
		},
	}

	cmd.Flags().StringSliceVar(&p.models, "models", nil, "comma separated model ids (default: every model)")
	cmd.Flags().IntVar(&p.input, "input", 100, "input tokens")
	cmd.Flags().IntVar(&p.output, "output", 300, "output tokens")
	cmd.Flags().StringVar(&p.normalize, "normalize", "", "eco score normalization: max or range (default from config)")
	cmd.Flags().StringVar(&p.metric, "metric", "", "compare a single metric: energy, water or carbon")
	cmd.Flags().BoolVar(&p.json, "json", false, "print JSON")
	return cmd
}

func runCompare(cmd *cobra.Command, a *app, p compareParams) error {
	ids := p.models
	if len(ids) == 0 {
		ids = a.store.ModelIDs()
	}

	if p.metric != "" {
		return runCompareMetric(cmd, a, p, ids)
	}

	calc := a.calc
	if p.normalize != "" {
		norm, err := report.ParseNormalization(p.normalize)
		if err != nil {
			return err
		}
		calc = report.NewCalculator(a.store, append(a.cfg.ReportOptions(), report.WithNormalization(norm))...)
	}

	result := calc.CompareModels(ids, p.input, p.output)
	if p.json {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	return renderComparison(result).writeTo(cmd.OutOrStdout())
}

func runCompareMetric(cmd *cobra.Command, a *app, p compareParams, ids []string) error {
	var result report.MetricComparison
	switch report.Metric(p.metric) {
	case report.MetricEnergy:
		result = a.calc.CompareEnergy(ids, p.input, p.output)
	case report.MetricWater:
		result = a.calc.CompareWater(ids, p.input, p.output)
	case report.MetricCarbon:
		result = a.calc.CompareCarbon(ids, p.input, p.output)
	default:
		return fmt.Errorf("unknown metric %q: must be energy, water or carbon", p.metric)
	}

	if p.json {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	return renderMetricComparison(result).writeTo(cmd.OutOrStdout())
}

func renderComparison(c report.Comparison) *section {
	s := newSection("Model Comparison")
	s.line(mutedStyle.Render(fmt.Sprintf("normalization: %s", c.Normalization)))
	s.blank()

	byID := make(map[string]report.ModelComparison, len(c.Comparison))
	for _, entry := range c.Comparison {
		byID[entry.ModelID] = entry
	}
	for rank, id := range c.Ranking {
		e := byID[id]
		s.field(fmt.Sprintf("%d. %s", rank+1, id), "score %.3f | %.3f Wh | %.2f mL | %.3f gCO2e",
			e.EcoScore, e.EnergyWh, e.WaterML, e.CarbonG)
	}
	for _, entry := range c.Comparison {
		if entry.Error != "" {
			s.line(errorStyle.Render(fmt.Sprintf("✗ %s: %s", entry.ModelID, entry.Error)))
		}
	}

	s.blank()
	if c.Recommendation == "" {
		s.line(warningStyle.Render("No model could be evaluated"))
		return s
	}
	s.line(okStyle.Render("Recommended: " + c.Recommendation))
	if sv := c.PotentialSavings; sv != nil {
		s.field("Savings vs worst", "%.3f Wh | %.2f mL | %.3f gCO2e (%.1f%%)",
			sv.EnergyWh, sv.WaterML, sv.CarbonG, sv.Percentage)
	}
	return s
}

func renderMetricComparison(c report.MetricComparison) *section {
	s := newSection(fmt.Sprintf("Model Comparison: %s", c.Metric))
	for _, entry := range c.Comparison {
		if entry.Error != "" {
			s.line(errorStyle.Render(fmt.Sprintf("✗ %s: %s", entry.ModelID, entry.Error)))
			continue
		}
		s.field(entry.ModelID, "%.4f %s", entry.Value, c.Unit)
	}

	s.blank()
	if c.Recommendation == "" {
		s.line(warningStyle.Render("No model could be evaluated"))
		return s
	}
	s.line(okStyle.Render("Recommended: " + c.Recommendation))
	s.field("Range", "%.4f - %.4f %s", *c.Best, *c.Worst, c.Unit)
	return s
}
