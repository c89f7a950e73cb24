// Package report combines the energy, water and carbon calculators into complete per-query
// reports, model comparisons and optimization suggestions.
package report

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/omegabytes/ecoprompt/common"
	"github.com/omegabytes/ecoprompt/conversion"
	"github.com/omegabytes/ecoprompt/impact"
	"github.com/omegabytes/ecoprompt/refdata"
	"github.com/omegabytes/ecoprompt/request"
)

// Normalization selects how metrics are scaled before they are combined into an eco score.
type Normalization string

const (
	// NormalizeMax divides each metric by the largest value in the batch.
	NormalizeMax Normalization = "max"
	// NormalizeRange maps each metric onto [0, 1] between the batch minimum and maximum.
	NormalizeRange Normalization = "range"
)

// ErrUnknownNormalization is returned when parsing an unsupported normalization name.
var ErrUnknownNormalization = errors.New("unknown normalization")

// ParseNormalization parses "max" or "range". The empty string selects NormalizeMax.
func ParseNormalization(s string) (Normalization, error) {
	switch Normalization(s) {
	case "", NormalizeMax:
		return NormalizeMax, nil
	case NormalizeRange:
		return NormalizeRange, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNormalization, s)
}

// DefaultCandidates are the models compared against when suggesting a model switch.
var DefaultCandidates = []string{"gpt-4.1-nano", "llama-3.2-1b", "gpt-4o-mini", "gpt-4o", "claude-3.7-sonnet"}

// Calculator produces reports from a reference data store.
type Calculator struct {
	store       *refdata.Store
	energy      *impact.EnergyCalculator
	water       *impact.WaterCalculator
	carbon      *impact.CarbonCalculator
	conversions *conversion.Calculator

	defaultOutput int
	normalization Normalization
	candidates    []string
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithDefaultOutputTokens sets the output length assumed when only prompt text is known.
func WithDefaultOutputTokens(n int) Option {
	return func(c *Calculator) {
		c.defaultOutput = n
	}
}

// WithNormalization sets the normalization used by CompareModels.
func WithNormalization(n Normalization) Option {
	return func(c *Calculator) {
		c.normalization = n
	}
}

// WithCandidates sets the models OptimizationSuggestions compares against.
func WithCandidates(ids []string) Option {
	return func(c *Calculator) {
		c.candidates = ids
	}
}

// NewCalculator wires the impact calculators to store.
func NewCalculator(store *refdata.Store, opts ...Option) *Calculator {
	energy := impact.NewEnergyCalculator(store)
	c := &Calculator{
		store:         store,
		energy:        energy,
		water:         impact.NewWaterCalculator(store, energy),
		carbon:        impact.NewCarbonCalculator(store, energy),
		conversions:   conversion.NewCalculator(store.Conversions()),
		defaultOutput: request.DefaultOutputTokens,
		normalization: NormalizeMax,
		candidates:    DefaultCandidates,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the reference data the calculator reads from.
func (c *Calculator) Store() *refdata.Store {
	return c.store
}

// Conversions returns the conversion calculator built from the store's factors.
func (c *Calculator) Conversions() *conversion.Calculator {
	return c.conversions
}

type ModelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Host      string `json:"host"`
	SizeClass string `json:"size_class"`
}

type Tokens struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

type EnergyImpact struct {
	Wh                 float64           `json:"wh"`
	KWh                float64           `json:"kwh"`
	ConfidenceInterval common.RangeValue `json:"confidence_interval"`
	StdDev             float64           `json:"std_dev"`
}

type WaterImpact struct {
	ML        float64               `json:"ml"`
	L         float64               `json:"l"`
	Breakdown impact.WaterBreakdown `json:"breakdown"`
}

type CarbonImpact struct {
	GCO2e  float64 `json:"gco2e"`
	KgCO2e float64 `json:"kgco2e"`
}

type EnvironmentalImpact struct {
	Energy EnergyImpact `json:"energy"`
	Water  WaterImpact  `json:"water"`
	Carbon CarbonImpact `json:"carbon"`
}

// CompleteImpact is the full footprint report of one query.
type CompleteImpact struct {
	Model                ModelInfo           `json:"model"`
	Tokens               Tokens              `json:"tokens"`
	Category             request.Category    `json:"prompt_category"`
	EnvironmentalImpact  EnvironmentalImpact `json:"environmental_impact"`
	RelatableComparisons conversion.All      `json:"relatable_comparisons"`
	Summary              conversion.Summary  `json:"summary"`
}

// CompleteImpact reports the energy, water and carbon footprint of a query together with
// relatable comparisons. Energy comes from the benchmark of the query's category and feeds the
// water and carbon estimates.
//
// When promptText is set and either token count is zero, the input count is estimated from the
// text and a zero output count becomes the configured default.
func (c *Calculator) CompleteImpact(modelID string, inputTokens, outputTokens int, promptText string) (CompleteImpact, error) {
	req := c.EstimatedRequest(modelID, inputTokens, outputTokens, promptText)

	model, err := c.store.Model(modelID)
	if err != nil {
		return CompleteImpact{}, err
	}

	energy, err := c.energy.CalculateEnergy(modelID, req.InputTokens, req.OutputTokens, true)
	if err != nil {
		return CompleteImpact{}, fmt.Errorf("failed to calculate energy: %w", err)
	}
	water, err := c.water.CalculateWater(modelID, req.InputTokens, req.OutputTokens, &energy.EnergyWh)
	if err != nil {
		return CompleteImpact{}, fmt.Errorf("failed to calculate water: %w", err)
	}
	carbon, err := c.carbon.CalculateCarbon(modelID, req.InputTokens, req.OutputTokens, &energy.EnergyWh)
	if err != nil {
		return CompleteImpact{}, fmt.Errorf("failed to calculate carbon: %w", err)
	}

	comparisons := c.conversions.ConvertAll(energy.EnergyWh, water.WaterML, carbon.CarbonG)

	log.Debug().
		Str("model", modelID).
		Int("input", req.InputTokens).
		Int("output", req.OutputTokens).
		Float64("wh", energy.EnergyWh).
		Float64("ml", water.WaterML).
		Float64("gco2e", carbon.CarbonG).
		Msg("complete impact")

	return CompleteImpact{
		Model: ModelInfo{
			ID:        model.ID(),
			Name:      model.Name(),
			Provider:  model.Provider(),
			Host:      model.Host(),
			SizeClass: model.SizeClass(),
		},
		Tokens: Tokens{
			Input:  req.InputTokens,
			Output: req.OutputTokens,
			Total:  req.TotalTokens(),
		},
		Category: energy.Category,
		EnvironmentalImpact: EnvironmentalImpact{
			Energy: EnergyImpact{
				Wh:                 energy.EnergyWh,
				KWh:                energy.EnergyKWh,
				ConfidenceInterval: energy.ConfidenceInterval,
				StdDev:             energy.StdDev,
			},
			Water: WaterImpact{
				ML:        water.WaterML,
				L:         water.WaterL,
				Breakdown: water.Breakdown,
			},
			Carbon: CarbonImpact{
				GCO2e:  carbon.CarbonG,
				KgCO2e: carbon.CarbonKg,
			},
		},
		RelatableComparisons: comparisons,
		Summary:              comparisons.Summary,
	}, nil
}
