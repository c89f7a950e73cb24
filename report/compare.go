package report

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/omegabytes/ecoprompt/conversion"
)

// Eco score weights for energy, water and carbon.
const (
	energyWeight = 0.33
	waterWeight  = 0.33
	carbonWeight = 0.34
)

// ModelComparison is one entry of a multi-metric comparison. Error is set when the model could
// not be evaluated; the metric fields are then zero.
type ModelComparison struct {
	ModelID     string             `json:"model_id"`
	ModelName   string             `json:"model_name,omitempty"`
	Provider    string             `json:"provider,omitempty"`
	EnergyWh    float64            `json:"energy_wh"`
	WaterML     float64            `json:"water_ml"`
	CarbonG     float64            `json:"carbon_gco2e"`
	EcoScore    float64            `json:"eco_score"`
	Conversions conversion.Summary `json:"conversions"`
	Error       string             `json:"error,omitempty"`
}

// ScoredModel is the best or worst entry of a comparison.
type ScoredModel struct {
	ModelID  string  `json:"model"`
	EcoScore float64 `json:"eco_score"`
	EnergyWh float64 `json:"energy_wh"`
	WaterML  float64 `json:"water_ml"`
	CarbonG  float64 `json:"carbon_gco2e"`
}

// Savings is the difference between two entries, per metric and as a score percentage.
type Savings struct {
	EnergyWh   float64 `json:"energy_wh"`
	WaterML    float64 `json:"water_ml"`
	CarbonG    float64 `json:"carbon_gco2e"`
	Percentage float64 `json:"percentage"`
}

// Comparison ranks models by eco score, lower is better. Recommendation is empty and Best and
// Worst are nil when no model could be evaluated.
type Comparison struct {
	Comparison       []ModelComparison `json:"comparison"`
	Ranking          []string          `json:"ranking"`
	Normalization    Normalization     `json:"normalization"`
	Recommendation   string            `json:"recommendation"`
	Best             *ScoredModel      `json:"best,omitempty"`
	Worst            *ScoredModel      `json:"worst,omitempty"`
	PotentialSavings *Savings          `json:"potential_savings,omitempty"`
}

// CompareModels evaluates every model for the same query and ranks them by eco score. A model
// that fails is recorded with its error and excluded from scoring.
//
// Under the default NormalizeMax a model that is cheapest on all three metrics still scores
// above 0; only NormalizeRange maps it to exactly 0.
func (c *Calculator) CompareModels(modelIDs []string, inputTokens, outputTokens int) Comparison {
	norm := c.normalization
	result := Comparison{
		Comparison:    make([]ModelComparison, 0, len(modelIDs)),
		Ranking:       []string{},
		Normalization: norm,
	}

	var valid []int
	for _, id := range modelIDs {
		full, err := c.CompleteImpact(id, inputTokens, outputTokens, "")
		if err != nil {
			log.Warn().Err(err).Str("model", id).Msg("model comparison entry failed")
			result.Comparison = append(result.Comparison, ModelComparison{ModelID: id, Error: err.Error()})
			continue
		}
		valid = append(valid, len(result.Comparison))
		result.Comparison = append(result.Comparison, ModelComparison{
			ModelID:     id,
			ModelName:   full.Model.Name,
			Provider:    full.Model.Provider,
			EnergyWh:    full.EnvironmentalImpact.Energy.Wh,
			WaterML:     full.EnvironmentalImpact.Water.ML,
			CarbonG:     full.EnvironmentalImpact.Carbon.GCO2e,
			Conversions: full.Summary,
		})
	}
	if len(valid) == 0 {
		return result
	}

	energy := newScaler(norm)
	water := newScaler(norm)
	carbon := newScaler(norm)
	for _, i := range valid {
		energy.observe(result.Comparison[i].EnergyWh)
		water.observe(result.Comparison[i].WaterML)
		carbon.observe(result.Comparison[i].CarbonG)
	}
	for _, i := range valid {
		e := &result.Comparison[i]
		e.EcoScore = energy.scale(e.EnergyWh)*energyWeight +
			water.scale(e.WaterML)*waterWeight +
			carbon.scale(e.CarbonG)*carbonWeight
	}

	sort.SliceStable(valid, func(a, b int) bool {
		return result.Comparison[valid[a]].EcoScore < result.Comparison[valid[b]].EcoScore
	})
	for _, i := range valid {
		result.Ranking = append(result.Ranking, result.Comparison[i].ModelID)
	}

	best := result.Comparison[valid[0]]
	worst := result.Comparison[valid[len(valid)-1]]
	result.Recommendation = best.ModelID
	result.Best = scored(best)
	result.Worst = scored(worst)
	savings := savingsBetween(worst, best)
	result.PotentialSavings = &savings
	return result
}

// savingsBetween returns what switching from the from entry to the to entry saves.
func savingsBetween(from, to ModelComparison) Savings {
	s := Savings{
		EnergyWh: from.EnergyWh - to.EnergyWh,
		WaterML:  from.WaterML - to.WaterML,
		CarbonG:  from.CarbonG - to.CarbonG,
	}
	if from.EcoScore > 0 {
		s.Percentage = (from.EcoScore - to.EcoScore) / from.EcoScore * 100
	}
	return s
}

func scored(m ModelComparison) *ScoredModel {
	return &ScoredModel{
		ModelID:  m.ModelID,
		EcoScore: m.EcoScore,
		EnergyWh: m.EnergyWh,
		WaterML:  m.WaterML,
		CarbonG:  m.CarbonG,
	}
}

// scaler maps one metric of a batch onto [0, 1].
type scaler struct {
	norm     Normalization
	min, max float64
}

func newScaler(norm Normalization) *scaler {
	return &scaler{norm: norm, min: math.Inf(1), max: math.Inf(-1)}
}

func (s *scaler) observe(v float64) {
	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
}

// scale returns 0 for every value when the batch gives no spread to divide by.
func (s *scaler) scale(v float64) float64 {
	if s.norm == NormalizeRange {
		if s.max == s.min {
			return 0
		}
		return (v - s.min) / (s.max - s.min)
	}
	if s.max == 0 {
		return 0
	}
	return v / s.max
}
