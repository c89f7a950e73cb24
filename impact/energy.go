package impact

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/omegabytes/ecoprompt/common"
	"github.com/omegabytes/ecoprompt/request"
)

// formulaUncertainty is the relative half-width of the interval reported for formula estimates.
const formulaUncertainty = 0.25

var formulaInterval = common.RangeValue{Min: 1 - formulaUncertainty, Max: 1 + formulaUncertainty}

type EnergyEstimator interface {
	CalculateEnergy(modelID string, inputTokens, outputTokens int, useBenchmark bool) (Energy, error)
}

var _ EnergyEstimator = &EnergyCalculator{}

// Energy is the estimated energy consumption of one query.
type Energy struct {
	ModelID            string            `json:"model_id"`
	EnergyWh           float64           `json:"energy_wh"`
	EnergyKWh          float64           `json:"energy_kwh"`
	ConfidenceInterval common.RangeValue `json:"confidence_interval"`
	StdDev             float64           `json:"std_dev"`
	Category           request.Category  `json:"prompt_category"`
	Method             Method            `json:"method"`
	Details            *FormulaDetails   `json:"details,omitempty"`
}

// FormulaDetails are the intermediate values of a formula estimate.
type FormulaDetails struct {
	LatencySeconds    float64 `json:"latency_seconds"`
	OutputTimeSeconds float64 `json:"output_time_seconds"`
	TotalTimeSeconds  float64 `json:"total_time_seconds"`
	TPS               float64 `json:"tps"`
	PowerKW           float64 `json:"power_kw"`
	PUE               float64 `json:"pue"`
}

// EnergyCalculator estimates query energy from model benchmarks.
type EnergyCalculator struct {
	models ModelLookup
}

func NewEnergyCalculator(models ModelLookup) *EnergyCalculator {
	return &EnergyCalculator{models: models}
}

// CalculateEnergy estimates the energy of a query.
//
// With useBenchmark the measured mean of the query's category is returned, bracketed by one
// standard deviation. Otherwise the energy is derived from the time the node spends on the query:
//
//	E(kWh) = ((output / tps + latency) / 3600) * criticalPower(kW) * PUE
func (c *EnergyCalculator) CalculateEnergy(
	modelID string,
	inputTokens, outputTokens int,
	useBenchmark bool,
) (Energy, error) {
	if err := checkTokens(inputTokens, outputTokens); err != nil {
		return Energy{}, err
	}
	model, provider, err := c.models.ProviderForModel(modelID)
	if err != nil {
		return Energy{}, err
	}

	category := request.CategoryFor(inputTokens + outputTokens)
	perf, err := model.Performance(category)
	if err != nil {
		return Energy{}, err
	}

	if useBenchmark {
		mean, std := perf.EnergyWhMean, perf.EnergyWhStd
		log.Debug().Str("model", modelID).Str("category", string(category)).Float64("wh", mean).Msg("benchmark energy")
		return Energy{
			ModelID:   modelID,
			EnergyWh:  mean,
			EnergyKWh: mean / whPerKWh,
			ConfidenceInterval: common.RangeValue{
				Min: math.Max(0, mean-std),
				Max: mean + std,
			},
			StdDev:   std,
			Category: category,
			Method:   MethodBenchmark,
		}, nil
	}

	if perf.TPSP50 <= 0 {
		return Energy{}, fmt.Errorf("%w: model %s has tps_p50 %g for %s prompts", ErrInvalidBenchmark, modelID, perf.TPSP50, category)
	}
	outputTime := float64(outputTokens) / perf.TPSP50
	totalTime := outputTime + perf.LatencyP50

	energyKWh, err := provider.NodeEnergyKWH(totalTime, model.CriticalPowerKW())
	if err != nil {
		return Energy{}, fmt.Errorf("%w: model %s: %v", ErrInvalidBenchmark, modelID, err)
	}
	energyWh := energyKWh * whPerKWh
	log.Debug().Str("model", modelID).Float64("seconds", totalTime).Float64("wh", energyWh).Msg("formula energy")

	return Energy{
		ModelID:            modelID,
		EnergyWh:           energyWh,
		EnergyKWh:          energyKWh,
		ConfidenceInterval: formulaInterval.Scale(energyWh),
		StdDev:             energyWh * formulaUncertainty,
		Category:           category,
		Method:             MethodFormula,
		Details: &FormulaDetails{
			LatencySeconds:    perf.LatencyP50,
			OutputTimeSeconds: outputTime,
			TotalTimeSeconds:  totalTime,
			TPS:               perf.TPSP50,
			PowerKW:           model.CriticalPowerKW(),
			PUE:               provider.PUE,
		},
	}, nil
}
