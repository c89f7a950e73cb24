package report

import (
	"github.com/rs/zerolog/log"
)

// Metric names a single footprint metric.
type Metric string

const (
	MetricEnergy Metric = "energy"
	MetricWater  Metric = "water"
	MetricCarbon Metric = "carbon"
)

var metricUnits = map[Metric]string{
	MetricEnergy: "Wh",
	MetricWater:  "mL",
	MetricCarbon: "gCO2e",
}

// MetricEntry is one model's value in a single-metric comparison.
type MetricEntry struct {
	ModelID   string  `json:"model_id"`
	ModelName string  `json:"model_name,omitempty"`
	Provider  string  `json:"provider,omitempty"`
	Value     float64 `json:"value"`
	Error     string  `json:"error,omitempty"`
}

// MetricComparison compares models on one metric; the lowest value is recommended.
type MetricComparison struct {
	Metric         Metric        `json:"metric"`
	Unit           string        `json:"unit"`
	Comparison     []MetricEntry `json:"comparison"`
	Recommendation string        `json:"recommendation"`
	Best           *float64      `json:"best,omitempty"`
	Worst          *float64      `json:"worst,omitempty"`
}

// CompareEnergy compares the benchmark energy of models for the same query.
func (c *Calculator) CompareEnergy(modelIDs []string, inputTokens, outputTokens int) MetricComparison {
	return c.compareMetric(MetricEnergy, modelIDs, func(id string) (float64, error) {
		e, err := c.energy.CalculateEnergy(id, inputTokens, outputTokens, true)
		return e.EnergyWh, err
	})
}

// CompareWater compares the water consumption of models for the same query.
func (c *Calculator) CompareWater(modelIDs []string, inputTokens, outputTokens int) MetricComparison {
	return c.compareMetric(MetricWater, modelIDs, func(id string) (float64, error) {
		w, err := c.water.CalculateWater(id, inputTokens, outputTokens, nil)
		return w.WaterML, err
	})
}

// CompareCarbon compares the emissions of models for the same query.
func (c *Calculator) CompareCarbon(modelIDs []string, inputTokens, outputTokens int) MetricComparison {
	return c.compareMetric(MetricCarbon, modelIDs, func(id string) (float64, error) {
		cb, err := c.carbon.CalculateCarbon(id, inputTokens, outputTokens, nil)
		return cb.CarbonG, err
	})
}

func (c *Calculator) compareMetric(metric Metric, modelIDs []string, value func(string) (float64, error)) MetricComparison {
	result := MetricComparison{
		Metric:     metric,
		Unit:       metricUnits[metric],
		Comparison: make([]MetricEntry, 0, len(modelIDs)),
	}

	var best, worst *MetricEntry
	for _, id := range modelIDs {
		v, err := value(id)
		if err != nil {
			log.Warn().Err(err).Str("model", id).Str("metric", string(metric)).Msg("metric comparison entry failed")
			result.Comparison = append(result.Comparison, MetricEntry{ModelID: id, Error: err.Error()})
			continue
		}
		entry := MetricEntry{ModelID: id, Value: v}
		if model, provider, err := c.store.ProviderForModel(id); err == nil {
			entry.ModelName = model.Name()
			entry.Provider = provider.Name
		}
		result.Comparison = append(result.Comparison, entry)

		if best == nil || v < best.Value {
			best = &entry
		}
		if worst == nil || v > worst.Value {
			worst = &entry
		}
	}

	if best != nil {
		result.Recommendation = best.ModelID
		result.Best = &best.Value
		result.Worst = &worst.Value
	}
	return result
}
