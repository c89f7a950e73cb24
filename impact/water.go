package impact

import (
	"github.com/rs/zerolog/log"
)

const mlPerL = 1000

// Water is the estimated water consumption of one query.
type Water struct {
	ModelID     string           `json:"model_id"`
	WaterML     float64          `json:"water_ml"`
	WaterL      float64          `json:"water_l"`
	Breakdown   WaterBreakdown   `json:"breakdown"`
	Multipliers WaterMultipliers `json:"multipliers"`
	EnergyUsed  EnergyUsed       `json:"energy_used"`
	Provider    string           `json:"provider"`
}

// WaterBreakdown splits water use between datacenter cooling and electricity generation.
type WaterBreakdown struct {
	OnsiteCoolingML      float64 `json:"onsite_cooling_ml"`
	OffsiteElectricityML float64 `json:"offsite_electricity_ml"`
	OnsiteCoolingL       float64 `json:"onsite_cooling_l"`
	OffsiteElectricityL  float64 `json:"offsite_electricity_l"`
}

type WaterMultipliers struct {
	PUE        float64 `json:"pue"`
	WUEOnsite  float64 `json:"wue_onsite_l_per_kwh"`
	WUEOffsite float64 `json:"wue_offsite_l_per_kwh"`
}

// EnergyUsed is the energy a water or carbon figure was derived from.
type EnergyUsed struct {
	Wh  float64 `json:"wh"`
	KWh float64 `json:"kwh"`
}

func newEnergyUsed(wh float64) EnergyUsed {
	return EnergyUsed{Wh: wh, KWh: wh / whPerKWh}
}

// WaterCalculator estimates query water consumption from energy and provider WUE.
type WaterCalculator struct {
	models ModelLookup
	energy EnergyEstimator
}

func NewWaterCalculator(models ModelLookup, energy EnergyEstimator) *WaterCalculator {
	return &WaterCalculator{models: models, energy: energy}
}

// CalculateWater estimates the water consumed by a query. When energyWh is nil the benchmark
// energy of the query is used.
//
// On-site cooling scales with IT energy, so the PUE overhead is removed before applying WUE on-site;
// off-site water applies to all facility energy.
func (c *WaterCalculator) CalculateWater(
	modelID string,
	inputTokens, outputTokens int,
	energyWh *float64,
) (Water, error) {
	if err := checkTokens(inputTokens, outputTokens); err != nil {
		return Water{}, err
	}
	_, provider, err := c.models.ProviderForModel(modelID)
	if err != nil {
		return Water{}, err
	}
	wh, err := energyUsed(c.energy, modelID, inputTokens, outputTokens, energyWh)
	if err != nil {
		return Water{}, err
	}

	used := newEnergyUsed(wh)
	onsiteL := provider.OnsiteWaterL(used.KWh)
	offsiteL := provider.OffsiteWaterL(used.KWh)
	totalL := onsiteL + offsiteL

	log.Debug().Str("model", modelID).Float64("onsite_l", onsiteL).Float64("offsite_l", offsiteL).Msg("water")
	return Water{
		ModelID: modelID,
		WaterML: totalL * mlPerL,
		WaterL:  totalL,
		Breakdown: WaterBreakdown{
			OnsiteCoolingML:      onsiteL * mlPerL,
			OffsiteElectricityML: offsiteL * mlPerL,
			OnsiteCoolingL:       onsiteL,
			OffsiteElectricityL:  offsiteL,
		},
		Multipliers: WaterMultipliers{
			PUE:        provider.PUE,
			WUEOnsite:  provider.WUEOnsite,
			WUEOffsite: provider.WUEOffsite,
		},
		EnergyUsed: used,
		Provider:   provider.Name,
	}, nil
}
