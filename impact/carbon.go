package impact

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	gPerKg = 1000
	kgPerT = 1000

	monthsPerYear = 12
	daysPerMonth  = 30
)

// Carbon is the estimated emissions of one query.
type Carbon struct {
	ModelID     string            `json:"model_id"`
	CarbonG     float64           `json:"carbon_gco2e"`
	CarbonKg    float64           `json:"carbon_kgco2e"`
	Multipliers CarbonMultipliers `json:"multipliers"`
	EnergyUsed  EnergyUsed        `json:"energy_used"`
	Provider    string            `json:"provider"`
}

type CarbonMultipliers struct {
	CIF float64 `json:"cif_kgco2e_per_kwh"`
}

// CarbonCalculator estimates query emissions from energy and the provider's grid carbon intensity.
type CarbonCalculator struct {
	models ModelLookup
	energy EnergyEstimator
}

func NewCarbonCalculator(models ModelLookup, energy EnergyEstimator) *CarbonCalculator {
	return &CarbonCalculator{models: models, energy: energy}
}

// CalculateCarbon estimates the emissions of a query as kgCO2e = kWh * CIF. When energyWh is nil
// the benchmark energy of the query is used.
func (c *CarbonCalculator) CalculateCarbon(
	modelID string,
	inputTokens, outputTokens int,
	energyWh *float64,
) (Carbon, error) {
	if err := checkTokens(inputTokens, outputTokens); err != nil {
		return Carbon{}, err
	}
	_, provider, err := c.models.ProviderForModel(modelID)
	if err != nil {
		return Carbon{}, err
	}
	wh, err := energyUsed(c.energy, modelID, inputTokens, outputTokens, energyWh)
	if err != nil {
		return Carbon{}, err
	}

	used := newEnergyUsed(wh)
	kg := provider.CarbonKg(used.KWh)

	log.Debug().Str("model", modelID).Float64("kgco2e", kg).Msg("carbon")
	return Carbon{
		ModelID:     modelID,
		CarbonG:     kg * gPerKg,
		CarbonKg:    kg,
		Multipliers: CarbonMultipliers{CIF: provider.CIF},
		EnergyUsed:  used,
		Provider:    provider.Name,
	}, nil
}

// Annual is a one-year emissions projection for a query volume.
type Annual struct {
	AnnualQueries     int     `json:"annual_queries"`
	AnnualCarbonG     float64 `json:"annual_carbon_gco2e"`
	AnnualCarbonKg    float64 `json:"annual_carbon_kgco2e"`
	AnnualCarbonT     float64 `json:"annual_carbon_tons"`
	DailyQueriesStart int     `json:"daily_queries_start"`
	DailyQueriesEnd   int     `json:"daily_queries_end"`
	GrowthRate        float64 `json:"growth_rate"`
}

// AnnualImpact projects emissions over twelve 30-day months. The daily volume grows by growthRate
// (0.2 for 20%) at the start of each month after the first.
func AnnualImpact(dailyQueries int, carbonPerQueryG, growthRate float64) (Annual, error) {
	switch {
	case dailyQueries < 0:
		return Annual{}, fmt.Errorf("daily queries must be non-negative, got %d", dailyQueries)
	case carbonPerQueryG < 0:
		return Annual{}, fmt.Errorf("carbon per query must be non-negative, got %g", carbonPerQueryG)
	case growthRate <= -1:
		return Annual{}, fmt.Errorf("growth rate must be greater than -1, got %g", growthRate)
	}

	var queries, carbonG float64
	daily := float64(dailyQueries)
	for month := 0; month < monthsPerYear; month++ {
		monthly := daily * daysPerMonth
		queries += monthly
		carbonG += monthly * carbonPerQueryG
		if month < monthsPerYear-1 {
			daily *= 1 + growthRate
		}
	}

	kg := carbonG / gPerKg
	return Annual{
		AnnualQueries:     int(queries),
		AnnualCarbonG:     carbonG,
		AnnualCarbonKg:    kg,
		AnnualCarbonT:     kg / kgPerT,
		DailyQueriesStart: dailyQueries,
		DailyQueriesEnd:   int(daily),
		GrowthRate:        growthRate,
	}, nil
}
