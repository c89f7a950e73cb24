package conversion

import (
	"fmt"
	"os"

	"github.com/valyala/fastjson"

	"github.com/omegabytes/ecoprompt/common"
)

// FetchFactors reads and parses a conversion_factors.json document.
func FetchFactors(source string) (Factors, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return Factors{}, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseFactors(data)
}

// ParseFactors parses a conversion factors document. Absent sections or factors keep their
// DefaultFactors value; present ones must be positive numbers.
func ParseFactors(data []byte) (Factors, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return Factors{}, fmt.Errorf("failed to parse conversion factors: %w", err)
	}

	f := DefaultFactors()
	sections := []struct {
		name   string
		fields map[string]*float64
	}{
		{
			name: "energy_conversions",
			fields: map[string]*float64{
				"led_bulb_watts":        &f.Energy.LEDBulbWatts,
				"smartphone_battery_wh": &f.Energy.SmartphoneBatteryWh,
				"coffee_cup_wh":         &f.Energy.CoffeeCupWh,
				"laptop_watts":          &f.Energy.LaptopWatts,
				"tv_watts":              &f.Energy.TVWatts,
			},
		},
		{
			name: "water_conversions",
			fields: map[string]*float64{
				"drops_per_ml":      &f.Water.DropsPerML,
				"coffee_cup_ml":     &f.Water.CoffeeCupML,
				"bottle_ml":         &f.Water.BottleML,
				"daily_drinking_ml": &f.Water.DailyDrinkingML,
				"olympic_pool_ml":   &f.Water.OlympicPoolML,
			},
		},
		{
			name: "carbon_conversions",
			fields: map[string]*float64{
				"car_gco2e_per_km":           &f.Carbon.CarGCO2ePerKm,
				"tree_gco2e_per_day":         &f.Carbon.TreeGCO2ePerDay,
				"forest_gco2e_per_sqm_year":  &f.Carbon.ForestGCO2ePerSqmYear,
				"transatlantic_flight_gco2e": &f.Carbon.TransatlanticFlightGCO2e,
			},
		},
	}

	for _, section := range sections {
		sv := v.Get(section.name)
		if sv == nil {
			continue
		}
		if sv.Type() != fastjson.TypeObject {
			return Factors{}, fmt.Errorf("%w: %s must be an object", common.ErrInvalidDocument, section.name)
		}
		for key, dst := range section.fields {
			n, err := common.OptionalFloat(sv, key, *dst)
			if err != nil {
				return Factors{}, fmt.Errorf("%s: %w", section.name, err)
			}
			if n <= 0 {
				return Factors{}, fmt.Errorf("%w: %s.%s must be greater than 0", common.ErrInvalidDocument, section.name, key)
			}
			*dst = n
		}
	}
	return f, nil
}
