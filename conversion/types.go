// Package conversion turns raw footprint metrics (Wh, mL, gCO2e) into relatable real-world
// equivalences such as minutes of an LED lightbulb or meters driven by car.
package conversion

// Equivalence is one relatable comparison of a metric.
type Equivalence struct {
	Key         Key     `json:"key"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Result holds every equivalence computed for one metric and the one chosen as primary.
type Result struct {
	// Conversions are in a fixed order per metric.
	Conversions        []Equivalence `json:"conversions"`
	Primary            Key           `json:"primary"`
	PrimaryDescription string        `json:"primary_description"`
}

// Get returns the equivalence stored under key.
func (r Result) Get(key Key) (Equivalence, bool) {
	for _, e := range r.Conversions {
		if e.Key == key {
			return e, true
		}
	}
	return Equivalence{}, false
}

// Summary holds the primary description of each metric.
type Summary struct {
	Energy string `json:"energy_primary"`
	Water  string `json:"water_primary"`
	Carbon string `json:"carbon_primary"`
}

// All bundles the conversions of energy, water and carbon for one query.
type All struct {
	Energy  Result  `json:"energy"`
	Water   Result  `json:"water"`
	Carbon  Result  `json:"carbon"`
	Summary Summary `json:"summary"`
}

// EnergyFactors are the reference appliances used for energy comparisons.
type EnergyFactors struct {
	LEDBulbWatts        float64 `json:"led_bulb_watts"`
	SmartphoneBatteryWh float64 `json:"smartphone_battery_wh"`
	CoffeeCupWh         float64 `json:"coffee_cup_wh"`
	LaptopWatts         float64 `json:"laptop_watts"`
	TVWatts             float64 `json:"tv_watts"`
}

// WaterFactors are the reference volumes used for water comparisons.
type WaterFactors struct {
	DropsPerML      float64 `json:"drops_per_ml"`
	CoffeeCupML     float64 `json:"coffee_cup_ml"`
	BottleML        float64 `json:"bottle_ml"`
	DailyDrinkingML float64 `json:"daily_drinking_ml"`
	OlympicPoolML   float64 `json:"olympic_pool_ml"`
}

// CarbonFactors are the reference emitters and sinks used for carbon comparisons.
type CarbonFactors struct {
	CarGCO2ePerKm            float64 `json:"car_gco2e_per_km"`
	TreeGCO2ePerDay          float64 `json:"tree_gco2e_per_day"`
	ForestGCO2ePerSqmYear    float64 `json:"forest_gco2e_per_sqm_year"`
	TransatlanticFlightGCO2e float64 `json:"transatlantic_flight_gco2e"`
}

// Factors is the content of conversion_factors.json.
type Factors struct {
	Energy EnergyFactors `json:"energy_conversions"`
	Water  WaterFactors  `json:"water_conversions"`
	Carbon CarbonFactors `json:"carbon_conversions"`
}

// DefaultFactors returns the reference values used when a factor is absent from the document.
func DefaultFactors() Factors {
	return Factors{
		Energy: EnergyFactors{
			LEDBulbWatts:        1,
			SmartphoneBatteryWh: 10,
			CoffeeCupWh:         40,
			LaptopWatts:         50,
			TVWatts:             130,
		},
		Water: WaterFactors{
			DropsPerML:      20,
			CoffeeCupML:     250,
			BottleML:        500,
			DailyDrinkingML: 2000,
			OlympicPoolML:   2_500_000_000,
		},
		Carbon: CarbonFactors{
			CarGCO2ePerKm:            200,
			TreeGCO2ePerDay:          48,
			ForestGCO2ePerSqmYear:    10,
			TransatlanticFlightGCO2e: 700_000,
		},
	}
}
