package conversion

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
var printer = message.NewPrinter(language.English)

// Calculator converts footprint metrics into equivalences using a fixed set of factors.
type Calculator struct {
	factors Factors
}

// NewCalculator returns a Calculator using the given factors.
func NewCalculator(factors Factors) *Calculator {
	return &Calculator{factors: factors}
}

// Factors returns the factors the calculator was built with.
func (c *Calculator) Factors() Factors {
	return c.factors
}

// ConvertEnergy converts energy in Wh to relatable equivalents.
func (c *Calculator) ConvertEnergy(energyWh float64) Result {
	f := c.factors.Energy

	ledMinutes := energyWh / f.LEDBulbWatts * minutesPerHour
	smartphonePct := (energyWh / f.SmartphoneBatteryWh) * percent
	coffeeCups := energyWh / f.CoffeeCupWh
	laptopMinutes := (energyWh / f.LaptopWatts) * minutesPerHour
	tvMinutes := (energyWh / f.TVWatts) * minutesPerHour

	conversions := []Equivalence{
		{
			Key:         LEDLightbulb,
			Value:       ledMinutes,
			Unit:        "minutes",
			Description: fmt.Sprintf("%.1f minutes of LED lightbulb (%gW)", ledMinutes, f.LEDBulbWatts),
			Icon:        "💡",
		},
		{
			Key:         SmartphoneCharge,
			Value:       smartphonePct,
			Unit:        "percentage",
			Description: fmt.Sprintf("%.1f%% of smartphone charge", smartphonePct),
			Icon:        "📱",
		},
		{
			Key:         CoffeeCup,
			Value:       coffeeCups,
			Unit:        "cups",
			Description: fmt.Sprintf("%.3f cups of coffee", coffeeCups),
			Icon:        "☕",
		},
		{
			Key:         LaptopRuntime,
			Value:       laptopMinutes,
			Unit:        "minutes",
			Description: fmt.Sprintf("%.1f minutes of laptop usage", laptopMinutes),
			Icon:        "💻",
		},
		{
			Key:         TVRuntime,
			Value:       tvMinutes,
			Unit:        "minutes",
			Description: fmt.Sprintf("%.1f minutes of 65\" TV", tvMinutes),
			Icon:        "📺",
		},
	}

	return newResult(conversions, PrimaryEnergy(energyWh))
}

// ConvertWater converts water in mL to relatable equivalents.
func (c *Calculator) ConvertWater(waterML float64) Result {
	f := c.factors.Water

	drops := waterML * f.DropsPerML
	coffeeCups := waterML / f.CoffeeCupML
	bottles := waterML / f.BottleML
	dailyPct := (waterML / f.DailyDrinkingML) * percent
	poolPct := (waterML / f.OlympicPoolML) * percent

	conversions := []Equivalence{
		{
			Key:         WaterDrops,
			Value:       drops,
			Unit:        "drops",
			Description: fmt.Sprintf("%.0f drops of water", drops),
			Icon:        "💧",
		},
		{
			Key:         CoffeeCups,
			Value:       coffeeCups,
			Unit:        "cups",
			Description: fmt.Sprintf("%.3f coffee cups", coffeeCups),
			Icon:        "☕",
		},
		{
			Key:         WaterBottles,
			Value:       bottles,
			Unit:        "bottles",
			Description: fmt.Sprintf("%.3f water bottles (%gmL)", bottles, f.BottleML),
			Icon:        "🍶",
		},
		{
			Key:         DailyDrinkingWater,
			Value:       dailyPct,
			Unit:        "percentage",
			Description: fmt.Sprintf("%.2f%% of daily drinking water", dailyPct),
			Icon:        "🚰",
		},
		{
			Key:         OlympicPool,
			Value:       poolPct,
			Unit:        "percentage",
			Description: fmt.Sprintf("%.6f%% of Olympic pool", poolPct),
			Icon:        "🏊",
		},
	}

	return newResult(conversions, PrimaryWater(waterML))
}

// ConvertCarbon converts carbon in gCO2e to relatable equivalents.
func (c *Calculator) ConvertCarbon(carbonG float64) Result {
	f := c.factors.Carbon

	carKm := carbonG / f.CarGCO2ePerKm
	carMeters := carKm * metersPerKm
	treesDaily := carbonG / f.TreeGCO2ePerDay
	forestSqm := carbonG / f.ForestGCO2ePerSqmYear
	flightPct := (carbonG / f.TransatlanticFlightGCO2e) * percent

	conversions := []Equivalence{
		{
			Key:         CarMeters,
			Value:       carMeters,
			Unit:        "meters",
			Description: fmt.Sprintf("%.1f meters driven by car", carMeters),
			Icon:        "🚗",
		},
		{
			Key:         CarKilometers,
			Value:       carKm,
			Unit:        "kilometers",
			Description: fmt.Sprintf("%.3f km driven by car", carKm),
			Icon:        "🚗",
		},
		{
			Key:         TreeAbsorptionDaily,
			Value:       treesDaily,
			Unit:        "trees (daily)",
			Description: fmt.Sprintf("%.3f trees needed for 1 day", treesDaily),
			Icon:        "🌳",
		},
		{
			Key:         ForestArea,
			Value:       forestSqm,
			Unit:        "square meters (yearly)",
			Description: fmt.Sprintf("%.2f m² of forest for 1 year", forestSqm),
			Icon:        "🌲",
		},
		{
			Key:         TransatlanticFlight,
			Value:       flightPct,
			Unit:        "percentage",
			Description: fmt.Sprintf("%.4f%% of transatlantic flight", flightPct),
			Icon:        "✈️",
		},
	}

	return newResult(conversions, PrimaryCarbon(carbonG))
}

// ConvertAll converts all three metrics at once.
func (c *Calculator) ConvertAll(energyWh, waterML, carbonG float64) All {
	energy := c.ConvertEnergy(energyWh)
	water := c.ConvertWater(waterML)
	carbon := c.ConvertCarbon(carbonG)
	return All{
		Energy: energy,
		Water:  water,
		Carbon: carbon,
		Summary: Summary{
			Energy: energy.PrimaryDescription,
			Water:  water.PrimaryDescription,
			Carbon: carbon.PrimaryDescription,
		},
	}
}

// FormatForDisplay renders the raw metrics and their primary comparisons as a text block.
// Raw values are printed without digit grouping.
func (c *Calculator) FormatForDisplay(energyWh, waterML, carbonG float64) string {
	all := c.ConvertAll(energyWh, waterML, carbonG)

	var b strings.Builder
	b.WriteString("🌍 ENVIRONMENTAL IMPACT\n\n")
	fmt.Fprintf(&b, "⚡ Energy: %.2f Wh\n   = %s\n\n", energyWh, all.Summary.Energy)
	fmt.Fprintf(&b, "💧 Water: %.2f mL\n   = %s\n\n", waterML, all.Summary.Water)
	fmt.Fprintf(&b, "🌱 Carbon: %.2f gCO2e\n   = %s", carbonG, all.Summary.Carbon)
	return b.String()
}

// FormatNumber formats an integer with thousand separators, e.g. 18248 as "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// PrimaryEnergy selects the most relatable energy comparison for a value in Wh.
func PrimaryEnergy(energyWh float64) Key {
	switch {
	case energyWh < EnergyLEDMaxWh:
		return LEDLightbulb
	case energyWh < EnergySmartphoneMaxWh:
		return SmartphoneCharge
	case energyWh < EnergyLaptopMaxWh:
		return LaptopRuntime
	default:
		return CoffeeCup
	}
}

// PrimaryWater selects the most relatable water comparison for a value in mL.
func PrimaryWater(waterML float64) Key {
	switch {
	case waterML < WaterDropsMaxML:
		return WaterDrops
	case waterML < WaterDailyMaxML:
		return DailyDrinkingWater
	case waterML < WaterCoffeeMaxML:
		return CoffeeCups
	default:
		return WaterBottles
	}
}

// PrimaryCarbon selects the most relatable carbon comparison for a value in gCO2e.
// Everything under CarbonMetersMaxG, including sub-gram values, reads best in meters.
func PrimaryCarbon(carbonG float64) Key {
	if carbonG < CarbonMetersMaxG {
		return CarMeters
	}
	return CarKilometers
}

func newResult(conversions []Equivalence, primary Key) Result {
	r := Result{Conversions: conversions, Primary: primary}
	if e, ok := r.Get(primary); ok {
		r.PrimaryDescription = e.Description
	}
	return r
}
