package conversion

// Primary comparison thresholds. A value below a threshold selects that comparison; the last
// comparison of each metric applies to everything above its final threshold.
const (
	// EnergyLEDMaxWh selects the LED lightbulb comparison below 1 Wh.
	EnergyLEDMaxWh = 1.0
	// EnergySmartphoneMaxWh selects the smartphone charge comparison below 5 Wh.
	EnergySmartphoneMaxWh = 5.0
	// EnergyLaptopMaxWh selects the laptop runtime comparison below 20 Wh.
	EnergyLaptopMaxWh = 20.0

	// WaterDropsMaxML selects the water drops comparison below 10 mL.
	WaterDropsMaxML = 10.0
	// WaterDailyMaxML selects the daily drinking water comparison below 100 mL.
	WaterDailyMaxML = 100.0
	// WaterCoffeeMaxML selects the coffee cups comparison below 500 mL.
	WaterCoffeeMaxML = 500.0

	// CarbonMetersMaxG selects the car meters comparison below 50 gCO2e.
	CarbonMetersMaxG = 50.0
)

const (
	minutesPerHour = 60
	percent        = 100
	metersPerKm    = 1000
)

// Key names one relatable equivalence.
type Key string

// Energy equivalences.
const (
	LEDLightbulb     Key = "led_lightbulb"
	SmartphoneCharge Key = "smartphone_charge"
	CoffeeCup        Key = "coffee_cup"
	LaptopRuntime    Key = "laptop_runtime"
	TVRuntime        Key = "tv_runtime"
)

// Water equivalences.
const (
	WaterDrops         Key = "water_drops"
	CoffeeCups         Key = "coffee_cups"
	WaterBottles       Key = "water_bottles"
	DailyDrinkingWater Key = "daily_drinking_water"
	OlympicPool        Key = "olympic_pool"
)

// Carbon equivalences.
const (
	CarMeters           Key = "car_meters"
	CarKilometers       Key = "car_kilometers"
	TreeAbsorptionDaily Key = "tree_absorption_daily"
	ForestArea          Key = "forest_area"
	TransatlanticFlight Key = "transatlantic_flight"
)
