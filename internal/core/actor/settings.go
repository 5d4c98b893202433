package actor

// Settings are the operator-configured thresholds and feature toggles.
// Read as an immutable snapshot at the start of each pilot invocation;
// written only through the settings service update path
type Settings struct {
	// Bunker economics
	FuelPriceAlert float64 `json:"fuel_price_alert" yaml:"fuel_price_alert" validate:"gte=0"`
	FuelPriceRebuy float64 `json:"fuel_price_rebuy" yaml:"fuel_price_rebuy" validate:"gte=0"`
	CO2PriceAlert  float64 `json:"co2_price_alert" yaml:"co2_price_alert" validate:"gte=0"`
	CO2PriceRebuy  float64 `json:"co2_price_rebuy" yaml:"co2_price_rebuy" validate:"gte=0"`

	// MinFuelFloor is the hard safety gate for departures, in tonnes
	MinFuelFloor float64 `json:"min_fuel_floor" yaml:"min_fuel_floor" validate:"gte=0"`

	// Maintenance
	RepairWearPct    float64 `json:"repair_wear_pct" yaml:"repair_wear_pct" validate:"gte=0,lte=100"`
	DrydockHoursLeft float64 `json:"drydock_hours_left" yaml:"drydock_hours_left" validate:"gte=0"`

	// Departure shaping
	MinCargoUtilizationPct float64 `json:"min_cargo_utilization_pct" yaml:"min_cargo_utilization_pct" validate:"gte=0,lte=100"`
	SpeedPct               float64 `json:"speed_pct" yaml:"speed_pct" validate:"gt=0,lte=100"`
	HighFeeRatio           float64 `json:"high_fee_ratio" yaml:"high_fee_ratio" validate:"gte=0,lte=1"`
	Guards                 bool    `json:"guards" yaml:"guards"`

	// Feature toggles
	AutoDepart   bool `json:"auto_depart" yaml:"auto_depart"`
	AutoFuel     bool `json:"auto_fuel" yaml:"auto_fuel"`
	AutoCO2      bool `json:"auto_co2" yaml:"auto_co2"`
	AutoRepair   bool `json:"auto_repair" yaml:"auto_repair"`
	AutoDrydock  bool `json:"auto_drydock" yaml:"auto_drydock"`
	AutoCampaign bool `json:"auto_campaign" yaml:"auto_campaign"`
	AutoCoop     bool `json:"auto_coop" yaml:"auto_coop"`
	AutoStocks   bool `json:"auto_stocks" yaml:"auto_stocks"`
	AutoStaff    bool `json:"auto_staff" yaml:"auto_staff"`
	AutoHijack   bool `json:"auto_hijack" yaml:"auto_hijack"`

	// StaffMoraleFloor triggers a morale raise when crossed, percent
	StaffMoraleFloor float64 `json:"staff_morale_floor" yaml:"staff_morale_floor" validate:"gte=0,lte=100"`
}

// DefaultSettings mirror the stock profile shipped with the app; operators
// normally override them per actor
func DefaultSettings() Settings {
	return Settings{
		FuelPriceAlert:         420,
		FuelPriceRebuy:         360,
		CO2PriceAlert:          140,
		CO2PriceRebuy:          120,
		MinFuelFloor:           20,
		RepairWearPct:          70,
		DrydockHoursLeft:       24,
		MinCargoUtilizationPct: 60,
		SpeedPct:               100,
		HighFeeRatio:           0.25,
		Guards:                 false,
		AutoDepart:             true,
		AutoFuel:               true,
		AutoCO2:                true,
		AutoRepair:             true,
		AutoDrydock:            false,
		AutoCampaign:           true,
		AutoCoop:               false,
		AutoStocks:             false,
		AutoStaff:              true,
		AutoHijack:             false,
		StaffMoraleFloor:       65,
	}
}
