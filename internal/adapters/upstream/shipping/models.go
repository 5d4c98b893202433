package shipping

// Vessel statuses reported by the game
const (
	StatusPort    = "port"
	StatusAnchor  = "anchor"
	StatusPending = "pending"
)

// Capacity types
const (
	CapacityContainer = "container"
	CapacityTanker    = "tanker"
)

// Cargo subtypes per capacity type
const (
	CargoDry          = "dry"
	CargoRefrigerated = "refrigerated"
	CargoFuel         = "fuel"
	CargoCrudeOil     = "crude_oil"
)

// Vessel is a game-owned ship, read-only to the engine
type Vessel struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	IsParked         bool     `json:"is_parked"`
	RouteID          int64    `json:"route_id"`
	RouteOrigin      string   `json:"route_origin"`
	RouteDestination string   `json:"route_destination"`
	CurrentPort      string   `json:"current_port"`
	CapacityType     string   `json:"capacity_type"`
	CapacityMax      Capacity `json:"capacity_max"`
	RouteDistance    float64  `json:"route_distance"`
	RouteSpeed       float64  `json:"route_speed"`
	MaxSpeed         float64  `json:"max_speed"`
	RouteFuelReq     *float64 `json:"route_fuel_required"`
	Wear             float64  `json:"wear"`
	HoursUntilCheck  float64  `json:"hours_until_check"`
}

// Capacity holds per-subtype maxima; container vessels use Dry/Refrigerated,
// tankers use Fuel/CrudeOil
type Capacity struct {
	Dry          float64 `json:"dry"`
	Refrigerated float64 `json:"refrigerated"`
	Fuel         float64 `json:"fuel"`
	CrudeOil     float64 `json:"crude_oil"`
}

// Port is an assigned destination with demand bookkeeping
type Port struct {
	Code     string             `json:"code"`
	Demand   map[string]float64 `json:"demand"`
	Consumed map[string]float64 `json:"consumed"`
}

// Bunker is the account-level resource state
type Bunker struct {
	Fuel    float64 `json:"fuel"`
	CO2     float64 `json:"co2"`
	Cash    float64 `json:"cash"`
	MaxFuel float64 `json:"max_fuel"`
	MaxCO2  float64 `json:"max_co2"`
}

// Prices are current bunker purchase prices
type Prices struct {
	Fuel float64 `json:"fuel"`
	CO2  float64 `json:"co2"`
}

// GameIndex is the composite dashboard read the engine polls
type GameIndex struct {
	Vessels []Vessel `json:"vessels"`
	Bunker  Bunker   `json:"bunker"`
	Prices  Prices   `json:"prices"`

	RepairableCount int `json:"repairable_count"`
	DrydockDueCount int `json:"drydock_due_count"`

	ActiveCampaigns []Campaign `json:"active_campaigns"`
}

// DepartResult is the upstream response to a departure mutation
type DepartResult struct {
	Success bool `json:"success"`

	Income      float64 `json:"income"`
	HarborFee   float64 `json:"harbor_fee"`
	FuelUsed    float64 `json:"fuel_used"`
	CO2Used     float64 `json:"co2_used"`
	CargoLoaded float64 `json:"cargo_loaded"`

	VesselName  string  `json:"vessel_name"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	RouteName   string  `json:"route_name"`
	Speed       float64 `json:"speed"`
	Guards      bool    `json:"guards"`

	TeuDry          float64 `json:"teu_dry"`
	TeuRefrigerated float64 `json:"teu_refrigerated"`
	FuelCargo       float64 `json:"fuel_cargo"`
	CrudeCargo      float64 `json:"crude_cargo"`

	Error        string `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// PurchaseResult is the response to a fuel/CO2 purchase
type PurchaseResult struct {
	NewTotal float64 `json:"new_total"`
	Cost     float64 `json:"cost"`
}

// Campaign is an active marketing campaign
type Campaign struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	HoursRem float64 `json:"hours_remaining"`
}

// CoopStatus is the cooperative progress read
type CoopStatus struct {
	TargetCargo      float64 `json:"target_cargo"`
	ContributedCargo float64 `json:"contributed_cargo"`
	HoursRemaining   float64 `json:"hours_remaining"`
}

// StockQuote is one tradable company quote
type StockQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Owned  int64   `json:"owned"`
}

// StaffSummary reports crew morale
type StaffSummary struct {
	Morale   float64 `json:"morale"`
	RaiseFee float64 `json:"raise_fee"`
}

// Hijacking is an active piracy incident awaiting negotiation
type Hijacking struct {
	ID         int64   `json:"id"`
	VesselName string  `json:"vessel_name"`
	Demand     float64 `json:"demand"`
}

// AllianceData is the alliance membership read (cached, informational)
type AllianceData struct {
	Name    string  `json:"name"`
	Members int     `json:"members"`
	Rank    int     `json:"rank"`
	Points  float64 `json:"points"`
}
