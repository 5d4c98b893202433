package shipping

import (
	"context"
	"fmt"
	"net/http"
)

// Vessels fetches the full fleet
func (c *Client) Vessels(ctx context.Context) ([]Vessel, error) {
	var out struct {
		Vessels []Vessel `json:"vessels"`
	}
	if err := c.do(ctx, http.MethodGet, "/vessel/get-vessels", nil, &out); err != nil {
		return nil, err
	}
	return out.Vessels, nil
}

// AssignedPorts fetches the ports this account may deliver to
func (c *Client) AssignedPorts(ctx context.Context) ([]Port, error) {
	var out struct {
		Ports []Port `json:"ports"`
	}
	if err := c.do(ctx, http.MethodGet, "/port/get-assigned", nil, &out); err != nil {
		return nil, err
	}
	return out.Ports, nil
}

// BunkerState fetches fuel/CO2/cash levels
func (c *Client) BunkerState(ctx context.Context) (Bunker, error) {
	var out struct {
		Bunker Bunker `json:"bunker"`
	}
	if err := c.do(ctx, http.MethodGet, "/bunker/get-state", nil, &out); err != nil {
		return Bunker{}, err
	}
	return out.Bunker, nil
}

// Index fetches the composite dashboard payload in one round trip
func (c *Client) Index(ctx context.Context) (GameIndex, error) {
	var out GameIndex
	if err := c.do(ctx, http.MethodGet, "/game/index", nil, &out); err != nil {
		return GameIndex{}, err
	}
	return out, nil
}

// AutoPrice fetches per-cargo-subtype unit prices for a vessel on its route.
// Prices are destination and route specific so callers must not cache them
func (c *Client) AutoPrice(ctx context.Context, vesselID, routeID int64) (map[string]float64, error) {
	var out struct {
		Prices map[string]float64 `json:"prices"`
	}
	path := fmt.Sprintf("/route/auto-price?vessel=%d&route=%d", vesselID, routeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Prices, nil
}

// Depart sends one vessel on its way
func (c *Client) Depart(ctx context.Context, vesselID int64, speed float64, guards bool) (DepartResult, error) {
	body := map[string]any{
		"vessel_id": vesselID,
		"speed":     speed,
		"guards":    guards,
	}
	var out DepartResult
	if err := c.do(ctx, http.MethodPost, "/vessel/depart", body, &out); err != nil {
		return DepartResult{}, err
	}
	return out, nil
}

// PurchaseFuel buys fuel at the quoted price
func (c *Client) PurchaseFuel(ctx context.Context, amount, price float64) (PurchaseResult, error) {
	return c.purchase(ctx, "/bunker/buy-fuel", amount, price)
}

// PurchaseCO2 buys CO2 quota at the quoted price
func (c *Client) PurchaseCO2(ctx context.Context, amount, price float64) (PurchaseResult, error) {
	return c.purchase(ctx, "/bunker/buy-co2", amount, price)
}

func (c *Client) purchase(ctx context.Context, path string, amount, price float64) (PurchaseResult, error) {
	body := map[string]any{"amount": amount, "price": price}
	var out struct {
		Success bool           `json:"success"`
		Error   string         `json:"error"`
		Result  PurchaseResult `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return PurchaseResult{}, err
	}
	if !out.Success {
		return PurchaseResult{}, BusinessError(out.Error)
	}
	return out.Result, nil
}

// SendMessage delivers a private message to another player.
// The game throttles this hard; callers go through the courier queue
func (c *Client) SendMessage(ctx context.Context, recipient, subject, body string) error {
	req := map[string]any{"recipient": recipient, "subject": subject, "body": body}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "/message/send", req, &out); err != nil {
		return err
	}
	if !out.Success {
		if IsRateLimitMessage(out.Error) {
			return rateLimited(out.Error)
		}
		return BusinessError(out.Error)
	}
	return nil
}

// RepairVessels repairs all vessels above the wear threshold
func (c *Client) RepairVessels(ctx context.Context) (int, error) {
	var out struct {
		Success  bool   `json:"success"`
		Error    string `json:"error"`
		Repaired int    `json:"repaired"`
	}
	if err := c.do(ctx, http.MethodPost, "/vessel/repair-all", nil, &out); err != nil {
		return 0, err
	}
	if !out.Success {
		return 0, BusinessError(out.Error)
	}
	return out.Repaired, nil
}

// DrydockVessels sends due vessels to drydock
func (c *Client) DrydockVessels(ctx context.Context) (int, error) {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Docked  int    `json:"docked"`
	}
	if err := c.do(ctx, http.MethodPost, "/vessel/drydock-all", nil, &out); err != nil {
		return 0, err
	}
	if !out.Success {
		return 0, BusinessError(out.Error)
	}
	return out.Docked, nil
}

// Campaigns lists active marketing campaigns
func (c *Client) Campaigns(ctx context.Context) ([]Campaign, error) {
	var out struct {
		Campaigns []Campaign `json:"campaigns"`
	}
	if err := c.do(ctx, http.MethodGet, "/campaign/active", nil, &out); err != nil {
		return nil, err
	}
	return out.Campaigns, nil
}

// RenewCampaign starts a campaign for the given category
func (c *Client) RenewCampaign(ctx context.Context, category string) error {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	body := map[string]any{"category": category}
	if err := c.do(ctx, http.MethodPost, "/campaign/renew", body, &out); err != nil {
		return err
	}
	if !out.Success {
		return BusinessError(out.Error)
	}
	return nil
}

// CoopStatus fetches cooperative target progress
func (c *Client) CoopStatus(ctx context.Context) (CoopStatus, error) {
	var out CoopStatus
	if err := c.do(ctx, http.MethodGet, "/coop/status", nil, &out); err != nil {
		return CoopStatus{}, err
	}
	return out, nil
}

// Contribute donates cargo toward the cooperative target
func (c *Client) Contribute(ctx context.Context, amount float64) (float64, error) {
	var out struct {
		Success     bool    `json:"success"`
		Error       string  `json:"error"`
		Contributed float64 `json:"contributed"`
	}
	body := map[string]any{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/coop/contribute", body, &out); err != nil {
		return 0, err
	}
	if !out.Success {
		return 0, BusinessError(out.Error)
	}
	return out.Contributed, nil
}

// StockQuotes lists tradable quotes including current holdings
func (c *Client) StockQuotes(ctx context.Context) ([]StockQuote, error) {
	var out struct {
		Quotes []StockQuote `json:"quotes"`
	}
	if err := c.do(ctx, http.MethodGet, "/stock/quotes", nil, &out); err != nil {
		return nil, err
	}
	return out.Quotes, nil
}

// TradeStock buys (positive qty) or sells (negative qty) shares
func (c *Client) TradeStock(ctx context.Context, symbol string, qty int64) error {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	body := map[string]any{"symbol": symbol, "quantity": qty}
	if err := c.do(ctx, http.MethodPost, "/stock/trade", body, &out); err != nil {
		return err
	}
	if !out.Success {
		return BusinessError(out.Error)
	}
	return nil
}

// Staff fetches crew morale state
func (c *Client) Staff(ctx context.Context) (StaffSummary, error) {
	var out StaffSummary
	if err := c.do(ctx, http.MethodGet, "/staff/summary", nil, &out); err != nil {
		return StaffSummary{}, err
	}
	return out, nil
}

// RaiseMorale pays the morale raise fee
func (c *Client) RaiseMorale(ctx context.Context) error {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "/staff/raise-morale", nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return BusinessError(out.Error)
	}
	return nil
}

// Hijackings lists active piracy incidents
func (c *Client) Hijackings(ctx context.Context) ([]Hijacking, error) {
	var out struct {
		Hijackings []Hijacking `json:"hijackings"`
	}
	if err := c.do(ctx, http.MethodGet, "/hijack/active", nil, &out); err != nil {
		return nil, err
	}
	return out.Hijackings, nil
}

// NegotiateHijack pays down or negotiates a hijacking demand
func (c *Client) NegotiateHijack(ctx context.Context, id int64) error {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	body := map[string]any{"hijack_id": id}
	if err := c.do(ctx, http.MethodPost, "/hijack/negotiate", body, &out); err != nil {
		return err
	}
	if !out.Success {
		return BusinessError(out.Error)
	}
	return nil
}

// AllianceData fetches alliance standing (informational, cache-friendly)
func (c *Client) AllianceData(ctx context.Context) (AllianceData, error) {
	var out AllianceData
	if err := c.do(ctx, http.MethodGet, "/alliance/summary", nil, &out); err != nil {
		return AllianceData{}, err
	}
	return out, nil
}
