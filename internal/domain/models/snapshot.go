package models

import "time"

// AssetSnapshot is the unit of presentation state for one asset, rebuilt
// from scratch every cycle. Assets whose fetch failed this cycle have no
// snapshot at all; fields are never partially updated.
type AssetSnapshot struct {
	Symbol       string      `json:"symbol"`
	CurrentPrice float64     `json:"current_price"`
	Signal       Signal      `json:"signal"`
	SignalLabel  string      `json:"signal_label"`
	Series       PriceSeries `json:"series"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
