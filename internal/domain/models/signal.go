package models

import "time"

// Signal is the discrete trading recommendation derived from comparing the
// short-window average to the latest price.
type Signal string

const (
	SignalBuy  Signal = "buy"
	SignalSell Signal = "sell"
	SignalHold Signal = "hold"
)

// Label returns the display form used in dashboards and alert messages.
func (s Signal) Label() string {
	switch s {
	case SignalBuy:
		return "Buy 📈"
	case SignalSell:
		return "Sell 📉"
	case SignalHold:
		return "Hold 🤝"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known signal values.
func (s Signal) Valid() bool {
	switch s {
	case SignalBuy, SignalSell, SignalHold:
		return true
	default:
		return false
	}
}

// SignalChange records one observed transition for an asset. It is the
// payload of Telegram alerts, the Kafka event mirror, and the alert history.
type SignalChange struct {
	Symbol string    `json:"symbol"`
	From   Signal    `json:"from"`
	To     Signal    `json:"to"`
	Price  float64   `json:"price"`
	At     time.Time `json:"at"`
}
