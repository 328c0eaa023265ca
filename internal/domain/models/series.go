package models

import "time"

// PricePoint is a single sampled price. Label carries the HH:MM display
// form of Time so the chart axis needs no client-side formatting.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
	Price float64   `json:"price"`
}

// PriceSeries is one asset's samples for the lookback window, chronological.
// A series is replaced wholesale each cycle; nothing merges across cycles.
type PriceSeries []PricePoint

// Latest returns the most recent point.
func (s PriceSeries) Latest() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Tail returns the last n points (or all of them when fewer exist).
func (s PriceSeries) Tail(n int) PriceSeries {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
