package usecase

import (
	"fmt"

	"CoinWatch/internal/domain/models"
)

const (
	// avgWindow is the number of trailing samples averaged for the signal.
	avgWindow = 20
	// sellBand / buyBand bracket the 1% neutral zone around the average.
	sellBand = 1.01
	buyBand  = 0.99
)

// Evaluate derives the trading signal for one price series: the mean of the
// last avgWindow samples against the latest price, with a 1% band. Strict
// inequalities on both sides; anything inside the band holds. Pure function
// of the input; the series is never modified.
//
// Series shorter than the window average over what exists (divisor is the
// actual sample count, not the window size).
func Evaluate(series models.PriceSeries) (float64, models.Signal, error) {
	if len(series) == 0 {
		return 0, "", fmt.Errorf("evaluate: empty series")
	}

	window := series.Tail(avgWindow)
	var sum float64
	for _, p := range window {
		sum += p.Price
	}
	avg := sum / float64(len(window))
	latest := series[len(series)-1].Price

	switch {
	case latest > avg*sellBand:
		return latest, models.SignalSell, nil
	case latest < avg*buyBand:
		return latest, models.SignalBuy, nil
	default:
		return latest, models.SignalHold, nil
	}
}
