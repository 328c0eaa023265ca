package models

// Asset is one registry entry: the provider-specific identifier used for
// market-chart requests and the display ticker shown everywhere else.
// The registry is fixed at process start and never mutated.
type Asset struct {
	ID     string
	Symbol string
}
