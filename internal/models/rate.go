package models

// Supported currency codes
const (
	RUB = "RUB"
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
)

// Quote is a raw provider value: units of Currency per 1 unit of the source currency.
type Quote struct {
	Currency string
	Value    float64
}

// Quotes is the provider's rates mapping in document order.
// Present is false when the response carried no usable rates field.
type Quotes struct {
	Entries []Quote
	Present bool
}

// Rate is a display rate: how many RUB one unit of Currency costs.
type Rate struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// RatesResult is the outcome of a settled rates load.
type RatesResult struct {
	Rates   []Rate
	Present bool
}
