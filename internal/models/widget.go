package models

import "time"

// WidgetStatus is the rendered phase of the rates widget.
type WidgetStatus string

const (
	WidgetLoading WidgetStatus = "loading"
	WidgetError   WidgetStatus = "error"
	WidgetLoaded  WidgetStatus = "loaded"
)

// WidgetState is the local state of one mounted widget.
type WidgetState struct {
	Rates       []Rate
	Loading     bool
	Error       string
	LastUpdated *time.Time
}

// Status maps the state onto exactly one of loading, error or loaded.
func (s WidgetState) Status() WidgetStatus {
	switch {
	case s.Loading:
		return WidgetLoading
	case s.Error != "":
		return WidgetError
	default:
		return WidgetLoaded
	}
}

// RateView is a display rate with its ru-RU formatted amount
// swagger:model RateView
type RateView struct {
	// ISO 4217 code
	// example: USD
	Currency string `json:"currency"`

	// RUB per one unit of currency
	// example: 100
	Rate float64 `json:"rate"`

	// Amount formatted for ru-RU
	// example: 100,00 ₽
	Formatted string `json:"formatted"`
}

// WidgetResponse represents the widget state returned by the JSON endpoint
// swagger:model WidgetResponse
type WidgetResponse struct {
	// One of loading, error, loaded
	// example: loaded
	State WidgetStatus `json:"state"`

	Rates []RateView `json:"rates"`

	// example: Не удалось загрузить данные о курсе валют.
	Error string `json:"error,omitempty"`

	LastUpdated *time.Time `json:"lastUpdated,omitempty"`

	// example: четверг, 15 октября 2026 г. в 14:03:05 GMT+3
	LastUpdatedFormatted string `json:"lastUpdatedFormatted,omitempty"`
}
