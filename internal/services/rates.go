package services

//go:generate mockgen -source=rates.go -destination=mock_rates.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-currency-rates/internal/facades"
	"github.com/sbilibin2017/gw-currency-rates/internal/logger"
	"github.com/sbilibin2017/gw-currency-rates/internal/metrics"
	"github.com/sbilibin2017/gw-currency-rates/internal/models"
)

// QuotesReader fetches raw quotes from the rates provider.
type QuotesReader interface {
	GetQuotes(ctx context.Context) (*models.Quotes, error)
}

// RatesService turns provider quotes into display rates.
type RatesService struct {
	reader  QuotesReader
	metrics *metrics.Metrics
}

// NewRatesService creates a new service instance
func NewRatesService(reader QuotesReader, m *metrics.Metrics) *RatesService {
	if m == nil {
		m = metrics.NewNop()
	}
	return &RatesService{
		reader:  reader,
		metrics: m,
	}
}

// Load fetches quotes once and converts them.
// A response without rates is not an error: the result has Present=false.
func (svc *RatesService) Load(ctx context.Context) (*models.RatesResult, error) {
	start := time.Now()
	quotes, err := svc.reader.GetQuotes(ctx)
	svc.metrics.RatesFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		svc.metrics.RatesFetchTotal.WithLabelValues(failureOutcome(err)).Inc()
		return nil, fmt.Errorf("load rates: %w", err)
	}

	if quotes == nil || !quotes.Present {
		svc.metrics.RatesFetchTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		logger.Log.Warnw("rates provider response has no rates field")
		return &models.RatesResult{Rates: []models.Rate{}}, nil
	}

	rates := ToDisplayRates(quotes.Entries)
	svc.metrics.RatesFetchTotal.WithLabelValues(metrics.OutcomeLoaded).Inc()
	logger.Log.Infow("rates loaded", "count", len(rates))

	return &models.RatesResult{Rates: rates, Present: true}, nil
}

// ToDisplayRates inverts each quote (units of currency per 1 RUB) into
// RUB per 1 unit of currency, keeping the input order.
func ToDisplayRates(quotes []models.Quote) []models.Rate {
	rates := make([]models.Rate, 0, len(quotes))
	for _, q := range quotes {
		rates = append(rates, models.Rate{
			Currency: q.Currency,
			Rate:     1 / q.Value,
		})
	}
	return rates
}

func failureOutcome(err error) string {
	var fetchErr *facades.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind.String()
	}
	return "unknown"
}
