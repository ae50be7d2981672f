package handlers

//go:generate mockgen -source=rates.go -destination=mock_rates.go -package=handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-currency-rates/internal/logger"
	"github.com/sbilibin2017/gw-currency-rates/internal/models"
	"github.com/sbilibin2017/gw-currency-rates/internal/views"
	"github.com/sbilibin2017/gw-currency-rates/internal/widget"
)

// RatesLoader defines the interface that the rates service must implement.
type RatesLoader interface {
	Load(ctx context.Context) (*models.RatesResult, error)
}

// NewGetRatesWidgetHandler returns an HTTP handler rendering the rates widget as HTML.
// @Summary Rates widget
// @Description Mounts the widget, waits for the single provider request and returns the HTML fragment
// @Tags rates
// @Produce html
// @Success 200 {string} string "Widget fragment in the loaded or error state"
// @Router / [get]
func NewGetRatesWidgetHandler(loader RatesLoader, renderer *views.Renderer, opts ...widget.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, ok := mountAndWait(r.Context(), loader, opts)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := renderer.HTML(&buf, state); err != nil {
			logger.Log.Errorw("failed to render rates widget", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// NewGetRatesHandler returns an HTTP handler for the widget state as JSON.
// @Summary Get currency rates
// @Description Fetches RUB rates for USD, EUR and GBP once and returns the settled widget state
// @Tags rates
// @Produce json
// @Success 200 {object} models.WidgetResponse "Loaded widget state"
// @Failure 502 {object} models.WidgetResponse "Rates provider request failed"
// @Router /api/v1/rates [get]
func NewGetRatesHandler(loader RatesLoader, renderer *views.Renderer, opts ...widget.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, ok := mountAndWait(r.Context(), loader, opts)
		if !ok {
			return
		}

		resp := renderer.Response(state)

		status := http.StatusOK
		if resp.State == models.WidgetError {
			status = http.StatusBadGateway
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// mountAndWait runs one widget for the lifetime of a request.
// It reports false when the client left before the widget settled.
func mountAndWait(ctx context.Context, loader RatesLoader, opts []widget.Option) (models.WidgetState, bool) {
	c := widget.New(loader, opts...)
	defer c.Unmount()

	c.Mount(ctx)
	state, err := c.Wait(ctx)
	if err != nil {
		logger.Log.Infow("client went away before rates settled", "error", err)
		return state, false
	}
	return state, true
}
