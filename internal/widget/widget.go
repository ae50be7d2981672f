package widget

//go:generate mockgen -source=widget.go -destination=mock_widget.go -package=widget

import (
	"context"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-currency-rates/internal/logger"
	"github.com/sbilibin2017/gw-currency-rates/internal/metrics"
	"github.com/sbilibin2017/gw-currency-rates/internal/models"
)

// ErrorMessage is shown for every kind of fetch failure.
const ErrorMessage = "Не удалось загрузить данные о курсе валют."

// RatesLoader loads display rates once.
type RatesLoader interface {
	Load(ctx context.Context) (*models.RatesResult, error)
}

// Option configures a Component.
type Option func(*Component)

// WithClock sets the time source used for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(c *Component) {
		c.now = now
	}
}

// WithMetrics sets the collectors for mounts and stale completions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Component) {
		c.metrics = m
	}
}

// Component is a rates widget instance. It fetches at most once,
// on its first Mount, and ignores a completion that arrives after Unmount.
type Component struct {
	loader  RatesLoader
	now     func() time.Time
	metrics *metrics.Metrics

	mu        sync.Mutex
	state     models.WidgetState
	active    bool
	unmounted bool

	mountOnce sync.Once
	settled   chan struct{}
}

// New creates a component in the loading state.
func New(loader RatesLoader, opts ...Option) *Component {
	c := &Component{
		loader: loader,
		now:    time.Now,
		state: models.WidgetState{
			Rates:   []models.Rate{},
			Loading: true,
		},
		settled: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewNop()
	}
	return c
}

// Mount starts the fetch on the first call. Later calls do nothing,
// as does a Mount after Unmount.
//
// The fetch outlives ctx: only its values are passed on.
func (c *Component) Mount(ctx context.Context) {
	c.mountOnce.Do(func() {
		c.mu.Lock()
		if c.unmounted {
			c.mu.Unlock()
			return
		}
		c.active = true
		c.mu.Unlock()

		c.metrics.WidgetsMountedTotal.Inc()
		go c.fetch(context.WithoutCancel(ctx))
	})
}

// Unmount marks the component inactive. A fetch still in flight completes,
// but its result is dropped.
func (c *Component) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.unmounted = true
}

func (c *Component) fetch(ctx context.Context) {
	defer close(c.settled)

	result, err := c.loader.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		c.metrics.StaleCompletionsTotal.Inc()
		logger.Log.Debugw("rates widget unmounted before fetch completed, result dropped")
		return
	}

	switch {
	case err != nil:
		logger.Log.Errorw("rates widget fetch failed", "error", err)
		c.state.Error = ErrorMessage
	case result != nil && result.Present:
		c.state.Rates = result.Rates
		ts := c.now()
		c.state.LastUpdated = &ts
	}
	c.state.Loading = false
}

// State returns a copy of the current state.
func (c *Component) State() models.WidgetState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Rates = append([]models.Rate(nil), c.state.Rates...)
	if s.Rates == nil {
		s.Rates = []models.Rate{}
	}
	if c.state.LastUpdated != nil {
		ts := *c.state.LastUpdated
		s.LastUpdated = &ts
	}
	return s
}

// Settled is closed once the fetch has completed, whether or not
// its result was applied.
func (c *Component) Settled() <-chan struct{} {
	return c.settled
}

// Wait blocks until the fetch settles or ctx is done, and returns
// the state at that point.
func (c *Component) Wait(ctx context.Context) (models.WidgetState, error) {
	select {
	case <-c.settled:
		return c.State(), nil
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}
