package widget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-currency-rates/internal/metrics"
	"github.com/sbilibin2017/gw-currency-rates/internal/models"
)

var fixedNow = time.Date(2026, time.October, 15, 14, 3, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func waitSettled(t *testing.T, c *Component) models.WidgetState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := c.Wait(ctx)
	require.NoError(t, err)
	return s
}

func TestComponent_Settle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		result     *models.RatesResult
		err        error
		wantStatus models.WidgetStatus
		wantRates  []models.Rate
		wantError  string
		wantTime   bool
	}{
		{
			name: "loaded",
			result: &models.RatesResult{Present: true, Rates: []models.Rate{
				{Currency: "USD", Rate: 100},
				{Currency: "EUR", Rate: 111.11},
			}},
			wantStatus: models.WidgetLoaded,
			wantRates: []models.Rate{
				{Currency: "USD", Rate: 100},
				{Currency: "EUR", Rate: 111.11},
			},
			wantTime: true,
		},
		{
			name:       "rates_field_missing",
			result:     &models.RatesResult{Rates: []models.Rate{}},
			wantStatus: models.WidgetLoaded,
			wantRates:  []models.Rate{},
		},
		{
			name:       "fetch_failed",
			err:        errors.New("connection refused"),
			wantStatus: models.WidgetError,
			wantRates:  []models.Rate{},
			wantError:  ErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewMockRatesLoader(ctrl)
			loader.EXPECT().Load(gomock.Any()).Return(tt.result, tt.err).Times(1)

			c := New(loader, WithClock(fixedClock))
			c.Mount(context.Background())

			s := waitSettled(t, c)

			assert.Equal(t, tt.wantStatus, s.Status())
			assert.False(t, s.Loading)
			assert.Equal(t, tt.wantRates, s.Rates)
			assert.Equal(t, tt.wantError, s.Error)
			if tt.wantTime {
				require.NotNil(t, s.LastUpdated)
				assert.Equal(t, fixedNow, *s.LastUpdated)
			} else {
				assert.Nil(t, s.LastUpdated)
			}
		})
	}
}

func TestComponent_LoadingUntilSettled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	loader := NewMockRatesLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(ctx context.Context) (*models.RatesResult, error) {
		<-release
		return &models.RatesResult{Present: true, Rates: []models.Rate{{Currency: "USD", Rate: 100}}}, nil
	})

	c := New(loader)
	assert.Equal(t, models.WidgetLoading, c.State().Status())

	c.Mount(context.Background())
	s := c.State()
	assert.Equal(t, models.WidgetLoading, s.Status())
	assert.Empty(t, s.Rates)
	assert.Empty(t, s.Error)
	assert.Nil(t, s.LastUpdated)

	select {
	case <-c.Settled():
		t.Fatal("settled before the fetch completed")
	default:
	}

	close(release)
	s = waitSettled(t, c)
	assert.Equal(t, models.WidgetLoaded, s.Status())

	// terminal state does not change afterwards
	c.Mount(context.Background())
	assert.Equal(t, s, c.State())
}

func TestComponent_MountIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := NewMockRatesLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(&models.RatesResult{Rates: []models.Rate{}}, nil).Times(1)

	m := metrics.NewNop()
	c := New(loader, WithMetrics(m))
	for i := 0; i < 3; i++ {
		c.Mount(context.Background())
	}
	waitSettled(t, c)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.WidgetsMountedTotal))
}

func TestComponent_UnmountDropsLateCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name   string
		result *models.RatesResult
		err    error
	}{
		{
			name:   "late_success",
			result: &models.RatesResult{Present: true, Rates: []models.Rate{{Currency: "USD", Rate: 100}}},
		},
		{
			name: "late_failure",
			err:  errors.New("timeout"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := make(chan struct{})
			loader := NewMockRatesLoader(ctrl)
			loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(ctx context.Context) (*models.RatesResult, error) {
				<-release
				return tt.result, tt.err
			})

			m := metrics.NewNop()
			c := New(loader, WithMetrics(m))
			c.Mount(context.Background())
			before := c.State()

			c.Unmount()
			close(release)
			<-c.Settled()

			assert.Equal(t, before, c.State())
			assert.Equal(t, models.WidgetLoading, c.State().Status())
			assert.Equal(t, float64(1), testutil.ToFloat64(m.StaleCompletionsTotal))
		})
	}
}

func TestComponent_MountAfterUnmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := NewMockRatesLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Times(0)

	c := New(loader)
	c.Unmount()
	c.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, models.WidgetLoading, s.Status())
}

func TestComponent_FetchOutlivesMountContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	loader := NewMockRatesLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(ctx context.Context) (*models.RatesResult, error) {
		<-release
		return &models.RatesResult{Present: true, Rates: []models.Rate{}}, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	c := New(loader)
	c.Mount(ctx)
	cancel()
	close(release)

	s := waitSettled(t, c)
	assert.Equal(t, models.WidgetLoaded, s.Status())
}

func TestComponent_WaitHonoursContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	loader := NewMockRatesLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(ctx context.Context) (*models.RatesResult, error) {
		<-release
		return &models.RatesResult{Rates: []models.Rate{}}, nil
	})

	c := New(loader)
	c.Mount(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, s.Loading)

	close(release)
	waitSettled(t, c)
}

func TestComponent_StateIsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := NewMockRatesLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(&models.RatesResult{
		Present: true,
		Rates:   []models.Rate{{Currency: "USD", Rate: 100}},
	}, nil)

	c := New(loader, WithClock(fixedClock))
	c.Mount(context.Background())
	s := waitSettled(t, c)

	s.Rates[0].Rate = 1
	*s.LastUpdated = time.Time{}

	fresh := c.State()
	assert.Equal(t, float64(100), fresh.Rates[0].Rate)
	assert.Equal(t, fixedNow, *fresh.LastUpdated)
}
