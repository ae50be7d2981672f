package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-currency-rates/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewNop()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/api/v1/rates", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	tests := []struct {
		path   string
		route  string
		status string
	}{
		{path: "/api/v1/rates", route: "/api/v1/rates", status: "502"},
		{path: "/", route: "/", status: "200"},
		{path: "/missing", route: "unmatched", status: "404"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, float64(1),
				testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.route, tt.status)))
		})
	}

	assert.Equal(t, 3, testutil.CollectAndCount(m.HTTPRequestDuration))
}
