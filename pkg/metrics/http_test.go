package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)

	metrics.ObserveRequest("GET", "/api/v1/catalog/home", 200, 250*time.Millisecond)
	metrics.ObserveRequest("GET", "/api/v1/catalog/home", 503, 10*time.Millisecond)

	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/api/v1/catalog/home", "2xx")); got != 1 {
		t.Fatalf("expected one 2xx request, got %f", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/api/v1/catalog/home", "5xx")); got != 1 {
		t.Fatalf("expected one 5xx request, got %f", got)
	}

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	if err != nil {
		t.Fatalf("gather histogram: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected histogram samples to be recorded")
	}
}

func TestObserveRequestOnNilMetricsIsSafe(t *testing.T) {
	var metrics *HTTPMetrics
	metrics.ObserveRequest("GET", "", 200, time.Millisecond)

	unregistered := NewHTTPMetrics(nil)
	unregistered.ObserveRequest("GET", "/x", 200, time.Millisecond)
}

func TestStatusLabelBuckets(t *testing.T) {
	cases := map[int]string{200: "2xx", 301: "3xx", 404: "4xx", 500: "5xx"}
	for status, want := range cases {
		if got := statusLabel(status); got != want {
			t.Fatalf("status %d expected %q got %q", status, want, got)
		}
	}
}
