package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/products", "200", 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/products", "200", 30*time.Millisecond)
	m.ObserveRequest("", "", "", time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/products", "200")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("unknown", "unknown", "unknown")); got != 1 {
		t.Fatalf("expected unlabeled request to normalize, got %v", got)
	}
}

func TestHTTPMetricsInFlight(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.IncInFlight()
	m.IncInFlight()
	m.DecInFlight()

	if got := testutil.ToFloat64(m.inFlight); got != 1 {
		t.Fatalf("expected 1 in-flight request, got %v", got)
	}
}

func TestNotificationMetricsDispatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewNotificationMetrics(reg)

	m.IncDispatched("order_placed", "ok")
	m.IncDispatched("order_placed", "error")
	m.IncDispatched("order_placed", "ok")

	if got := testutil.ToFloat64(m.dispatched.WithLabelValues("order_placed", "ok")); got != 2 {
		t.Fatalf("expected 2 ok dispatches, got %v", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var h *HTTPMetrics
	var n *NotificationMetrics

	h.ObserveRequest("GET", "/", "200", time.Second)
	h.IncInFlight()
	h.DecInFlight()
	n.IncDispatched("order_placed", "ok")
}
