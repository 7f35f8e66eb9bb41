package health

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"signal_bot/internal/modules/health/service"
)

func TestMuxEndpoints(t *testing.T) {
	state := service.NewState()
	reg := NewRegistry()
	metrics := service.NewMetrics(reg)
	metrics.ObserveSignal("BTC-USDT", "BUY")

	srv := httptest.NewServer(NewMux(state, reg))
	defer srv.Close()

	get := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	if code, _ := get("/livez"); code != http.StatusOK {
		t.Fatalf("/livez = %d, want 200", code)
	}
	if code, _ := get("/readyz"); code != http.StatusServiceUnavailable {
		t.Fatalf("/readyz before ready = %d, want 503", code)
	}

	state.SetReady(true)
	if code, _ := get("/readyz"); code != http.StatusOK {
		t.Fatalf("/readyz after ready = %d, want 200", code)
	}

	if code, body := get("/healthz"); code != http.StatusOK || !strings.Contains(body, `"ready":true`) {
		t.Fatalf("/healthz = %d %s", code, body)
	}

	if code, body := get("/metrics"); code != http.StatusOK || !strings.Contains(body, "signal_bot_signals_total") {
		t.Fatalf("/metrics = %d, want signal counter in body", code)
	}
}

func TestMetricsCounters(t *testing.T) {
	reg := NewRegistry()
	m := service.NewMetrics(reg)

	m.ObserveSignal("BTC-USDT", "HOLD")
	m.ObserveSignal("BTC-USDT", "HOLD")
	m.ObserveOrder("BTC-USDT", "BUY", "accepted")

	if got := testutil.ToFloat64(m.Signals.WithLabelValues("BTC-USDT", "HOLD")); got != 2 {
		t.Fatalf("signals counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Orders.WithLabelValues("BTC-USDT", "BUY", "accepted")); got != 1 {
		t.Fatalf("orders counter = %v, want 1", got)
	}
}
