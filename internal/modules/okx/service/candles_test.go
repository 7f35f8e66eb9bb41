package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signal_bot/internal/models"
)

func newTestClient(base string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 5 * time.Second},
		base:      base,
		apiKey:    "k",
		apiSecret: "s",
		passph:    "p",
		meta:      make(map[string]Instrument),
	}
}

func TestFetchCandlesReversesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("instId"); got != "BTC-USDT-SWAP" {
			t.Errorf("instId = %q, want BTC-USDT-SWAP", got)
		}
		if got := q.Get("bar"); got != "1H" {
			t.Errorf("bar = %q, want 1H", got)
		}
		// OKX отдаёт свежие строки первыми
		w.Write([]byte(`{"code":"0","msg":"","data":[
			["3000","11","12","10","11.5","5","0"],
			["2000","10","11","9","10.5","4","0"],
			["1000","9","10","8","9.5","3","0"]
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	series, err := c.FetchCandles(context.Background(), "BTC/USDT:USDT", "1h", 3)
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("len = %d, want 3", len(series))
	}
	for i, wantTs := range []int64{1000, 2000, 3000} {
		if series[i].Ts != wantTs {
			t.Fatalf("series[%d].Ts = %d, want %d", i, series[i].Ts, wantTs)
		}
	}
	if series[0].Open != 9 || series[0].Close != 9.5 || series[0].Volume != 3 {
		t.Fatalf("series[0] parsed wrong: %+v", series[0])
	}
}

func TestFetchCandlesBadTimeframe(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")
	_, err := c.FetchCandles(context.Background(), "BTC-USDT", "7h", 10)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestFetchCandlesErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `oops`, models.ErrTransientFetch},
		{"rate limited", http.StatusTooManyRequests, `slow down`, models.ErrTransientFetch},
		{"unknown symbol", http.StatusOK, `{"code":"51001","msg":"Instrument ID does not exist","data":[]}`, models.ErrDataUnavailable},
		{"empty data", http.StatusOK, `{"code":"0","msg":"","data":[]}`, models.ErrDataUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)
			_, err := c.FetchCandles(context.Background(), "NOPE-USDT", "1h", 10)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFetchCandlesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // соединение сразу падает

	c := newTestClient(srv.URL)
	_, err := c.FetchCandles(context.Background(), "BTC-USDT", "1h", 10)
	if !errors.Is(err, models.ErrTransientFetch) {
		t.Fatalf("err = %v, want ErrTransientFetch", err)
	}
}
