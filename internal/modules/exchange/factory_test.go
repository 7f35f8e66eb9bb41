package exchange

import (
	"testing"

	"signal_bot/internal/modules/config"
)

func TestNewSelectsVenue(t *testing.T) {
	for _, id := range Venues() {
		cfg := &config.Config{}
		cfg.Exchange.ID = id
		p, err := New(cfg)
		if err != nil {
			t.Fatalf("New(%s): %v", id, err)
		}
		if p.MarketData == nil || p.Execution == nil {
			t.Fatalf("New(%s): nil ports", id)
		}
	}
}

func TestNewRejectsUnknownVenue(t *testing.T) {
	cfg := &config.Config{}
	cfg.Exchange.ID = "kraken"
	if _, err := New(cfg); err == nil {
		t.Fatal("unknown venue should fail")
	}
}
