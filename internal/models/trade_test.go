package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewTradeRequestKeepsSideAndQuantity(t *testing.T) {
	req, err := NewTradeRequest("BTC/USDT:USDT", ActionBuy, 0.001)
	if err != nil {
		t.Fatalf("NewTradeRequest returned error: %v", err)
	}
	if req.Symbol != "BTC/USDT:USDT" {
		t.Fatalf("symbol changed: %s", req.Symbol)
	}
	if req.Side != SideBuy {
		t.Fatalf("expected BUY side, got %s", req.Side)
	}
	if req.Quantity != 0.001 {
		t.Fatalf("quantity changed: %v", req.Quantity)
	}
	if len(req.ClientID) != 32 {
		t.Fatalf("client id should be 32 hex chars, got %q", req.ClientID)
	}
}

func TestNewTradeRequestRefusesHold(t *testing.T) {
	_, err := NewTradeRequest("ETH/USDT", ActionHold, 1)
	if !errors.Is(err, ErrNoActionableSignal) {
		t.Fatalf("expected ErrNoActionableSignal, got %v", err)
	}
}

func TestNewTradeRequestRefusesBadQuantity(t *testing.T) {
	for _, qty := range []float64{0, -0.5} {
		if _, err := NewTradeRequest("ETH/USDT", ActionSell, qty); err == nil {
			t.Fatalf("quantity %v accepted", qty)
		}
	}
}

func TestParseAction(t *testing.T) {
	act, err := ParseAction(" sell ")
	if err != nil {
		t.Fatalf("ParseAction: %v", err)
	}
	if act != ActionSell {
		t.Fatalf("expected SELL, got %s", act)
	}
	if _, err := ParseAction("long"); err == nil {
		t.Fatalf("unknown action accepted")
	}
}

func TestBalancesNonZero(t *testing.T) {
	b := Balances{"USDT": 120.5, "BTC": 0, "ETH": 0.2}
	got := b.NonZero()
	if len(got) != 2 || got[0] != "ETH" || got[1] != "USDT" {
		t.Fatalf("unexpected assets: %v", got)
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("okx balance: %w", ErrAuth)
	if Kind(err) != "auth" {
		t.Fatalf("expected auth kind, got %s", Kind(err))
	}
	if Kind(errors.New("plain")) != "error" {
		t.Fatalf("plain error should map to generic kind")
	}
}
