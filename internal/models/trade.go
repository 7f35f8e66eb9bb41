package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Side — сторона рыночного ордера.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TradeRequest — заявка на рыночный ордер. Собирается только из
// действенного сигнала, HOLD сюда не попадает.
type TradeRequest struct {
	Symbol   string
	Side     Side
	Quantity float64 // в базовой валюте
	ClientID string  // клиентский id ордера
}

// NewTradeRequest валидирует вход и назначает клиентский id.
func NewTradeRequest(symbol string, action Action, qty float64) (TradeRequest, error) {
	if !action.Actionable() {
		return TradeRequest{}, fmt.Errorf("trade request %s %s: %w", symbol, action, ErrNoActionableSignal)
	}
	if strings.TrimSpace(symbol) == "" {
		return TradeRequest{}, fmt.Errorf("trade request: empty symbol")
	}
	if qty <= 0 {
		return TradeRequest{}, fmt.Errorf("trade request %s: quantity must be > 0, got %v", symbol, qty)
	}
	return TradeRequest{
		Symbol:   symbol,
		Side:     Side(action),
		Quantity: qty,
		ClientID: NewClientID(),
	}, nil
}

// NewClientID — 32 hex-символа: OKX не принимает дефисы в clOrdId.
func NewClientID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// TradeResult — ответ биржи на рыночный ордер.
type TradeResult struct {
	Accepted bool
	OrderID  string
}

// Balances — доступные средства по активам.
type Balances map[string]float64

// NonZero — отсортированные активы с положительным остатком.
func (b Balances) NonZero() []string {
	out := make([]string, 0, len(b))
	for asset, amount := range b {
		if amount > 0 {
			out = append(out, asset)
		}
	}
	sort.Strings(out)
	return out
}
