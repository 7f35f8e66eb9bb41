package service

import (
	"context"
	"time"

	"signal_bot/internal/models"
)

// Entry — строка журнала: сигнал либо результат ордера.
type Entry struct {
	At         time.Time `json:"at"`
	Kind       string    `json:"kind"` // signal | order
	Exchange   string    `json:"exchange"`
	Symbol     string    `json:"symbol"`
	Timeframe  string    `json:"timeframe,omitempty"`
	Generator  string    `json:"generator,omitempty"`
	Action     string    `json:"action,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	Qty        float64   `json:"qty,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	Error      string    `json:"error,omitempty"` // класс ошибки, если шаг упал
}

// Journal пишет решения и ордера. Реализация выбирается конфигом:
// postgres при db_dsn, иначе файл, иначе заглушка.
type Journal interface {
	Append(ctx context.Context, e Entry) error
}

func SignalEntry(exchange, symbol, timeframe string, sig models.Signal, genErr error) Entry {
	e := Entry{
		At:        time.Now().UTC(),
		Kind:      "signal",
		Exchange:  exchange,
		Symbol:    symbol,
		Timeframe: timeframe,
	}
	if genErr != nil {
		e.Error = models.Kind(genErr)
		return e
	}
	e.Generator = sig.Generator
	e.Action = string(sig.Action)
	e.Confidence = sig.Confidence
	return e
}

func OrderEntry(exchange, symbol, side string, qty float64, res models.TradeResult, execErr error) Entry {
	e := Entry{
		At:       time.Now().UTC(),
		Kind:     "order",
		Exchange: exchange,
		Symbol:   symbol,
		Action:   side,
		Qty:      qty,
	}
	if execErr != nil {
		e.Error = models.Kind(execErr)
		return e
	}
	e.OrderID = res.OrderID
	return e
}

// Noop — журнал выключен.
type Noop struct{}

func (Noop) Append(context.Context, Entry) error { return nil }
