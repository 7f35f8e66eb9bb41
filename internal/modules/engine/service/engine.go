package service

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
	strategy "signal_bot/internal/modules/strategy/service"
)

// MarketData отдаёт закрытые свечи, старые впереди.
type MarketData interface {
	FetchCandles(ctx context.Context, symbol, timeframe string, limit int) (models.CandleSeries, error)
}

// Execution — баланс и рыночные ордера одной площадки.
type Execution interface {
	Balance(ctx context.Context) (models.Balances, error)
	SubmitMarketOrder(ctx context.Context, req models.TradeRequest) (models.TradeResult, error)
}

// Engine связывает данные, генератор и исполнение. Размер позиции сюда
// не зашит: количество приходит от вызывающего.
type Engine struct {
	md   MarketData
	exec Execution
}

func NewEngine(md MarketData, exec Execution) *Engine {
	return &Engine{md: md, exec: exec}
}

// Decide тянет свечи и прогоняет генератор. Ошибки данных и истории
// отдаёт как есть, без ретраев и без кеша.
func (e *Engine) Decide(ctx context.Context, symbol, timeframe string, limit int, gen strategy.Generator) (models.Signal, error) {
	series, err := e.md.FetchCandles(ctx, symbol, timeframe, limit)
	if err != nil {
		return models.Signal{}, fmt.Errorf("decide %s: %w", symbol, err)
	}
	sig, err := gen.Generate(series)
	if err != nil {
		return models.Signal{}, fmt.Errorf("decide %s: %w", symbol, err)
	}
	return sig, nil
}

// Execute превращает действенный сигнал в рыночный ордер.
// HOLD до биржи не доходит.
func (e *Engine) Execute(ctx context.Context, sig models.Signal, symbol string, qty float64) (models.TradeResult, error) {
	if !sig.Action.Actionable() {
		return models.TradeResult{}, fmt.Errorf("execute %s: signal %s: %w", symbol, sig.Action, models.ErrNoActionableSignal)
	}
	req, err := models.NewTradeRequest(symbol, sig.Action, qty)
	if err != nil {
		return models.TradeResult{}, err
	}
	return e.exec.SubmitMarketOrder(ctx, req)
}
