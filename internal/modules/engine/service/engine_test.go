package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"signal_bot/internal/models"
	strategy "signal_bot/internal/modules/strategy/service"
)

type stubMarketData struct {
	series models.CandleSeries
	err    error
	calls  int
}

func (s *stubMarketData) FetchCandles(_ context.Context, _, _ string, _ int) (models.CandleSeries, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

type recordingExecution struct {
	requests []models.TradeRequest
	result   models.TradeResult
	err      error
}

func (r *recordingExecution) Balance(_ context.Context) (models.Balances, error) {
	return models.Balances{"USDT": 1000}, nil
}

func (r *recordingExecution) SubmitMarketOrder(_ context.Context, req models.TradeRequest) (models.TradeResult, error) {
	r.requests = append(r.requests, req)
	if r.err != nil {
		return models.TradeResult{}, r.err
	}
	return r.result, nil
}

func closesSeries(closes ...float64) models.CandleSeries {
	s := make(models.CandleSeries, len(closes))
	for i, c := range closes {
		s[i] = models.Candle{Ts: int64(i+1) * 60_000, Close: c}
	}
	return s
}

func TestDecideRunsGeneratorOverFetchedSeries(t *testing.T) {
	md := &stubMarketData{series: closesSeries(9, 10, 11, 12, 11, 10)}
	eng := NewEngine(md, &recordingExecution{})
	gen, _ := strategy.NewCrossover(2, 4)

	sig, err := eng.Decide(context.Background(), "BTC-USDT", "1h", 6, gen)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if sig.Action != models.ActionSell {
		t.Fatalf("expected SELL on downward cross, got %s", sig.Action)
	}
	if md.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", md.calls)
	}
}

func TestDecideKeepsDataErrorKind(t *testing.T) {
	md := &stubMarketData{err: fmt.Errorf("okx candles: %w", models.ErrDataUnavailable)}
	eng := NewEngine(md, &recordingExecution{})
	gen := strategy.NewRandom(1)

	_, err := eng.Decide(context.Background(), "NOPE-USDT", "1h", 50, gen)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable to pass through, got %v", err)
	}
}

func TestDecideKeepsInsufficientHistoryKind(t *testing.T) {
	md := &stubMarketData{series: closesSeries(9, 10)}
	eng := NewEngine(md, &recordingExecution{})
	gen, _ := strategy.NewCrossover(2, 4)

	_, err := eng.Decide(context.Background(), "BTC-USDT", "1h", 2, gen)
	if !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestExecuteHoldNeverReachesExchange(t *testing.T) {
	exec := &recordingExecution{}
	eng := NewEngine(&stubMarketData{}, exec)

	_, err := eng.Execute(context.Background(), models.Signal{Action: models.ActionHold}, "BTC-USDT", 0.001)
	if !errors.Is(err, models.ErrNoActionableSignal) {
		t.Fatalf("expected ErrNoActionableSignal, got %v", err)
	}
	if len(exec.requests) != 0 {
		t.Fatalf("HOLD produced %d orders", len(exec.requests))
	}
}

func TestExecuteForwardsSingleRequest(t *testing.T) {
	exec := &recordingExecution{result: models.TradeResult{Accepted: true, OrderID: "1"}}
	eng := NewEngine(&stubMarketData{}, exec)

	res, err := eng.Execute(context.Background(), models.Signal{Action: models.ActionBuy}, "BTC/USDT:USDT", 0.001)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Accepted || res.OrderID != "1" {
		t.Fatalf("result not passed through: %+v", res)
	}
	if len(exec.requests) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(exec.requests))
	}
	req := exec.requests[0]
	if req.Symbol != "BTC/USDT:USDT" || req.Side != models.SideBuy || req.Quantity != 0.001 {
		t.Fatalf("request distorted: %+v", req)
	}
	if req.ClientID == "" {
		t.Fatalf("client id not assigned")
	}
}

func TestExecuteRejectsBadQuantityBeforeExchange(t *testing.T) {
	exec := &recordingExecution{}
	eng := NewEngine(&stubMarketData{}, exec)

	if _, err := eng.Execute(context.Background(), models.Signal{Action: models.ActionSell}, "BTC-USDT", 0); err == nil {
		t.Fatalf("zero quantity accepted")
	}
	if len(exec.requests) != 0 {
		t.Fatalf("invalid quantity reached exchange")
	}
}

func TestExecuteKeepsExecutionErrorKind(t *testing.T) {
	exec := &recordingExecution{err: fmt.Errorf("okx order: %w", models.ErrInsufficientFunds)}
	eng := NewEngine(&stubMarketData{}, exec)

	_, err := eng.Execute(context.Background(), models.Signal{Action: models.ActionBuy}, "BTC-USDT", 1)
	if !errors.Is(err, models.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds to pass through, got %v", err)
	}
}
