package service

import (
	"errors"
	"testing"

	"signal_bot/internal/models"
)

func seriesFromCloses(closes []float64) models.CandleSeries {
	s := make(models.CandleSeries, len(closes))
	for i, c := range closes {
		s[i] = models.Candle{Ts: int64(i+1) * 60_000, Close: c}
	}
	return s
}

func TestCrossoverSellOnDownwardCross(t *testing.T) {
	g, err := NewCrossover(2, 4)
	if err != nil {
		t.Fatalf("NewCrossover: %v", err)
	}
	// fast уходит под slow на последней свече: 11.5/11.0 -> 10.5/11.0
	sig, err := g.Generate(seriesFromCloses([]float64{9, 10, 11, 12, 11, 10}))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sig.Action != models.ActionSell {
		t.Fatalf("expected SELL, got %s", sig.Action)
	}
	if sig.Generator != ModelCrossover {
		t.Fatalf("generator name not set: %q", sig.Generator)
	}
	if sig.Confidence <= 0 || sig.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", sig.Confidence)
	}
}

func TestCrossoverBuyOnUpwardCross(t *testing.T) {
	g, _ := NewCrossover(2, 4)
	sig, err := g.Generate(seriesFromCloses([]float64{12, 11, 10, 9, 10, 13}))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sig.Action != models.ActionBuy {
		t.Fatalf("expected BUY, got %s", sig.Action)
	}
}

func TestCrossoverHoldWithoutCross(t *testing.T) {
	g, _ := NewCrossover(2, 4)

	flat, err := g.Generate(seriesFromCloses([]float64{10, 10, 10, 10, 10}))
	if err != nil {
		t.Fatalf("Generate flat: %v", err)
	}
	if flat.Action != models.ActionHold {
		t.Fatalf("flat series should HOLD, got %s", flat.Action)
	}

	// fast уже над slow и остаётся над: пересечения нет
	trending, err := g.Generate(seriesFromCloses([]float64{10, 11, 12, 13, 14, 15}))
	if err != nil {
		t.Fatalf("Generate trending: %v", err)
	}
	if trending.Action != models.ActionHold {
		t.Fatalf("sustained trend should HOLD, got %s", trending.Action)
	}
}

func TestCrossoverInsufficientHistory(t *testing.T) {
	g, _ := NewCrossover(2, 4)
	// нужно slow+1 = 5 свечей
	_, err := g.Generate(seriesFromCloses([]float64{9, 10, 11, 12}))
	if !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
	_, err = g.Generate(models.CandleSeries{})
	if !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("empty series: expected ErrInsufficientHistory, got %v", err)
	}
}

func TestCrossoverRejectsBadWindows(t *testing.T) {
	for _, w := range [][2]int{{0, 4}, {4, 4}, {5, 4}, {-1, 3}} {
		if _, err := NewCrossover(w[0], w[1]); err == nil {
			t.Fatalf("windows %d/%d accepted", w[0], w[1])
		}
	}
}

func TestCrossoverDoesNotMutateSeries(t *testing.T) {
	g, _ := NewCrossover(2, 4)
	series := seriesFromCloses([]float64{9, 10, 11, 12, 11, 10})
	before := make(models.CandleSeries, len(series))
	copy(before, series)

	if _, err := g.Generate(series); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range series {
		if series[i] != before[i] {
			t.Fatalf("series mutated at %d", i)
		}
	}
}
