package service

import (
	"fmt"
	"math"
	"time"

	"signal_bot/internal/models"
)

// Crossover — пересечение быстрой и медленной SMA по ценам закрытия.
// BUY на пересечении вверх, SELL на пересечении вниз, иначе HOLD.
type Crossover struct {
	fast int
	slow int
}

func NewCrossover(fast, slow int) (*Crossover, error) {
	if fast <= 0 || fast >= slow {
		return nil, fmt.Errorf("crossover: need 0 < fast < slow, got %d/%d", fast, slow)
	}
	return &Crossover{fast: fast, slow: slow}, nil
}

func (g *Crossover) Name() string { return ModelCrossover }

// MinHistory — свечей для двух соседних точек медленной SMA.
func (g *Crossover) MinHistory() int { return g.slow + 1 }

func (g *Crossover) Generate(series models.CandleSeries) (models.Signal, error) {
	if len(series) < g.MinHistory() {
		return models.Signal{}, fmt.Errorf("crossover %d/%d: have %d candles, need %d: %w",
			g.fast, g.slow, len(series), g.MinHistory(), models.ErrInsufficientHistory)
	}

	closes := series.Closes()
	fastPrev, fastCur := smaPair(closes, g.fast)
	slowPrev, slowCur := smaPair(closes, g.slow)

	action := models.ActionHold
	switch {
	case fastCur > slowCur && fastPrev <= slowPrev:
		action = models.ActionBuy
	case fastCur < slowCur && fastPrev >= slowPrev:
		action = models.ActionSell
	}

	conf := 0.0
	if action != models.ActionHold && slowCur != 0 {
		// нормированный зазор между средними в точке пересечения
		conf = math.Abs(fastCur-slowCur) / math.Abs(slowCur)
		if conf > 1 {
			conf = 1
		}
	}

	return models.Signal{
		Action:     action,
		Confidence: conf,
		Generator:  ModelCrossover,
		At:         time.Now().UTC(),
	}, nil
}

// smaPair — SMA окна n на последней и на предпоследней свече.
func smaPair(closes []float64, n int) (prev, cur float64) {
	return sma(closes[:len(closes)-1], n), sma(closes, n)
}

func sma(closes []float64, n int) float64 {
	sum := 0.0
	for _, c := range closes[len(closes)-n:] {
		sum += c
	}
	return sum / float64(n)
}
