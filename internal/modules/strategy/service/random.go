package service

import (
	"fmt"
	"math/rand"
	"time"

	"signal_bot/internal/models"
)

// Random — равновероятный BUY/SELL/HOLD. Нужен для обкатки пайплайна,
// торговать им не стоит.
type Random struct {
	rnd *rand.Rand
}

// NewRandom: генератор со своим rand.Source, глобальный сид не трогаем.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

func (g *Random) Name() string { return ModelRandom }

func (g *Random) Generate(series models.CandleSeries) (models.Signal, error) {
	if len(series) == 0 {
		return models.Signal{}, fmt.Errorf("random: empty series: %w", models.ErrInsufficientHistory)
	}
	actions := [...]models.Action{models.ActionBuy, models.ActionSell, models.ActionHold}
	return models.Signal{
		Action:     actions[g.rnd.Intn(len(actions))],
		Confidence: 0, // выбор случайный, уверенность не про него
		Generator:  ModelRandom,
		At:         time.Now().UTC(),
	}, nil
}
