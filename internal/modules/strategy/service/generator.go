package service

import (
	"fmt"
	"sort"
	"strings"

	"signal_bot/internal/models"
)

// Generator выдаёт рекомендацию по готовой серии свечей. Серию не мутирует,
// состояние между вызовами не хранит.
type Generator interface {
	Name() string
	Generate(series models.CandleSeries) (models.Signal, error)
}

// Params — параметры генератора из конфига или флагов CLI.
type Params struct {
	Fast int
	Slow int
	Seed int64 // только для random, 0 => от времени
}

const (
	ModelRandom    = "random"
	ModelCrossover = "crossover"
)

// Закрытый набор моделей. Новая модель = новая строка здесь и больше нигде.
var registry = map[string]func(Params) (Generator, error){
	ModelRandom: func(p Params) (Generator, error) {
		return NewRandom(p.Seed), nil
	},
	ModelCrossover: func(p Params) (Generator, error) {
		return NewCrossover(p.Fast, p.Slow)
	},
}

// New создаёт генератор по имени модели.
func New(model string, p Params) (Generator, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(model))]
	if !ok {
		return nil, fmt.Errorf("unknown model %q (known: %s)", model, strings.Join(Models(), ", "))
	}
	return ctor(p)
}

// Models — отсортированный список известных моделей.
func Models() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AutoLimit — сколько свечей тянуть под генератор: двойное окно
// медленной средней, для моделей без окна — 50.
func AutoLimit(g Generator) int {
	m, ok := g.(interface{ MinHistory() int })
	if !ok {
		return 50
	}
	need := m.MinHistory()
	limit := (need - 1) * 2
	if limit < need {
		limit = need + 9
	}
	return limit
}
