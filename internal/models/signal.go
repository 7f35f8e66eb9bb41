package models

import (
	"fmt"
	"strings"
	"time"
)

// Action — итог генератора сигналов.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Actionable: HOLD не ведёт к ордеру.
func (a Action) Actionable() bool {
	return a == ActionBuy || a == ActionSell
}

// ParseAction разбирает пользовательский ввод ("buy", "SELL", ...).
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToUpper(strings.TrimSpace(s))) {
	case ActionBuy:
		return ActionBuy, nil
	case ActionSell:
		return ActionSell, nil
	case ActionHold:
		return ActionHold, nil
	}
	return "", fmt.Errorf("unknown signal %q (want BUY, SELL or HOLD)", s)
}

// Signal — рекомендация генератора. Без количества и без цены входа,
// это забота того, кто исполняет.
type Signal struct {
	Action     Action
	Confidence float64 // 0..1
	Generator  string  // имя генератора из реестра
	At         time.Time
}
