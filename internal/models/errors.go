package models

import "errors"

// Классы ошибок ядра. Адаптеры бирж и генераторы заворачивают свои ошибки
// в эти сентинелы через %w, выше по стеку различаем errors.Is.
var (
	// рыночные данные
	ErrDataUnavailable     = errors.New("data unavailable")
	ErrTransientFetch      = errors.New("transient fetch error")
	ErrInsufficientHistory = errors.New("insufficient history")

	// решение
	ErrNoActionableSignal = errors.New("no actionable signal")

	// исполнение
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrRejectedByExchange = errors.New("rejected by exchange")
	ErrTransientExecution = errors.New("transient execution error")
	ErrAuth               = errors.New("authentication failed")
)

// Kind — короткое имя класса ошибки для CLI, журнала и метрик.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, ErrTransientFetch):
		return "transient_fetch"
	case errors.Is(err, ErrInsufficientHistory):
		return "insufficient_history"
	case errors.Is(err, ErrNoActionableSignal):
		return "no_actionable_signal"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrRejectedByExchange):
		return "rejected_by_exchange"
	case errors.Is(err, ErrTransientExecution):
		return "transient_execution"
	case errors.Is(err, ErrAuth):
		return "auth"
	}
	return "error"
}
