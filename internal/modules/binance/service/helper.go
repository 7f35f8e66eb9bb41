package service

import (
	"fmt"
	"strings"
)

// Pair приводит символ к виду Binance: "BTC/USDT:USDT" -> "BTCUSDT".
func Pair(symbol string) string {
	s := strings.TrimSpace(symbol)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	s = strings.NewReplacer("/", "", "-", "", "_", "").Replace(s)
	return strings.ToUpper(s)
}

// binInterval проверяет таймфрейм. Месяц у Binance — "1M", минуты
// строчные, поэтому месяц разбираем до ToLower.
func binInterval(tf string) (string, error) {
	t := strings.TrimSpace(tf)
	if t == "1M" || strings.EqualFold(t, "1mo") || strings.EqualFold(t, "1mth") {
		return "1M", nil
	}
	switch strings.ToLower(t) {
	case "1m", "3m", "5m", "15m", "30m",
		"1h", "2h", "4h", "6h", "8h", "12h",
		"1d", "3d", "1w":
		return strings.ToLower(t), nil
	case "60m":
		return "1h", nil
	}
	return "", fmt.Errorf("unsupported timeframe for Binance: %q", tf)
}
