package service

import (
	"fmt"
	"strings"
)

// InstID приводит символ к виду OKX: "BTC/USDT:USDT" -> "BTC-USDT-SWAP",
// "BTC/USDT" -> "BTC-USDT". Родные instId не трогаем.
func InstID(symbol string) string {
	s := strings.TrimSpace(symbol)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return strings.ReplaceAll(s[:i], "/", "-") + "-SWAP"
	}
	return strings.ReplaceAll(s, "/", "-")
}

// okxBar: "1h" -> "1H" и т.п., OKX капризен к регистру у часовых баров.
func okxBar(tf string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(tf)) {
	case "1m", "3m", "5m", "15m", "30m":
		return strings.ToLower(strings.TrimSpace(tf)), nil

	case "60m", "1h":
		return "1H", nil
	case "2h":
		return "2H", nil
	case "4h":
		return "4H", nil
	case "6h":
		return "6H", nil
	case "12h":
		return "12H", nil

	case "1d":
		return "1D", nil
	case "1w":
		return "1W", nil
	case "1mo", "1mth":
		return "1M", nil
	}
	return "", fmt.Errorf("unsupported timeframe for OKX bar: %q", tf)
}
