package service

import (
	"context"
	"fmt"
	"strconv"

	"signal_bot/internal/models"
)

// FetchCandles тянет клайны. Binance отдаёт их старые-впереди,
// разворот не нужен.
func (c *Client) FetchCandles(ctx context.Context, symbol, timeframe string, limit int) (models.CandleSeries, error) {
	if limit <= 0 {
		limit = 100
	}
	interval, err := binInterval(timeframe)
	if err != nil {
		return nil, fmt.Errorf("binance candles: %v: %w", err, models.ErrDataUnavailable)
	}

	pair := Pair(symbol)
	klines, err := c.api.NewKlinesService().
		Symbol(pair).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance candles %s: %v: %w", pair, err, fetchKind(err))
	}
	if len(klines) == 0 {
		return nil, fmt.Errorf("binance candles %s %s: no data: %w", pair, interval, models.ErrDataUnavailable)
	}

	out := make(models.CandleSeries, 0, len(klines))
	for _, k := range klines {
		closePx, err := strconv.ParseFloat(k.Close, 64)
		if err != nil || closePx <= 0 {
			continue
		}
		open, _ := strconv.ParseFloat(k.Open, 64)
		high, _ := strconv.ParseFloat(k.High, 64)
		low, _ := strconv.ParseFloat(k.Low, 64)
		vol, _ := strconv.ParseFloat(k.Volume, 64)
		out = append(out, models.Candle{
			Ts:     k.OpenTime,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePx,
			Volume: vol,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("binance candles %s %s: no usable rows: %w", pair, interval, models.ErrDataUnavailable)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("binance candles %s: %v: %w", pair, err, models.ErrDataUnavailable)
	}
	return out, nil
}
