package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"signal_bot/internal/models"
)

// FetchCandles тянет свечи и отдаёт их старые-впереди.
// Ряды OKX: [ts, o, h, l, c, vol, ...], newest-first — разворачиваем.
func (c *Client) FetchCandles(ctx context.Context, symbol, timeframe string, limit int) (models.CandleSeries, error) {
	if limit <= 0 {
		limit = 100
	}
	bar, err := okxBar(timeframe)
	if err != nil {
		return nil, fmt.Errorf("okx candles: %v: %w", err, models.ErrDataUnavailable)
	}

	instID := InstID(symbol)
	path := fmt.Sprintf("/api/v5/market/candles?instId=%s&bar=%s&limit=%d",
		url.QueryEscape(instID), url.QueryEscape(bar), limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("okx candles %s: %v: %w", instID, err, models.ErrTransientFetch)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		kind := models.ErrDataUnavailable
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = models.ErrTransientFetch
		}
		return nil, fmt.Errorf("okx candles %s: http %d: %s: %w", instID, resp.StatusCode, string(b), kind)
	}

	var r candlesResponse
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("okx candles %s: decode: %v: %w", instID, err, models.ErrTransientFetch)
	}
	if r.Code != "0" {
		return nil, fmt.Errorf("okx candles error: code=%s msg=%s: %w", r.Code, r.Msg, models.ErrDataUnavailable)
	}
	if len(r.Data) == 0 {
		return nil, fmt.Errorf("okx candles %s %s: no data: %w", instID, bar, models.ErrDataUnavailable)
	}

	out := make(models.CandleSeries, 0, len(r.Data))
	for i := len(r.Data) - 1; i >= 0; i-- {
		row := r.Data[i]
		if len(row) < 6 {
			continue
		}
		ts, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			continue
		}
		open, _ := strconv.ParseFloat(row[1], 64)
		high, _ := strconv.ParseFloat(row[2], 64)
		low, _ := strconv.ParseFloat(row[3], 64)
		closePx, _ := strconv.ParseFloat(row[4], 64)
		vol, _ := strconv.ParseFloat(row[5], 64)
		if closePx <= 0 {
			continue
		}
		out = append(out, models.Candle{
			Ts:     ts,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePx,
			Volume: vol,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("okx candles %s %s: no usable rows: %w", instID, bar, models.ErrDataUnavailable)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("okx candles %s: %v: %w", instID, err, models.ErrDataUnavailable)
	}
	return out, nil
}
