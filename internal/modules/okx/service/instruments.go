package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"signal_bot/internal/models"
)

// InstrumentMeta возвращает лимиты инструмента, результат кешируется.
func (c *Client) InstrumentMeta(ctx context.Context, instID string) (Instrument, error) {
	c.mu.Lock()
	if inst, ok := c.meta[instID]; ok {
		c.mu.Unlock()
		return inst, nil
	}
	c.mu.Unlock()

	instType := "SPOT"
	if strings.HasSuffix(instID, "-SWAP") {
		instType = "SWAP"
	}
	path := fmt.Sprintf("/api/v5/public/instruments?instType=%s&instId=%s", instType, instID)

	req, err := c.generateRequest(ctx, http.MethodGet, path, "")
	if err != nil {
		return Instrument{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Instrument{}, fmt.Errorf("okx instruments %s: %v: %w", instID, err, models.ErrTransientExecution)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		kind := models.ErrRejectedByExchange
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = models.ErrTransientExecution
		}
		return Instrument{}, fmt.Errorf("okx instruments %s: http %d: %s: %w", instID, resp.StatusCode, string(data), kind)
	}

	var r instrumentsResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return Instrument{}, fmt.Errorf("okx instruments decode: %w; body=%s", err, string(data))
	}
	if r.Code != "0" || len(r.Data) == 0 {
		return Instrument{}, fmt.Errorf("okx instruments %s: code=%s msg=%s: %w", instID, r.Code, r.Msg, models.ErrRejectedByExchange)
	}

	d := r.Data[0]
	if d.State != "" && d.State != "live" {
		return Instrument{}, fmt.Errorf("okx instrument %s state=%s: %w", instID, d.State, models.ErrRejectedByExchange)
	}

	inst := Instrument{InstID: d.InstID}
	inst.LotSz, _ = strconv.ParseFloat(d.LotSz, 64)
	inst.MinSz, _ = strconv.ParseFloat(d.MinSz, 64)
	inst.TickSz, _ = strconv.ParseFloat(d.TickSz, 64)

	c.mu.Lock()
	c.meta[instID] = inst
	c.mu.Unlock()
	return inst, nil
}

// TopVolatile — топ-N USDT-перпетуалов по размаху за 24ч.
func (c *Client) TopVolatile(ctx context.Context, n int) []string {
	if n <= 0 {
		return nil
	}

	tickers, err := c.fetchSwapTickers(ctx)
	if err != nil || len(tickers) == 0 {
		return nil
	}

	type rec struct {
		sym   string
		score float64
	}

	arr := make([]rec, 0, len(tickers))
	for _, t := range tickers {
		if !strings.HasSuffix(t.InstID, "-USDT-SWAP") {
			continue
		}

		last, err1 := strconv.ParseFloat(t.Last, 64)
		high, err2 := strconv.ParseFloat(t.High24h, 64)
		low, err3 := strconv.ParseFloat(t.Low24h, 64)
		if err1 != nil || err2 != nil || err3 != nil || last <= 0 {
			continue
		}
		range24 := high - low
		if range24 <= 0 {
			continue
		}
		arr = append(arr, rec{sym: t.InstID, score: range24 / last})
	}

	if len(arr) == 0 {
		return nil
	}

	sort.Slice(arr, func(i, j int) bool { return arr[i].score > arr[j].score })
	if n > len(arr) {
		n = len(arr)
	}
	res := make([]string, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, arr[i].sym)
	}
	return res
}

func (c *Client) fetchSwapTickers(ctx context.Context) ([]okxTicker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/v5/market/tickers?instType=SWAP", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("non-2xx: %d %s", resp.StatusCode, string(body))
	}

	var wrap tickersResponse
	if err := json.Unmarshal(body, &wrap); err != nil {
		return nil, err
	}
	if wrap.Code != "0" {
		return nil, fmt.Errorf("okx error: code=%s msg=%s", wrap.Code, wrap.Msg)
	}
	return wrap.Data, nil
}
