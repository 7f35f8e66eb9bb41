package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"signal_bot/internal/models"
)

// SubmitMarketOrder размещает рыночный ордер, количество в базовой валюте.
// Перед отправкой количество сверяется с lotSz/minSz инструмента.
func (c *Client) SubmitMarketOrder(ctx context.Context, order models.TradeRequest) (models.TradeResult, error) {
	instID := InstID(order.Symbol)

	inst, err := c.InstrumentMeta(ctx, instID)
	if err != nil {
		return models.TradeResult{}, err
	}

	qty := roundToLot(order.Quantity, inst.LotSz)
	if qty.IsZero() || qty.LessThan(decimal.NewFromFloat(inst.MinSz)) {
		return models.TradeResult{}, fmt.Errorf("okx order %s: qty %v below minSz %v: %w",
			instID, order.Quantity, inst.MinSz, models.ErrRejectedByExchange)
	}

	body := map[string]string{
		"instId":  instID,
		"tdMode":  "cash",
		"side":    strings.ToLower(string(order.Side)),
		"ordType": "market",
		"sz":      qty.String(),
		"clOrdId": order.ClientID,
	}
	if strings.HasSuffix(instID, "-SWAP") {
		body["tdMode"] = "cross"
	} else {
		// спотовый market-buy по умолчанию меряется в котируемой валюте
		body["tgtCcy"] = "base_ccy"
	}

	payload, err := sonic.Marshal(body)
	if err != nil {
		return models.TradeResult{}, fmt.Errorf("okx order marshal: %w", err)
	}

	const path = "/api/v5/trade/order"
	req, err := c.generateRequest(ctx, http.MethodPost, path, string(payload))
	if err != nil {
		return models.TradeResult{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return models.TradeResult{}, fmt.Errorf("okx order %s: %v: %w", instID, err, models.ErrTransientExecution)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return models.TradeResult{}, fmt.Errorf("okx order: http %d: %s: %w", resp.StatusCode, string(data), models.ErrAuth)
	}
	if resp.StatusCode/100 != 2 {
		kind := models.ErrRejectedByExchange
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = models.ErrTransientExecution
		}
		return models.TradeResult{}, fmt.Errorf("okx order %s: http %d: %s: %w", instID, resp.StatusCode, string(data), kind)
	}

	var r orderResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return models.TradeResult{}, fmt.Errorf("okx order decode: %w; body=%s", err, string(data))
	}

	// детальный статус важнее общего кода
	if len(r.Data) > 0 && r.Data[0].SCode != "0" {
		return models.TradeResult{}, fmt.Errorf("okx order rejected: sCode=%s sMsg=%s: %w",
			r.Data[0].SCode, r.Data[0].SMsg, orderKind(r.Data[0].SCode))
	}
	if r.Code != "0" {
		return models.TradeResult{}, fmt.Errorf("okx order error: code=%s msg=%s: %w",
			r.Code, r.Msg, orderKind(r.Code))
	}
	if len(r.Data) == 0 || r.Data[0].OrdID == "" {
		return models.TradeResult{}, fmt.Errorf("okx order: empty ordId; body=%s: %w", string(data), models.ErrRejectedByExchange)
	}

	return models.TradeResult{Accepted: true, OrderID: r.Data[0].OrdID}, nil
}

// orderKind мапит код OKX на класс ошибки исполнения.
func orderKind(code string) error {
	switch code {
	case "51008": // Insufficient account balance
		return models.ErrInsufficientFunds
	case "50011", "50013": // rate limit / system busy
		return models.ErrTransientExecution
	}
	if isAuthCode(code) {
		return models.ErrAuth
	}
	return models.ErrRejectedByExchange
}

// roundToLot округляет количество вниз к шагу лота.
func roundToLot(qty, lot float64) decimal.Decimal {
	q := decimal.NewFromFloat(qty)
	if lot <= 0 {
		return q
	}
	step := decimal.NewFromFloat(lot)
	return q.Div(step).Floor().Mul(step)
}
