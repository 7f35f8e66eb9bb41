package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"signal_bot/internal/models"
)

// SubmitMarketOrder размещает рыночный ордер, количество в базовой валюте.
// Количество заранее подгоняется под LOT_SIZE пары.
func (c *Client) SubmitMarketOrder(ctx context.Context, order models.TradeRequest) (models.TradeResult, error) {
	pair := Pair(order.Symbol)

	filter, err := c.lotSize(ctx, pair)
	if err != nil {
		return models.TradeResult{}, err
	}
	qty := roundToStep(order.Quantity, filter.step)
	if qty.IsZero() || (filter.min.IsPositive() && qty.LessThan(filter.min)) {
		return models.TradeResult{}, fmt.Errorf("binance order %s: qty %v below LOT_SIZE min %s: %w",
			pair, order.Quantity, filter.min, models.ErrRejectedByExchange)
	}

	side := binance.SideTypeBuy
	if order.Side == models.SideSell {
		side = binance.SideTypeSell
	}

	res, err := c.api.NewCreateOrderService().
		Symbol(pair).
		Side(side).
		Type(binance.OrderTypeMarket).
		Quantity(qty.String()).
		NewClientOrderID(order.ClientID).
		Do(ctx)
	if err != nil {
		return models.TradeResult{}, fmt.Errorf("binance order %s: %v: %w", pair, err, orderKind(err))
	}

	return models.TradeResult{
		Accepted: true,
		OrderID:  strconv.FormatInt(res.OrderID, 10),
	}, nil
}

// lotSize достаёт LOT_SIZE пары из exchangeInfo, результат кешируется.
func (c *Client) lotSize(ctx context.Context, pair string) (lotFilter, error) {
	c.mu.Lock()
	if f, ok := c.meta[pair]; ok {
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	info, err := c.api.NewExchangeInfoService().Symbol(pair).Do(ctx)
	if err != nil {
		return lotFilter{}, fmt.Errorf("binance exchangeInfo %s: %v: %w", pair, err, orderKind(err))
	}

	var f lotFilter
	for _, s := range info.Symbols {
		if s.Symbol != pair {
			continue
		}
		if ls := s.LotSizeFilter(); ls != nil {
			f.step, _ = decimal.NewFromString(ls.StepSize)
			f.min, _ = decimal.NewFromString(ls.MinQuantity)
		}
	}

	c.mu.Lock()
	c.meta[pair] = f
	c.mu.Unlock()
	return f, nil
}

// roundToStep округляет количество вниз к шагу LOT_SIZE.
func roundToStep(qty float64, step decimal.Decimal) decimal.Decimal {
	q := decimal.NewFromFloat(qty)
	if step.IsZero() {
		return q
	}
	return q.Div(step).Floor().Mul(step)
}
