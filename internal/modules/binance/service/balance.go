package service

import (
	"context"
	"fmt"
	"strconv"

	"signal_bot/internal/models"
)

// Balance возвращает свободные остатки спотового счёта.
func (c *Client) Balance(ctx context.Context) (models.Balances, error) {
	acc, err := c.api.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance balance: %v: %w", err, accountKind(err))
	}

	out := models.Balances{}
	for _, b := range acc.Balances {
		free, _ := strconv.ParseFloat(b.Free, 64)
		if free == 0 {
			continue // спотовый счёт тащит сотни нулевых активов
		}
		out[b.Asset] = free
	}
	return out, nil
}
