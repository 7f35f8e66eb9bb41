package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"signal_bot/internal/models"
)

// Balance возвращает доступные средства торгового счёта по активам.
func (c *Client) Balance(ctx context.Context) (models.Balances, error) {
	const path = "/api/v5/account/balance"

	req, err := c.generateRequest(ctx, http.MethodGet, path, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("okx balance: %v: %w", err, models.ErrTransientExecution)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("okx balance: http %d: %s: %w", resp.StatusCode, string(b), models.ErrAuth)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("okx balance: http %d: %s: %w", resp.StatusCode, string(b), models.ErrTransientExecution)
	}

	var r balanceResponse
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("okx balance decode: %w", err)
	}
	if r.Code != "0" {
		if isAuthCode(r.Code) {
			return nil, fmt.Errorf("okx balance error: code=%s msg=%s: %w", r.Code, r.Msg, models.ErrAuth)
		}
		return nil, fmt.Errorf("okx balance error: code=%s msg=%s", r.Code, r.Msg)
	}

	out := models.Balances{}
	for _, acc := range r.Data {
		for _, d := range acc.Details {
			// в зависимости от режима счёта занят разный столбец
			avail, _ := strconv.ParseFloat(d.AvailBal, 64)
			if avail == 0 {
				avail, _ = strconv.ParseFloat(d.AvailEq, 64)
			}
			if avail == 0 {
				avail, _ = strconv.ParseFloat(d.CashBal, 64)
			}
			out[d.Ccy] = avail
		}
	}
	return out, nil
}
