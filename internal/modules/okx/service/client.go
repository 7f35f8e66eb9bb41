package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"signal_bot/internal/modules/config"
)

const defaultBaseURL = "https://www.okx.com"

// Client — REST-клиент OKX: свечи, баланс, рыночные ордера.
type Client struct {
	http      *http.Client
	base      string
	apiKey    string
	apiSecret string
	passph    string
	simulated bool // demo-трейдинг через x-simulated-trading

	mu   sync.Mutex
	meta map[string]Instrument // кеш меты инструментов
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		base:      defaultBaseURL,
		apiKey:    cfg.Exchange.APIKey,
		apiSecret: cfg.Exchange.APISecret,
		passph:    cfg.Exchange.Passphrase,
		simulated: cfg.Exchange.Testnet,
		meta:      make(map[string]Instrument),
	}
}

func (c *Client) sign(ts, method, requestPath, body string) string {
	msg := ts + strings.ToUpper(method) + requestPath + body
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write([]byte(msg))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// generateRequest строит подписанный запрос, body="" для GET.
func (c *Client) generateRequest(ctx context.Context, method, requestPath, body string) (*http.Request, error) {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+requestPath, rd)
	if err != nil {
		return nil, err
	}
	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	req.Header.Set("OK-ACCESS-KEY", c.apiKey)
	req.Header.Set("OK-ACCESS-SIGN", c.sign(ts, method, requestPath, body))
	req.Header.Set("OK-ACCESS-TIMESTAMP", ts)
	req.Header.Set("OK-ACCESS-PASSPHRASE", c.passph)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.simulated {
		req.Header.Set("x-simulated-trading", "1")
	}
	return req, nil
}

// isAuthCode: семейство 501xx у OKX — ошибки аутентификации запроса.
func isAuthCode(code string) bool {
	return strings.HasPrefix(code, "501")
}
