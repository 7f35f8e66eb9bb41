package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
)

// Client — спотовый клиент Binance поверх go-binance.
type Client struct {
	api *binance.Client

	mu   sync.Mutex
	meta map[string]lotFilter // кеш LOT_SIZE по парам
}

type lotFilter struct {
	step decimal.Decimal
	min  decimal.Decimal
}

func NewClient(cfg *config.Config) *Client {
	// go-binance выбирает endpoint в момент создания клиента
	binance.UseTestnet = cfg.Exchange.Testnet
	return &Client{
		api:  binance.NewClient(cfg.Exchange.APIKey, cfg.Exchange.APISecret),
		meta: make(map[string]lotFilter),
	}
}

func apiCode(err error) (int64, string, bool) {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	return 0, "", false
}

func isAuthCode(code int64) bool {
	switch code {
	case -1022, -2014, -2015: // подпись / формат ключа / ключ-IP-права
		return true
	}
	return false
}

func isTransientCode(code int64) bool {
	switch code {
	case -1000, -1001, -1003, -1006, -1007: // unknown / disconnected / rate limit / timeout
		return true
	}
	return false
}

// fetchKind — класс ошибки для публичных запросов рыночных данных.
func fetchKind(err error) error {
	code, _, ok := apiCode(err)
	if !ok {
		return models.ErrTransientFetch // транспорт
	}
	switch {
	case code == -1120 || code == -1121: // invalid interval / symbol
		return models.ErrDataUnavailable
	case isAuthCode(code):
		return models.ErrAuth
	case isTransientCode(code):
		return models.ErrTransientFetch
	}
	return models.ErrDataUnavailable
}

// accountKind — класс ошибки для запросов счёта.
func accountKind(err error) error {
	if code, _, ok := apiCode(err); ok && isAuthCode(code) {
		return models.ErrAuth
	}
	return models.ErrTransientExecution
}

// orderKind — класс ошибки при размещении ордера.
func orderKind(err error) error {
	code, msg, ok := apiCode(err)
	if !ok {
		return models.ErrTransientExecution
	}
	switch {
	case code == -2010 && strings.Contains(strings.ToLower(msg), "insufficient balance"):
		return models.ErrInsufficientFunds
	case isAuthCode(code):
		return models.ErrAuth
	case isTransientCode(code):
		return models.ErrTransientExecution
	}
	return models.ErrRejectedByExchange
}
