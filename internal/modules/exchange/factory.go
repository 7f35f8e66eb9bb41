package exchange

import (
	"fmt"

	binancesvc "signal_bot/internal/modules/binance/service"
	"signal_bot/internal/modules/config"
	enginesvc "signal_bot/internal/modules/engine/service"
	okxsvc "signal_bot/internal/modules/okx/service"
)

// Закрытый набор площадок. Новая площадка = новая ветка в New и больше нигде.
const (
	VenueOKX     = "okx"
	VenueBinance = "binance"
)

// клиенты площадок закрывают оба порта движка
var (
	_ enginesvc.MarketData = (*okxsvc.Client)(nil)
	_ enginesvc.Execution  = (*okxsvc.Client)(nil)
	_ enginesvc.MarketData = (*binancesvc.Client)(nil)
	_ enginesvc.Execution  = (*binancesvc.Client)(nil)
)

// Ports — данные и исполнение одной и той же площадки.
type Ports struct {
	MarketData enginesvc.MarketData
	Execution  enginesvc.Execution
}

// New собирает клиента площадки из конфига.
func New(cfg *config.Config) (Ports, error) {
	switch cfg.Exchange.ID {
	case VenueOKX:
		c := okxsvc.NewClient(cfg)
		return Ports{MarketData: c, Execution: c}, nil
	case VenueBinance:
		c := binancesvc.NewClient(cfg)
		return Ports{MarketData: c, Execution: c}, nil
	}
	return Ports{}, fmt.Errorf("unknown exchange id %q (want %q or %q)", cfg.Exchange.ID, VenueOKX, VenueBinance)
}

// Venues — известные площадки, для сообщений об ошибках и help.
func Venues() []string {
	return []string{VenueBinance, VenueOKX}
}
