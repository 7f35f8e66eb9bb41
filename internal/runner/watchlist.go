package runner

import (
	"context"

	"signal_bot/pkg/logger"
)

// topVolatile — опциональная способность порта данных (пока только OKX).
type topVolatile interface {
	TopVolatile(ctx context.Context, n int) []string
}

// buildWatchlist: символы из конфига плюс, если задан watch_top_n,
// топ по волатильности с площадки. Дубли убираются.
func (r *Runner) buildWatchlist(ctx context.Context) []string {
	seen := make(map[string]bool)
	watch := make([]string, 0, len(r.cfg.Watchlist)+r.cfg.WatchTopN)

	for _, s := range r.cfg.Watchlist {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		watch = append(watch, s)
	}

	if r.cfg.WatchTopN > 0 {
		tv, ok := r.md.(topVolatile)
		if !ok {
			logger.Info("runner: площадка %s не умеет топ по волатильности, watch_top_n игнорируется", r.cfg.Exchange.ID)
			return watch
		}
		for _, s := range tv.TopVolatile(ctx, r.cfg.WatchTopN) {
			if seen[s] {
				continue
			}
			seen[s] = true
			watch = append(watch, s)
		}
	}
	return watch
}
