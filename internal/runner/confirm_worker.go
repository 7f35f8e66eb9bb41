package runner

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
	journalsvc "signal_bot/internal/modules/journal/service"
	"signal_bot/pkg/logger"
)

// confirmWorker разбирает очередь действенных сигналов: подтверждение
// в Telegram, затем рыночный ордер.
func (r *Runner) confirmWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case req := <-r.queue:
			r.handle(ctx, req)
			r.setPending(req.symbol, false)
		}
	}
}

func (r *Runner) handle(ctx context.Context, req signalReq) {
	prompt := fmt.Sprintf("🔔 [%s] %s, модель %s, qty %v. Исполнить?",
		req.symbol, req.sig.Action, req.sig.Generator, r.cfg.OrderQty)

	if r.cfg.ConfirmRequired {
		if !r.n.Confirm(ctx, prompt, r.cfg.ConfirmTimeout) {
			logger.Info("runner: %s %s отклонён", req.symbol, req.sig.Action)
			return
		}
	}

	res, err := r.engine.Execute(ctx, req.sig, req.symbol, r.cfg.OrderQty)
	_ = r.journal.Append(ctx, journalsvc.OrderEntry(
		r.cfg.Exchange.ID, req.symbol, string(req.sig.Action), r.cfg.OrderQty, res, err))

	if err != nil {
		r.metrics.ObserveOrder(req.symbol, string(req.sig.Action), models.Kind(err))
		logger.Error("runner: ордер %s %s: %v", req.symbol, req.sig.Action, err)
		r.n.Sendf("❗️ [%s] Ордер %s не прошёл: %v", req.symbol, req.sig.Action, err)
		return
	}

	r.metrics.ObserveOrder(req.symbol, string(req.sig.Action), "accepted")
	logger.Info("runner: ордер %s %s принят, id=%s", req.symbol, req.sig.Action, res.OrderID)
	r.n.Sendf("✅ [%s] %s qty %v принят, ордер %s", req.symbol, req.sig.Action, r.cfg.OrderQty, res.OrderID)
}
