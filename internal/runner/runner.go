package runner

import (
	"context"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	enginesvc "signal_bot/internal/modules/engine/service"
	healthsvc "signal_bot/internal/modules/health/service"
	journalsvc "signal_bot/internal/modules/journal/service"
	strategysvc "signal_bot/internal/modules/strategy/service"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"
)

type signalReq struct {
	symbol string
	sig    models.Signal
}

// Runner опрашивает площадку по тикеру: свечи -> генератор -> подтверждение
// -> рыночный ордер. Сигналы и ордера идут в журнал и метрики.
type Runner struct {
	cfg     *config.Config
	engine  *enginesvc.Engine
	gen     strategysvc.Generator
	md      enginesvc.MarketData
	journal journalsvc.Journal
	n       notify.Notifier
	state   *healthsvc.State
	metrics *healthsvc.Metrics

	queue   chan signalReq
	pending map[string]bool // symbol -> ждёт подтверждения
	mu      sync.Mutex
}

func NewRunner(
	cfg *config.Config,
	engine *enginesvc.Engine,
	gen strategysvc.Generator,
	md enginesvc.MarketData,
	journal journalsvc.Journal,
	n notify.Notifier,
	state *healthsvc.State,
	metrics *healthsvc.Metrics,
) *Runner {
	return &Runner{
		cfg:     cfg,
		engine:  engine,
		gen:     gen,
		md:      md,
		journal: journal,
		n:       n,
		state:   state,
		metrics: metrics,
		queue:   make(chan signalReq, 20),
		pending: make(map[string]bool),
	}
}

func (r *Runner) Start(ctx context.Context) {
	go r.confirmWorker(ctx)

	watch := r.buildWatchlist(ctx)
	if len(watch) == 0 {
		logger.Error("runner: пустой watchlist, нечего опрашивать")
		return
	}
	logger.Info("runner: %s, модель %s, watchlist %v", r.cfg.Exchange.ID, r.gen.Name(), watch)
	r.n.Sendf("📈 Запущен: %s, модель %s, %d символов", r.cfg.Exchange.ID, r.gen.Name(), len(watch))
	r.state.SetReady(true)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	r.pollOnce(ctx, watch)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.pollOnce(ctx, watch)
		}
	}
}

func (r *Runner) pollOnce(ctx context.Context, symbols []string) {
	for _, s := range symbols {
		select {
		case <-ctx.Done():
			return
		default:
		}
		r.evaluate(ctx, s)
	}
	r.state.TouchPoll(time.Now())
}

// evaluate: одно решение по символу. HOLD заканчивается здесь,
// действенный сигнал уходит в очередь подтверждений.
func (r *Runner) evaluate(ctx context.Context, symbol string) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "runner.evaluate")
	span.SetTag("symbol", symbol)
	defer span.Finish()

	limit := strategysvc.AutoLimit(r.gen)
	sig, err := r.engine.Decide(ctx, symbol, r.cfg.DefaultTimeframe, limit, r.gen)

	_ = r.journal.Append(ctx, journalsvc.SignalEntry(r.cfg.Exchange.ID, symbol, r.cfg.DefaultTimeframe, sig, err))
	if err != nil {
		span.SetTag("error", true)
		r.state.SetExchangeUp(false)
		logger.Error("runner: %s: %v", symbol, err)
		return
	}
	r.state.SetExchangeUp(true)
	r.metrics.ObserveSignal(symbol, string(sig.Action))
	span.SetTag("action", string(sig.Action))

	if !sig.Action.Actionable() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending[symbol] {
		return // по символу уже висит подтверждение
	}
	select {
	case r.queue <- signalReq{symbol: symbol, sig: sig}:
		logger.Info("runner: сигнал %s %s (conf %.3f)", symbol, sig.Action, sig.Confidence)
		r.pending[symbol] = true
	default:
		logger.Error("runner: очередь подтверждений полна, %s %s пропущен", symbol, sig.Action)
	}
}

func (r *Runner) setPending(symbol string, v bool) {
	r.mu.Lock()
	r.pending[symbol] = v
	r.mu.Unlock()
}
