package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	enginesvc "signal_bot/internal/modules/engine/service"
	"signal_bot/internal/modules/exchange"
	historysvc "signal_bot/internal/modules/history/service"
	strategysvc "signal_bot/internal/modules/strategy/service"
	"signal_bot/pkg/logger"
)

const cmdTimeout = 30 * time.Second

const usageText = `trade — сигналы и рыночные ордера из консоли

Usage:
  trade get-balance   [-config path]
  trade fetch-ohlcv   SYMBOL [-timeframe 1h] [-limit 100] [-output dir] [-config path]
  trade get-signal    SYMBOL [-model crossover|random] [-fast-window 5] [-slow-window 10] [-seed N] [-config path]
  trade execute-trade SYMBOL BUY|SELL|HOLD QUANTITY [-config path]

Конфиг: yaml/toml/json тем же форматом, что configs/values_local.yaml.
Без -config всё берётся из env (.env подхватывается автоматически).
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}

	switch args[0] {
	case "get-balance":
		return cmdGetBalance(args[1:])
	case "fetch-ohlcv":
		return cmdFetchOHLCV(args[1:])
	case "get-signal":
		return cmdGetSignal(args[1:])
	case "execute-trade":
		return cmdExecuteTrade(args[1:])
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return 0
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usageText)
	return 2
}

// fail печатает ошибку с её классом и даёт ненулевой код выхода.
func fail(err error) int {
	if kind := models.Kind(err); kind != "error" && kind != "" {
		fmt.Fprintf(os.Stderr, "error (%s): %v\n", kind, err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return 1
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.SetServiceName("trade_cli")
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cmdGetBalance(args []string) int {
	fs := flag.NewFlagSet("get-balance", flag.ExitOnError)
	cfgPath := fs.String("config", "", "путь к конфигу, пусто — только env")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fail(err)
	}
	ports, err := exchange.New(cfg)
	if err != nil {
		return fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	bal, err := ports.Execution.Balance(ctx)
	if err != nil {
		return fail(err)
	}

	fmt.Println("--- Account Balance ---")
	assets := bal.NonZero()
	if len(assets) == 0 {
		fmt.Println("(no non-zero balances)")
		return 0
	}
	for _, a := range assets {
		fmt.Printf("%s: %v\n", a, bal[a])
	}
	return 0
}

func cmdFetchOHLCV(args []string) int {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(os.Stderr, "fetch-ohlcv: SYMBOL обязателен первым аргументом")
		return 2
	}
	symbol := args[0]

	fs := flag.NewFlagSet("fetch-ohlcv", flag.ExitOnError)
	cfgPath := fs.String("config", "", "путь к конфигу, пусто — только env")
	timeframe := fs.String("timeframe", "", "таймфрейм, по умолчанию из конфига")
	limit := fs.Int("limit", 0, "сколько свечей, по умолчанию из конфига")
	output := fs.String("output", "", "каталог для CSV, по умолчанию data_dir из конфига; явная пустая строка — не сохранять")
	_ = fs.Parse(args[1:])

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fail(err)
	}
	if *timeframe == "" {
		*timeframe = cfg.DefaultTimeframe
	}
	if *limit <= 0 {
		*limit = cfg.DefaultLimit
	}
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if !visited["output"] {
		*output = cfg.DataDir
	}

	ports, err := exchange.New(cfg)
	if err != nil {
		return fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	series, err := ports.MarketData.FetchCandles(ctx, symbol, *timeframe, *limit)
	if err != nil {
		return fail(err)
	}

	path, err := historysvc.NewWriterAt(*output).Save(cfg.Exchange.ID, symbol, *timeframe, series)
	if err != nil {
		return fail(err)
	}
	if path == "" {
		fmt.Printf("Fetched %d candles for %s (%s), not saved\n", len(series), symbol, *timeframe)
		return 0
	}
	fmt.Printf("Fetched %d candles for %s (%s), saved to %s\n", len(series), symbol, *timeframe, path)
	return 0
}

func cmdGetSignal(args []string) int {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(os.Stderr, "get-signal: SYMBOL обязателен первым аргументом")
		return 2
	}
	symbol := args[0]

	fs := flag.NewFlagSet("get-signal", flag.ExitOnError)
	cfgPath := fs.String("config", "", "путь к конфигу, пусто — только env")
	model := fs.String("model", "", "модель: "+strings.Join(strategysvc.Models(), " | "))
	fast := fs.Int("fast-window", 0, "быстрое окно SMA")
	slow := fs.Int("slow-window", 0, "медленное окно SMA")
	seed := fs.Int64("seed", 0, "сид для random, 0 — от времени")
	_ = fs.Parse(args[1:])

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fail(err)
	}
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if !visited["model"] {
		*model = cfg.DefaultModel
	}
	if !visited["fast-window"] {
		*fast = cfg.DefaultFastWindow
	}
	if !visited["slow-window"] {
		*slow = cfg.DefaultSlowWindow
	}
	if !visited["seed"] {
		*seed = cfg.RandomSeed
	}

	gen, err := strategysvc.New(*model, strategysvc.Params{Fast: *fast, Slow: *slow, Seed: *seed})
	if err != nil {
		return fail(err)
	}

	ports, err := exchange.New(cfg)
	if err != nil {
		return fail(err)
	}
	eng := enginesvc.NewEngine(ports.MarketData, ports.Execution)

	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	limit := strategysvc.AutoLimit(gen)
	sig, err := eng.Decide(ctx, symbol, cfg.DefaultTimeframe, limit, gen)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("--- Generated Signal for %s (%s) ---\n", symbol, gen.Name())
	fmt.Printf("Signal: %s\n", sig.Action)
	if sig.Action.Actionable() {
		fmt.Printf("Confidence: %.3f\n", sig.Confidence)
	}
	if gen.Name() == strategysvc.ModelCrossover {
		fmt.Printf("Parameters: fast=%d slow=%d\n", *fast, *slow)
	}
	return 0
}

func cmdExecuteTrade(args []string) int {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "execute-trade: нужны SYMBOL, BUY|SELL|HOLD и QUANTITY")
		return 2
	}
	symbol := args[0]

	action, err := models.ParseAction(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "execute-trade: %v\n", err)
		return 2
	}
	qty, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "execute-trade: bad quantity %q\n", args[2])
		return 2
	}

	fs := flag.NewFlagSet("execute-trade", flag.ExitOnError)
	cfgPath := fs.String("config", "", "путь к конфигу, пусто — только env")
	_ = fs.Parse(args[3:])

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fail(err)
	}
	ports, err := exchange.New(cfg)
	if err != nil {
		return fail(err)
	}
	eng := enginesvc.NewEngine(ports.MarketData, ports.Execution)

	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	res, err := eng.Execute(ctx, models.Signal{Action: action}, symbol, qty)
	if err != nil {
		return fail(err)
	}

	fmt.Println("--- Trade Execution Result ---")
	fmt.Printf("Order ID: %s\n", res.OrderID)
	fmt.Printf("Status: accepted\n")
	fmt.Printf("Symbol: %s\n", symbol)
	fmt.Printf("Side: %s\n", action)
	fmt.Printf("Amount: %v\n", qty)
	return 0
}
