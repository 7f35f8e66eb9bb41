package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	apiKeyENV         = "API_KEY"
	apiSecretENV      = "API_SECRET"
	apiPassphraseENV  = "API_PASSPHRASE"
)

// Config ...
type Config struct {
	Exchange struct {
		ID         string `yaml:"id"` // okx | binance
		APIKey     string `yaml:"api_key"`
		APISecret  string `yaml:"api_secret"`
		Passphrase string `yaml:"passphrase"` // нужен только OKX
		Testnet    bool   `yaml:"testnet"`
	} `yaml:"exchange"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	DB string `yaml:"db_dsn"`

	Service struct {
		HealthAddr string `yaml:"health_addr"`
		JaegerHost string `yaml:"jaeger_host"` // пусто => трейсинг выключен
		JaegerPort int    `yaml:"jaeger_port"`
	} `yaml:"service"`

	// Генератор сигналов
	DefaultModel      string `yaml:"model"` // random | crossover
	DefaultFastWindow int    `yaml:"fast_window"`
	DefaultSlowWindow int    `yaml:"slow_window"`
	RandomSeed        int64  `yaml:"random_seed"` // 0 => сид от времени

	// Рыночные данные
	DefaultTimeframe string `yaml:"timeframe"`
	DefaultLimit     int    `yaml:"candle_limit"`
	DataDir          string `yaml:"data_dir"` // куда складывать CSV со свечами

	// Раннер
	Watchlist       []string `yaml:"watchlist"`
	WatchTopN       int      `yaml:"watch_top_n"` // >0 => добираем топ по волатильности
	OrderQty        float64  `yaml:"order_qty"`   // размер рыночного ордера в базовой валюте
	ConfirmRequired bool     `yaml:"confirm_required"`
	PollInterval    time.Duration
	ConfirmTimeout  time.Duration

	JournalPath string `yaml:"journal_path"` // файловый журнал, если нет db_dsn
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	config := defaults()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		if os.IsNotExist(err) {
			// конфиг-файл не обязателен, всё задаётся через env
			applySecretEnv(config)
			return config, config.validate()
		}
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	applySecretEnv(config)

	return config, config.validate()
}

// defaults — значения до чтения файла: env поверх зашитых дефолтов.
func defaults() *Config {
	config := &Config{
		DefaultModel:      getenvDefault("SIGNAL_MODEL", "crossover"),
		DefaultFastWindow: intFromEnv("FAST_WINDOW", 5),
		DefaultSlowWindow: intFromEnv("SLOW_WINDOW", 10),
		RandomSeed:        int64FromEnv("RANDOM_SEED", 0),

		DefaultTimeframe: getenvDefault("TIMEFRAME", "1h"),
		DefaultLimit:     intFromEnv("CANDLE_LIMIT", 100),
		DataDir:          getenvDefault("DATA_DIR", "data"),

		Watchlist:       listFromEnv("WATCHLIST", "BTC-USDT"),
		WatchTopN:       intFromEnv("WATCH_TOP_N", 0),
		OrderQty:        floatFromEnv("ORDER_QTY", 0.001),
		ConfirmRequired: boolFromEnv("CONFIRM_REQUIRED", true),
		PollInterval:    durationFromEnv("POLL_INTERVAL", "1m"),
		ConfirmTimeout:  durationFromEnv("CONFIRM_TIMEOUT", "30s"),

		JournalPath: getenvDefault("JOURNAL_PATH", "data/journal.json"),
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		LogFile:     os.Getenv("LOG_FILE"),
	}
	config.Exchange.ID = getenvDefault("DEFAULT_EXCHANGE_ID", "okx")
	config.Exchange.Testnet = boolFromEnv("USE_TESTNET", false)
	config.Service.HealthAddr = getenvDefault("HEALTH_ADDR", ":8080")
	config.Service.JaegerHost = os.Getenv("JAEGER_HOST")
	config.Service.JaegerPort = intFromEnv("JAEGER_PORT", 6831)
	return config
}

// applySecretEnv: секреты из env всегда сильнее файла.
func applySecretEnv(config *Config) {
	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}
	if v := os.Getenv(apiKeyENV); v != "" {
		config.Exchange.APIKey = v
	}
	if v := os.Getenv(apiSecretENV); v != "" {
		config.Exchange.APISecret = v
	}
	if v := os.Getenv(apiPassphraseENV); v != "" {
		config.Exchange.Passphrase = v
	}
}

func (c *Config) validate() error {
	if c.DefaultFastWindow <= 0 || c.DefaultFastWindow >= c.DefaultSlowWindow {
		return fmt.Errorf("FAST_WINDOW must be > 0 and < SLOW_WINDOW (got %d/%d)", c.DefaultFastWindow, c.DefaultSlowWindow)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("CANDLE_LIMIT must be > 0")
	}
	return nil
}

// LoadFile читает конфиг CLI поверх тех же дефолтов и env, что и NewConfig.
// Формат: yaml/json/toml, схема та же, что у values_local.yaml. Плоские
// ключи старого config.ini (API_KEY, USE_TESTNET, LOG_LEVEL, ...) живут
// как env и подхватываются через .env.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	config := defaults()

	if path == "" {
		applySecretEnv(config)
		return config, config.validate()
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setInt := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}

	setString("exchange.id", &config.Exchange.ID)
	setString("exchange.api_key", &config.Exchange.APIKey)
	setString("exchange.api_secret", &config.Exchange.APISecret)
	setString("exchange.passphrase", &config.Exchange.Passphrase)
	if v.IsSet("exchange.testnet") {
		config.Exchange.Testnet = v.GetBool("exchange.testnet")
	}

	setString("telegram.token", &config.Telegram.Token)
	if v.IsSet("telegram.chat_id") {
		config.Telegram.ChatID = v.GetInt64("telegram.chat_id")
	}
	setString("db_dsn", &config.DB)

	setString("model", &config.DefaultModel)
	setInt("fast_window", &config.DefaultFastWindow)
	setInt("slow_window", &config.DefaultSlowWindow)
	if v.IsSet("random_seed") {
		config.RandomSeed = v.GetInt64("random_seed")
	}

	setString("timeframe", &config.DefaultTimeframe)
	setInt("candle_limit", &config.DefaultLimit)
	setString("data_dir", &config.DataDir)
	setString("journal_path", &config.JournalPath)
	setString("log_level", &config.LogLevel)
	setString("log_file", &config.LogFile)

	applySecretEnv(config)
	return config, config.validate()
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}

func listFromEnv(key, def string) []string {
	raw := getenvDefault(key, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
