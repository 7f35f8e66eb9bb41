package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"signal_bot/internal/models"
)

// Writer складывает выкачанные свечи в CSV, по файлу на пару
// exchange+symbol+timeframe. Повторная выгрузка перезаписывает файл.
type Writer struct {
	dir string
}

// NewWriterAt: каталог приходит флагом CLI либо из data_dir конфига.
func NewWriterAt(dir string) *Writer {
	return &Writer{dir: dir}
}

// SafeSymbol: всё не-буквенно-цифровое становится "_".
// "BTC/USDT:USDT" -> "BTC_USDT_USDT".
func SafeSymbol(symbol string) string {
	out := make([]rune, 0, len(symbol))
	for _, r := range symbol {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

func Filename(exchangeID, symbol, timeframe string) string {
	return fmt.Sprintf("%s_%s_%s.csv", exchangeID, SafeSymbol(symbol), timeframe)
}

// Save пишет серию и возвращает путь к файлу. Пустой каталог
// выключает сохранение.
func (w *Writer) Save(exchangeID, symbol, timeframe string, series models.CandleSeries) (string, error) {
	if w.dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("history: mkdir %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, Filename(exchangeID, symbol, timeframe))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("history: create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return "", fmt.Errorf("history: write header: %w", err)
	}
	for _, c := range series {
		rec := []string{
			time.UnixMilli(c.Ts).UTC().Format("2006-01-02 15:04:05"),
			formatPx(c.Open),
			formatPx(c.High),
			formatPx(c.Low),
			formatPx(c.Close),
			formatPx(c.Volume),
		}
		if err := cw.Write(rec); err != nil {
			return "", fmt.Errorf("history: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("history: flush %s: %w", path, err)
	}
	return path, nil
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
