package service

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"signal_bot/internal/models"
)

func TestSafeSymbol(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"BTC/USDT:USDT", "BTC_USDT_USDT"},
		{"BTC-USDT", "BTC_USDT"},
		{"BTCUSDT", "BTCUSDT"},
	}
	for _, tc := range cases {
		if got := SafeSymbol(tc.in); got != tc.want {
			t.Fatalf("SafeSymbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSaveWritesCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriterAt(dir)

	series := models.CandleSeries{
		{Ts: 1700000000000, Open: 9, High: 10, Low: 8, Close: 9.5, Volume: 3},
		{Ts: 1700003600000, Open: 9.5, High: 11, Low: 9, Close: 10.5, Volume: 4},
	}
	path, err := w.Save("okx", "BTC/USDT", "1h", series)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "okx_BTC_USDT_1h.csv"); path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][5] != "volume" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][4] != "9.5" {
		t.Fatalf("close = %q, want 9.5", rows[1][4])
	}
	if rows[1][0] != "2023-11-14 22:13:20" {
		t.Fatalf("timestamp = %q", rows[1][0])
	}
}

func TestSaveDisabledWithoutDir(t *testing.T) {
	w := NewWriterAt("")
	path, err := w.Save("okx", "BTC-USDT", "1h", models.CandleSeries{{Ts: 1, Close: 1}})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != "" {
		t.Fatalf("path = %q, want empty", path)
	}
}
