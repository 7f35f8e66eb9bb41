package service

import "testing"

func TestPair(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"BTC/USDT:USDT", "BTCUSDT"},
		{"BTC/USDT", "BTCUSDT"},
		{"BTC-USDT", "BTCUSDT"},
		{"btcusdt", "BTCUSDT"},
		{" eth/usdt ", "ETHUSDT"},
	}
	for _, tc := range cases {
		if got := Pair(tc.in); got != tc.want {
			t.Fatalf("Pair(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBinInterval(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1m", "1m"},
		{"1h", "1h"},
		{"1H", "1h"},
		{"60m", "1h"},
		{"1d", "1d"},
		{"1M", "1M"},
		{"1mo", "1M"},
	}
	for _, tc := range cases {
		got, err := binInterval(tc.in)
		if err != nil {
			t.Fatalf("binInterval(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("binInterval(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := binInterval("45s"); err == nil {
		t.Fatal("binInterval(45s) should fail")
	}
}
