package service

import "testing"

func TestInstID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"BTC/USDT:USDT", "BTC-USDT-SWAP"},
		{"ETH/USDT", "ETH-USDT"},
		{"BTC-USDT", "BTC-USDT"},
		{"BTC-USDT-SWAP", "BTC-USDT-SWAP"},
		{" SOL/USDT ", "SOL-USDT"},
	}
	for _, tc := range cases {
		if got := InstID(tc.in); got != tc.want {
			t.Fatalf("InstID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOkxBar(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1m", "1m"},
		{"15m", "15m"},
		{"1h", "1H"},
		{"1H", "1H"},
		{"4h", "4H"},
		{"1d", "1D"},
	}
	for _, tc := range cases {
		got, err := okxBar(tc.in)
		if err != nil {
			t.Fatalf("okxBar(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("okxBar(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := okxBar("7h"); err == nil {
		t.Fatal("okxBar(7h) should fail")
	}
}
