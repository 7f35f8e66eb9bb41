package models

import "fmt"

// Candle — закрытая свеча. Ts в миллисекундах эпохи, как отдают биржи.
type Candle struct {
	Ts     int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// CandleSeries — свечи в хронологическом порядке, старые впереди.
type CandleSeries []Candle

func (s CandleSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

// Validate проверяет порядок: временные метки строго растут, без дублей.
func (s CandleSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Ts <= s[i-1].Ts {
			return fmt.Errorf("candle series: ts not increasing at index %d (%d after %d)", i, s[i].Ts, s[i-1].Ts)
		}
	}
	return nil
}
