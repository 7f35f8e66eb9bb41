package service

// Instrument — торговые ограничения инструмента.
type Instrument struct {
	InstID string
	LotSz  float64
	MinSz  float64
	TickSz float64
}

type candlesResponse struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

type balanceResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		Details []struct {
			Ccy      string `json:"ccy"`
			AvailBal string `json:"availBal"`
			AvailEq  string `json:"availEq"`
			CashBal  string `json:"cashBal"`
		} `json:"details"`
	} `json:"data"`
}

type orderResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		OrdID string `json:"ordId"`
		SCode string `json:"sCode"`
		SMsg  string `json:"sMsg"`
	} `json:"data"`
}

type instrumentsResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		InstID string `json:"instId"`
		TickSz string `json:"tickSz"`
		LotSz  string `json:"lotSz"`
		MinSz  string `json:"minSz"`
		State  string `json:"state"`
	} `json:"data"`
}

type okxTicker struct {
	InstID  string `json:"instId"`
	Last    string `json:"last"`
	High24h string `json:"high24h"`
	Low24h  string `json:"low24h"`
}

type tickersResponse struct {
	Code string      `json:"code"`
	Msg  string      `json:"msg"`
	Data []okxTicker `json:"data"`
}
