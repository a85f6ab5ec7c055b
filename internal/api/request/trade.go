package request

type CreateTradeRequest struct {
	ClientID  string `json:"clientId"`
	StockID   string `json:"stockId"`
	Side      string `json:"side"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
	TradeDate string `json:"tradeDate"`
}
