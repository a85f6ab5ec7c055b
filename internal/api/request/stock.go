package request

type CreateStockRequest struct {
	Symbol       string `json:"symbol"`
	Exchange     string `json:"exchange"`
	Name         string `json:"name"`
	Isin         string `json:"isin,omitempty"`
	CurrentPrice string `json:"currentPrice,omitempty"`
}

type UpdateStockPriceRequest struct {
	CurrentPrice string `json:"currentPrice"`
}
