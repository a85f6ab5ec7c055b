package request

// Period kind values accepted by the calculate endpoint.
const (
	PeriodKindMonth   = "month"
	PeriodKindQuarter = "quarter"
)

type CalculateRequest struct {
	ClientID   string `json:"clientId"`
	PeriodKind string `json:"periodKind"`
	Year       int    `json:"year"`
	Month      int    `json:"month,omitempty"`
	Quarter    int    `json:"quarter,omitempty"`

	// ResetPayment deliberately clears quarterly payment state during the
	// recalculation. Routine recalculation leaves payment state untouched.
	ResetPayment bool `json:"resetPayment,omitempty"`
}

type SetQuarterConfigRequest struct {
	Year          int `json:"year"`
	Quarter       int `json:"quarter"`
	DaysInQuarter int `json:"daysInQuarter"`
}

type SetRateRequest struct {
	Rate string `json:"rate"`
}

type RecordPaymentRequest struct {
	ClientID string `json:"clientId"`
	Year     int    `json:"year"`
	Quarter  int    `json:"quarter"`
	Amount   string `json:"amount"`
	PaidDate string `json:"paidDate"`
}
