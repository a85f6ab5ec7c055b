package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
	"github.com/shopspring/decimal"
)

// ClientBuilder provides a fluent interface for creating test clients.
//
// Example usage:
//
//	// Simple creation with defaults
//	client := testutil.NewClient().Build(t, db)
//
//	// Customized client
//	client := testutil.NewClient().
//	    WithCode("ACC-42").
//	    WithName("Jane Trader").
//	    Build(t, db)
type ClientBuilder struct {
	ID    string
	Code  string
	Name  string
	Email string
}

// NewClient creates a ClientBuilder with sensible defaults.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		ID:    MakeID(),
		Code:  MakeCode("ACC"),
		Name:  "Test Client",
		Email: "client@example.com",
	}
}

// WithID sets a custom ID.
func (b *ClientBuilder) WithID(id string) *ClientBuilder {
	b.ID = id
	return b
}

// WithCode sets a custom account code.
func (b *ClientBuilder) WithCode(code string) *ClientBuilder {
	b.Code = code
	return b
}

// WithName sets a custom name.
func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.Name = name
	return b
}

// WithEmail sets a custom email address.
func (b *ClientBuilder) WithEmail(email string) *ClientBuilder {
	b.Email = email
	return b
}

// Build creates the client in the database and returns it.
func (b *ClientBuilder) Build(t *testing.T, db *sql.DB) model.Client {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO client (id, code, name, email, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Code, b.Name, b.Email, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return model.Client{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Email:     b.Email,
		CreatedAt: createdAt,
	}
}

// StockBuilder provides a fluent interface for creating test stocks.
//
// Example usage:
//
//	stock := testutil.NewStock().
//	    WithSymbol("RELI").
//	    WithCurrentPrice("2500.00").
//	    Build(t, db)
type StockBuilder struct {
	ID           string
	Symbol       string
	Exchange     string
	Name         string
	Isin         string
	CurrentPrice decimal.Decimal
}

// NewStock creates a StockBuilder with sensible defaults.
func NewStock() *StockBuilder {
	return &StockBuilder{
		ID:           MakeID(),
		Symbol:       MakeCode("SYM"),
		Exchange:     "NSE",
		Name:         "Test Stock",
		Isin:         "",
		CurrentPrice: decimal.NewFromInt(100),
	}
}

// WithID sets a custom ID.
func (b *StockBuilder) WithID(id string) *StockBuilder {
	b.ID = id
	return b
}

// WithSymbol sets a custom ticker symbol.
func (b *StockBuilder) WithSymbol(symbol string) *StockBuilder {
	b.Symbol = symbol
	return b
}

// WithExchange sets a custom exchange code.
func (b *StockBuilder) WithExchange(exchange string) *StockBuilder {
	b.Exchange = exchange
	return b
}

// WithName sets a custom company name.
func (b *StockBuilder) WithName(name string) *StockBuilder {
	b.Name = name
	return b
}

// WithCurrentPrice sets the reference price used to value open positions.
func (b *StockBuilder) WithCurrentPrice(price string) *StockBuilder {
	b.CurrentPrice = decimal.RequireFromString(price)
	return b
}

// Build creates the stock in the database and returns it.
func (b *StockBuilder) Build(t *testing.T, db *sql.DB) model.Stock {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO stock (id, symbol, exchange, name, isin, current_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Symbol, b.Exchange, b.Name, b.Isin,
		b.CurrentPrice.String(), createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}

	return model.Stock{
		ID:           b.ID,
		Symbol:       b.Symbol,
		Exchange:     b.Exchange,
		Name:         b.Name,
		Isin:         b.Isin,
		CurrentPrice: b.CurrentPrice,
		CreatedAt:    createdAt,
	}
}

// TradeBuilder provides a fluent interface for creating test trades.
//
// Example usage:
//
//	trade := testutil.NewTrade(client.ID, stock.ID).
//	    Sell().
//	    WithQuantity(50).
//	    WithPrice("12.50").
//	    On("2026-07-15").
//	    Build(t, db)
type TradeBuilder struct {
	ID        string
	ClientID  string
	StockID   string
	Side      string
	Quantity  int64
	Price     decimal.Decimal
	TradeDate time.Time
	CreatedAt time.Time
}

// NewTrade creates a TradeBuilder for the given client and stock with
// sensible defaults: a buy of 100 shares at 10.00 on 2026-01-15.
func NewTrade(clientID, stockID string) *TradeBuilder {
	return &TradeBuilder{
		ID:        MakeID(),
		ClientID:  clientID,
		StockID:   stockID,
		Side:      model.TradeSideBuy,
		Quantity:  100,
		Price:     decimal.NewFromInt(10),
		TradeDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TradeBuilder) WithID(id string) *TradeBuilder {
	b.ID = id
	return b
}

// Buy marks the trade as a buy.
func (b *TradeBuilder) Buy() *TradeBuilder {
	b.Side = model.TradeSideBuy
	return b
}

// Sell marks the trade as a sell.
func (b *TradeBuilder) Sell() *TradeBuilder {
	b.Side = model.TradeSideSell
	return b
}

// WithQuantity sets the traded quantity.
func (b *TradeBuilder) WithQuantity(quantity int64) *TradeBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the execution price.
func (b *TradeBuilder) WithPrice(price string) *TradeBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

// On sets the trade date from a YYYY-MM-DD string.
func (b *TradeBuilder) On(date string) *TradeBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	b.TradeDate = parsed.UTC()
	return b
}

// CreatedAfter orders this trade after another trade on the same day.
func (b *TradeBuilder) CreatedAfter(other model.Trade) *TradeBuilder {
	b.CreatedAt = other.CreatedAt.Add(time.Second)
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	query := `
		INSERT INTO trade (id, client_id, stock_id, side, quantity, price, trade_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.ClientID, b.StockID, b.Side, b.Quantity,
		b.Price.String(), b.TradeDate.Format("2006-01-02"),
		b.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	return model.Trade{
		ID:        b.ID,
		ClientID:  b.ClientID,
		StockID:   b.StockID,
		Side:      b.Side,
		Quantity:  b.Quantity,
		Price:     b.Price,
		TradeDate: b.TradeDate,
		CreatedAt: b.CreatedAt,
	}
}

// Convenience functions

// CreateClient creates a client with the given account code and default values.
func CreateClient(t *testing.T, db *sql.DB, code string) model.Client {
	t.Helper()
	return NewClient().WithCode(code).Build(t, db)
}

// CreateStock creates a stock with the given symbol and default values.
func CreateStock(t *testing.T, db *sql.DB, symbol string) model.Stock {
	t.Helper()
	return NewStock().WithSymbol(symbol).Build(t, db)
}

// SetRate configures the brokerage rate directly in the database.
func SetRate(t *testing.T, db *sql.DB, rate string) {
	t.Helper()

	query := `
		INSERT INTO brokerage_rate (id, rate, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET rate = excluded.rate, updated_at = excluded.updated_at
	`

	if _, err := db.Exec(query, rate, time.Now().UTC().Format(time.RFC3339)); err != nil {
		t.Fatalf("Failed to set test rate: %v", err)
	}
}

// SetQuarterConfig configures a quarter day count directly in the database.
func SetQuarterConfig(t *testing.T, db *sql.DB, year, quarter, days int) {
	t.Helper()

	query := `
		INSERT INTO quarter_config (year, quarter, days_in_quarter)
		VALUES (?, ?, ?)
		ON CONFLICT (year, quarter) DO UPDATE SET days_in_quarter = excluded.days_in_quarter
	`

	if _, err := db.Exec(query, year, quarter, days); err != nil {
		t.Fatalf("Failed to set test quarter config: %v", err)
	}
}
