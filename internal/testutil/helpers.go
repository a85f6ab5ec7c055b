package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"

	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/google/uuid"
)

// MakeID generates a unique UUID for test entities.
func MakeID() string {
	return uuid.New().String()
}

// MakeCode generates a unique code with the given prefix, for account codes
// and ticker symbols that carry UNIQUE constraints.
func MakeCode(prefix string) string {
	return fmt.Sprintf("%s-%06d", prefix, rand.Intn(1000000))
}

// NewTestBrokerageService wires a BrokerageService against the given test database.
func NewTestBrokerageService(t *testing.T, db *sql.DB) *service.BrokerageService {
	t.Helper()

	return service.NewBrokerageService(
		repository.NewTradeRepository(db),
		repository.NewStockRepository(db),
		repository.NewClientRepository(db),
		repository.NewQuarterRepository(db),
		repository.NewBrokerageRepository(db),
	)
}

// NewTestClientService wires a ClientService against the given test database.
func NewTestClientService(t *testing.T, db *sql.DB) *service.ClientService {
	t.Helper()

	return service.NewClientService(repository.NewClientRepository(db))
}

// NewTestStockService wires a StockService against the given test database.
func NewTestStockService(t *testing.T, db *sql.DB) *service.StockService {
	t.Helper()

	return service.NewStockService(repository.NewStockRepository(db))
}

// NewTestTradeService wires a TradeService against the given test database.
func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	return service.NewTradeService(
		repository.NewTradeRepository(db),
		repository.NewClientRepository(db),
		repository.NewStockRepository(db),
	)
}

// NewTestConfigService wires a ConfigService against the given test database.
func NewTestConfigService(t *testing.T, db *sql.DB) *service.ConfigService {
	t.Helper()

	return service.NewConfigService(repository.NewQuarterRepository(db))
}

// NewTestPaymentService wires a PaymentService against the given test database.
func NewTestPaymentService(t *testing.T, db *sql.DB) *service.PaymentService {
	t.Helper()

	return service.NewPaymentService(
		repository.NewClientRepository(db),
		repository.NewBrokerageRepository(db),
	)
}
