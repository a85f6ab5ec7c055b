package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrClientNotFound indicates that a client with the given ID does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrStockNotFound indicates that a stock with the given ID or symbol does not exist.
	ErrStockNotFound = errors.New("stock not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrSummaryNotFound indicates that no summary has been calculated yet
	// for the requested client and period.
	ErrSummaryNotFound = errors.New("summary not found")
)

// Configuration errors represent missing external configuration that a
// calculation depends on. A calculation never guesses a missing value; it
// fails with one of these so the operator can fix the configuration and retry.
var (
	// ErrQuarterNotConfigured indicates that no days-in-quarter value has been
	// configured for the requested year and quarter. The engine must not fall
	// back to calendar days.
	ErrQuarterNotConfigured = errors.New("quarter configuration not found")

	// ErrRateNotConfigured indicates that no brokerage rate has been configured.
	ErrRateNotConfigured = errors.New("brokerage rate not configured")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientQuantity indicates that a sell trade requests more quantity
	// than is available in open lots for that client and stock. The shortfall is
	// reported alongside this error; no lots are fabricated.
	ErrInsufficientQuantity = errors.New("insufficient open quantity for sale")

	// ErrInvalidPeriod indicates that the requested calculation period is
	// malformed (end before start, month outside 1-12).
	ErrInvalidPeriod = errors.New("invalid calculation period")

	// ErrInvalidQuarter indicates a quarter number outside 1-4 or a
	// days-in-quarter value outside 1-92.
	ErrInvalidQuarter = errors.New("invalid quarter")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeQuantity indicates that a trade quantity is zero or negative.
	ErrNegativeQuantity = errors.New("quantity must be positive")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrClientHasTrades indicates that a client cannot be deleted because
	// trades reference it. Trade history is never silently discarded.
	ErrClientHasTrades = errors.New("client has recorded trades")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	ErrFailedToRetrieveClients = errors.New("failed to retrieve clients")
	ErrFailedToRetrieveStocks  = errors.New("failed to retrieve stocks")
	ErrFailedToRetrieveTrades  = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveSummary = errors.New("failed to retrieve summary")
	ErrFailedToRetrieveQuarter = errors.New("failed to retrieve quarter configuration")
	ErrFailedToRetrieveRate    = errors.New("failed to retrieve brokerage rate")
	ErrFailedToCalculate       = errors.New("failed to calculate brokerage")
	ErrFailedToRecordPayment   = errors.New("failed to record payment")
	ErrFailedToImportStocks    = errors.New("failed to import stocks")
	ErrInvalidCSVHeaders       = errors.New("invalid CSV headers")
	ErrFailedToGetVersionInfo  = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a trade references a stock that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
