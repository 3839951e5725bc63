package recurring

import (
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Frequency defines how often a recurring entry repeats
type Frequency string

const (
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyAnnual  Frequency = "ANNUAL"
)

// RecurringTransaction is a display-only template for an upcoming payment.
// It is never materialized into a real transaction automatically.
type RecurringTransaction struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Amount    decimal.Decimal  `json:"amount"`
	Type      transaction.Type `json:"type"`
	Frequency Frequency        `json:"frequency"`
	NextDate  string           `json:"nextDate"` // Date-only, e.g. "2023-10-28"
	Icon      string           `json:"icon"`
}
