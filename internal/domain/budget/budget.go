package budget

import "github.com/shopspring/decimal"

// Period defines the time window a budget covers
type Period string

const (
	PeriodMonthly Period = "MONTHLY"
	PeriodWeekly  Period = "WEEKLY"
	PeriodAnnual  Period = "ANNUAL"
)

// Budget tracks a spending limit for a category.
// Spent is a static stored value seeded with the budget; it is not derived
// from the transaction history (see DESIGN.md).
type Budget struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Spent    decimal.Decimal `json:"spent"`
	Period   Period          `json:"period"`
	Color    string          `json:"color"`
}

// Utilization returns the spent/limit ratio as a percentage, capped at 100.
// A non-positive limit yields 0.
func (b *Budget) Utilization() float64 {
	if !b.Limit.IsPositive() {
		return 0
	}
	pct, _ := b.Spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	return pct
}

// IsOverBudget reports whether spending exceeds the limit
func (b *Budget) IsOverBudget() bool {
	return b.Spent.GreaterThan(b.Limit)
}
