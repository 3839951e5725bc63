// Package views provides the derived-data functions computed from a ledger
// snapshot: net worth, income/expense totals, category breakdowns, budget
// summaries, and the dashboard trend series. All functions are pure and
// stateless; nothing here is cached or incrementally maintained.
package views

import (
	"sort"

	"github.com/pocketfin-ledger/internal/domain/account"
	"github.com/pocketfin-ledger/internal/domain/budget"
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// DefaultRecentCount is how many transactions the "recent" view returns
const DefaultRecentCount = 5

// NetWorth sums the balances of all accounts
func NetWorth(accounts []account.Account) decimal.Decimal {
	total := decimal.Zero
	for i := range accounts {
		total = total.Add(accounts[i].Balance)
	}
	return total
}

// TotalIncome sums the amounts of all income transactions
func TotalIncome(transactions []transaction.Transaction) decimal.Decimal {
	return totalOfType(transactions, transaction.TypeIncome)
}

// TotalExpense sums the amounts of all expense transactions
func TotalExpense(transactions []transaction.Transaction) decimal.Decimal {
	return totalOfType(transactions, transaction.TypeExpense)
}

func totalOfType(transactions []transaction.Transaction, t transaction.Type) decimal.Decimal {
	total := decimal.Zero
	for i := range transactions {
		if transactions[i].Type == t {
			total = total.Add(transactions[i].Amount)
		}
	}
	return total
}

// CategoryTotal is one category's share of total expenses
type CategoryTotal struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
}

// CategoryBreakdown groups expense transactions by category, summing the
// amount per category. Percentages are relative to total expenses; when
// total expenses are zero every percentage is zero. Categories are ordered
// by total descending, then by name, so the output is deterministic.
func CategoryBreakdown(transactions []transaction.Transaction) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for i := range transactions {
		if transactions[i].Type != transaction.TypeExpense {
			continue
		}
		sums[transactions[i].Category] = sums[transactions[i].Category].Add(transactions[i].Amount)
	}

	totalExpense := TotalExpense(transactions)

	breakdown := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		ct := CategoryTotal{Category: category, Total: total}
		if totalExpense.IsPositive() {
			ct.Percentage, _ = total.Div(totalExpense).Mul(decimal.NewFromInt(100)).Float64()
		}
		breakdown = append(breakdown, ct)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Total.Equal(breakdown[j].Total) {
			return breakdown[i].Total.GreaterThan(breakdown[j].Total)
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown
}

// RecentTransactions returns the first n transactions in stored
// (newest-first) order. Non-positive n falls back to DefaultRecentCount.
func RecentTransactions(transactions []transaction.Transaction, n int) []transaction.Transaction {
	if n <= 0 {
		n = DefaultRecentCount
	}
	if n > len(transactions) {
		n = len(transactions)
	}
	return transactions[:n]
}

// BudgetSummary aggregates all budgets for the overview card
type BudgetSummary struct {
	TotalLimit  decimal.Decimal `json:"totalLimit"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percentUsed"`
}

// SummarizeBudgets totals limits and spending across all budgets. The percent
// used is capped at 100; a zero total limit yields 0.
func SummarizeBudgets(budgets []budget.Budget) BudgetSummary {
	totalLimit := decimal.Zero
	totalSpent := decimal.Zero
	for i := range budgets {
		totalLimit = totalLimit.Add(budgets[i].Limit)
		totalSpent = totalSpent.Add(budgets[i].Spent)
	}

	summary := BudgetSummary{
		TotalLimit: totalLimit,
		TotalSpent: totalSpent,
		Remaining:  totalLimit.Sub(totalSpent),
	}
	if totalLimit.IsPositive() {
		pct, _ := totalSpent.Div(totalLimit).Mul(decimal.NewFromInt(100)).Float64()
		if pct > 100 {
			pct = 100
		}
		summary.PercentUsed = pct
	}

	return summary
}

// TrendPoint is one point of the dashboard balance trend series
type TrendPoint struct {
	Day   string          `json:"day"`
	Value decimal.Decimal `json:"value"`
}

// trendMultipliers is the fixed 30-day shape the dashboard chart renders,
// scaled to the current net worth.
var trendMultipliers = []struct {
	day        string
	multiplier string
}{
	{"1", "0.92"},
	{"5", "0.94"},
	{"10", "0.91"},
	{"15", "0.96"},
	{"20", "0.95"},
	{"25", "0.98"},
	{"30", "1"},
}

// BalanceTrend scales the fixed trend shape to the given net worth
func BalanceTrend(netWorth decimal.Decimal) []TrendPoint {
	points := make([]TrendPoint, 0, len(trendMultipliers))
	for _, m := range trendMultipliers {
		points = append(points, TrendPoint{
			Day:   m.day,
			Value: netWorth.Mul(decimal.RequireFromString(m.multiplier)),
		})
	}
	return points
}
