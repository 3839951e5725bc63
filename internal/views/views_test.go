package views

import (
	"testing"
	"time"

	"github.com/pocketfin-ledger/internal/domain/account"
	"github.com/pocketfin-ledger/internal/domain/budget"
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNetWorth(t *testing.T) {
	accounts := []account.Account{
		{ID: "1", Balance: dec("100.50")},
		{ID: "2", Balance: dec("-40.25")},
		{ID: "3", Balance: dec("0")},
	}

	assert.True(t, NetWorth(accounts).Equal(dec("60.25")))
	assert.True(t, NetWorth(nil).Equal(decimal.Zero))
}

func TestIncomeAndExpenseTotals(t *testing.T) {
	transactions := []transaction.Transaction{
		{ID: "1", Amount: dec("1000"), Type: transaction.TypeIncome},
		{ID: "2", Amount: dec("200"), Type: transaction.TypeExpense},
		{ID: "3", Amount: dec("50"), Type: transaction.TypeExpense},
		{ID: "4", Amount: dec("75"), Type: transaction.TypeTransfer},
	}

	assert.True(t, TotalIncome(transactions).Equal(dec("1000")))
	// Transfers are not expenses for reporting purposes
	assert.True(t, TotalExpense(transactions).Equal(dec("250")))
}

func TestCategoryBreakdown(t *testing.T) {
	transactions := []transaction.Transaction{
		{ID: "1", Amount: dec("60"), Type: transaction.TypeExpense, Category: "Food"},
		{ID: "2", Amount: dec("40"), Type: transaction.TypeExpense, Category: "Transport"},
		{ID: "3", Amount: dec("40"), Type: transaction.TypeExpense, Category: "Food"},
		{ID: "4", Amount: dec("500"), Type: transaction.TypeIncome, Category: "Salary"},
	}

	breakdown := CategoryBreakdown(transactions)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "Food", breakdown[0].Category)
	assert.True(t, breakdown[0].Total.Equal(dec("100")))
	assert.InDelta(t, 71.43, breakdown[0].Percentage, 0.01)

	assert.Equal(t, "Transport", breakdown[1].Category)
	assert.True(t, breakdown[1].Total.Equal(dec("40")))
	assert.InDelta(t, 28.57, breakdown[1].Percentage, 0.01)
}

func TestCategoryBreakdown_NoExpenses(t *testing.T) {
	transactions := []transaction.Transaction{
		{ID: "1", Amount: dec("500"), Type: transaction.TypeIncome, Category: "Salary"},
	}

	assert.Empty(t, CategoryBreakdown(transactions))
	assert.Empty(t, CategoryBreakdown(nil))
}

func TestCategoryBreakdown_TiesOrderedByName(t *testing.T) {
	transactions := []transaction.Transaction{
		{ID: "1", Amount: dec("50"), Type: transaction.TypeExpense, Category: "Transport"},
		{ID: "2", Amount: dec("50"), Type: transaction.TypeExpense, Category: "Food"},
	}

	breakdown := CategoryBreakdown(transactions)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Food", breakdown[0].Category)
	assert.Equal(t, "Transport", breakdown[1].Category)
}

func TestRecentTransactions(t *testing.T) {
	var transactions []transaction.Transaction
	for i := 0; i < 8; i++ {
		transactions = append(transactions, transaction.Transaction{
			ID:   string(rune('a' + i)),
			Date: time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}

	recent := RecentTransactions(transactions, 0)
	require.Len(t, recent, DefaultRecentCount)
	assert.Equal(t, "a", recent[0].ID)

	assert.Len(t, RecentTransactions(transactions, 3), 3)
	assert.Len(t, RecentTransactions(transactions, 20), 8)
	assert.Empty(t, RecentTransactions(nil, 5))
}

func TestSummarizeBudgets(t *testing.T) {
	budgets := []budget.Budget{
		{ID: "b1", Limit: dec("400"), Spent: dec("250")},
		{ID: "b2", Limit: dec("100"), Spent: dec("130")},
	}

	summary := SummarizeBudgets(budgets)
	assert.True(t, summary.TotalLimit.Equal(dec("500")))
	assert.True(t, summary.TotalSpent.Equal(dec("380")))
	assert.True(t, summary.Remaining.Equal(dec("120")))
	assert.InDelta(t, 76.0, summary.PercentUsed, 0.001)
}

func TestSummarizeBudgets_PercentCappedAt100(t *testing.T) {
	budgets := []budget.Budget{
		{ID: "b1", Limit: dec("100"), Spent: dec("250")},
	}

	summary := SummarizeBudgets(budgets)
	assert.Equal(t, 100.0, summary.PercentUsed)
	assert.True(t, summary.Remaining.Equal(dec("-150")))
}

func TestSummarizeBudgets_Empty(t *testing.T) {
	summary := SummarizeBudgets(nil)
	assert.True(t, summary.TotalLimit.Equal(decimal.Zero))
	assert.Equal(t, 0.0, summary.PercentUsed)
}

func TestBalanceTrend(t *testing.T) {
	points := BalanceTrend(dec("1000"))
	require.Len(t, points, 7)

	assert.Equal(t, "1", points[0].Day)
	assert.True(t, points[0].Value.Equal(dec("920")))
	assert.Equal(t, "10", points[2].Day)
	assert.True(t, points[2].Value.Equal(dec("910")))
	assert.Equal(t, "30", points[6].Day)
	assert.True(t, points[6].Value.Equal(dec("1000")))
}

func TestBalanceTrend_ZeroNetWorth(t *testing.T) {
	for _, p := range BalanceTrend(decimal.Zero) {
		assert.True(t, p.Value.Equal(decimal.Zero))
	}
}
