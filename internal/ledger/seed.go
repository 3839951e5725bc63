package ledger

import (
	"time"

	"github.com/pocketfin-ledger/internal/domain/account"
	"github.com/pocketfin-ledger/internal/domain/budget"
	"github.com/pocketfin-ledger/internal/domain/recurring"
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Default seed sets, persisted the first time an unseeded collection is read.
// Values mirror the original client's starter data.

func seedAccounts() []account.Account {
	return []account.Account{
		{ID: "1", Name: "Main Bank Account", Type: account.TypeBank, Balance: decimal.RequireFromString("5210.00"), Currency: "USD", Icon: "account_balance"},
		{ID: "2", Name: "Savings Account", Type: account.TypeSavings, Balance: decimal.RequireFromString("10000.00"), Currency: "USD", Icon: "savings"},
		{ID: "3", Name: "Visa Credit Card", Type: account.TypeCredit, Balance: decimal.RequireFromString("-350.50"), Currency: "USD", Icon: "credit_card"},
		{ID: "4", Name: "Physical Wallet", Type: account.TypeWallet, Balance: decimal.RequireFromString("80.00"), Currency: "USD", Icon: "wallet"},
	}
}

// seedTransactions dates the starter history relative to now, newest first
func seedTransactions(now time.Time) []transaction.Transaction {
	day := 24 * time.Hour
	return []transaction.Transaction{
		{ID: "101", AccountID: "1", Amount: decimal.RequireFromString("1200.00"), Type: transaction.TypeExpense, Category: "Rent", Date: now, Description: "Monthly Rent", Merchant: "Landlord"},
		{ID: "102", AccountID: "1", Amount: decimal.RequireFromString("6.50"), Type: transaction.TypeExpense, Category: "Food", Date: now.Add(-1 * day), Description: "Morning Coffee", Merchant: "Starbucks"},
		{ID: "103", AccountID: "1", Amount: decimal.RequireFromString("2500.00"), Type: transaction.TypeIncome, Category: "Salary", Date: now.Add(-2 * day), Description: "Paycheck", Merchant: "Employer"},
		{ID: "104", AccountID: "1", Amount: decimal.RequireFromString("30.00"), Type: transaction.TypeExpense, Category: "Transport", Date: now.Add(-3 * day), Description: "Metro Card Refill", Merchant: "MTA"},
		{ID: "105", AccountID: "3", Amount: decimal.RequireFromString("115.30"), Type: transaction.TypeExpense, Category: "Shopping", Date: now.Add(-4 * day), Description: "New Clothes", Merchant: "H&M"},
	}
}

func seedBudgets() []budget.Budget {
	return []budget.Budget{
		{ID: "b1", Category: "Groceries", Limit: decimal.RequireFromString("400"), Spent: decimal.RequireFromString("250"), Period: budget.PeriodMonthly, Color: "#34c759"},
		{ID: "b2", Category: "Transport", Limit: decimal.RequireFromString("150"), Spent: decimal.RequireFromString("130"), Period: budget.PeriodMonthly, Color: "#ff9500"},
		{ID: "b3", Category: "Shopping", Limit: decimal.RequireFromString("500"), Spent: decimal.RequireFromString("550"), Period: budget.PeriodMonthly, Color: "#ff4d4d"},
		{ID: "b4", Category: "Entertainment", Limit: decimal.RequireFromString("200"), Spent: decimal.RequireFromString("80"), Period: budget.PeriodMonthly, Color: "#13c8ec"},
	}
}

func seedRecurring() []recurring.RecurringTransaction {
	return []recurring.RecurringTransaction{
		{ID: "r1", Name: "Netflix", Amount: decimal.RequireFromString("15.99"), Type: transaction.TypeExpense, Frequency: recurring.FrequencyMonthly, NextDate: "2023-10-28", Icon: "movie"},
		{ID: "r2", Name: "Spotify Premium", Amount: decimal.RequireFromString("10.99"), Type: transaction.TypeExpense, Frequency: recurring.FrequencyMonthly, NextDate: "2023-11-05", Icon: "music_note"},
		{ID: "r3", Name: "Rent Payment", Amount: decimal.RequireFromString("1850.00"), Type: transaction.TypeExpense, Frequency: recurring.FrequencyMonthly, NextDate: "2023-11-01", Icon: "home"},
		{ID: "r4", Name: "Monthly Salary", Amount: decimal.RequireFromString("4500.00"), Type: transaction.TypeIncome, Frequency: recurring.FrequencyMonthly, NextDate: "2023-10-31", Icon: "work"},
	}
}
