package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type defines possible transaction kinds.
// TypeTransfer is declared for wire compatibility but no dual-entry posting
// logic exists for it; it is treated like an expense when applied to a balance.
type Type string

const (
	TypeIncome   Type = "INCOME"
	TypeExpense  Type = "EXPENSE"
	TypeTransfer Type = "TRANSFER"
)

// Valid reports whether t is one of the declared transaction types
func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// Transaction represents a single immutable ledger entry. There is no update
// operation; a transaction is either present or deleted.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"` // Non-negative; sign is derived from Type
	Type        Type            `json:"type"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Merchant    string          `json:"merchant,omitempty"`
}

// SignedAmount returns the amount with the sign applied per the transaction
// type: positive for income, negative otherwise.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
