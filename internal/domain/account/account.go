package account

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrEmptyName             = errors.New("account name cannot be empty")
	ErrInvalidType           = errors.New("invalid account type")
	ErrInvalidCurrencyFormat = errors.New("currency must be a 3-letter code")
)

// Type defines the kind of account
type Type string

const (
	TypeBank    Type = "BANK"
	TypeSavings Type = "SAVINGS"
	TypeWallet  Type = "WALLET"
	TypeCredit  Type = "CREDIT"
)

// Valid reports whether t is one of the declared account types
func (t Type) Valid() bool {
	switch t {
	case TypeBank, TypeSavings, TypeWallet, TypeCredit:
		return true
	}
	return false
}

// Account represents a single account tracked by the ledger.
// Balance is the authoritative current value; it is maintained incrementally
// by the ledger engine, never recomputed from the transaction history.
type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     Type            `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Icon     string          `json:"icon"`
}

// New creates an account with the given parameters
func New(id, name string, accountType Type, balance decimal.Decimal, currency, icon string) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !accountType.Valid() {
		return nil, ErrInvalidType
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrencyFormat
	}

	return &Account{
		ID:       id,
		Name:     name,
		Type:     accountType,
		Balance:  balance,
		Currency: currency,
		Icon:     icon,
	}, nil
}

// Apply adds a signed amount to the account balance. Pass the negated
// amount to revert a previously applied transaction.
func (a *Account) Apply(signed decimal.Decimal) {
	a.Balance = a.Balance.Add(signed)
}
