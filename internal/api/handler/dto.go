package handler

import (
	"github.com/pocketfin-ledger/internal/domain/account"
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/pocketfin-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// InitializeProfileRequest starts a fresh ledger for a named user with the
// two onboarding accounts.
type InitializeProfileRequest struct {
	Name            string          `json:"name" binding:"required"`
	PhysicalBalance decimal.Decimal `json:"physicalBalance"`
	DigitalName     string          `json:"digitalName" binding:"required"`
	DigitalBalance  decimal.Decimal `json:"digitalBalance"`
}

// CreateTransactionRequest represents a request to record a transaction.
// ID and Date are optional; the server fills them in when absent.
type CreateTransactionRequest struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Category    string          `json:"category" binding:"required"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Merchant    string          `json:"merchant"`
}

// CreateAccountRequest represents a request to add an account
type CreateAccountRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name" binding:"required"`
	Type     string          `json:"type" binding:"required,oneof=BANK SAVINGS WALLET CREDIT"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency" binding:"required,len=3"`
	Icon     string          `json:"icon"`
}

// MutationResponse pairs the applied mutation with the invariant violation it
// triggered, if any. Violation is only populated in permissive mode; strict
// mode refuses violating mutations outright.
type MutationResponse struct {
	Transaction *transaction.Transaction `json:"transaction,omitempty"`
	Account     *account.Account         `json:"account,omitempty"`
	Violation   *ledger.Violation        `json:"violation,omitempty"`
}
