package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketfin-ledger/internal/domain/account"
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/pocketfin-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// LedgerService is the engine surface the HTTP handlers depend on
type LedgerService interface {
	InitializeProfile(ctx context.Context, name string, physicalBalance decimal.Decimal, digitalName string, digitalBalance decimal.Decimal) error
	AddTransaction(ctx context.Context, t transaction.Transaction) (*ledger.Violation, error)
	DeleteTransaction(ctx context.Context, id string) (*ledger.Violation, error)
	AddAccount(ctx context.Context, acc account.Account) error
	ClearAll(ctx context.Context) error
	Snapshot(ctx context.Context) (*ledger.Snapshot, error)
}

// LedgerHandler handles HTTP requests for ledger mutations and reads
type LedgerHandler struct {
	service LedgerService
	logger  *slog.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(logger *slog.Logger, service LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service: service,
		logger:  logger,
	}
}

// InitializeProfile creates the user profile and resets the ledger to the
// onboarding state, returning the resulting snapshot.
func (h *LedgerHandler) InitializeProfile(c *gin.Context) {
	var req InitializeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.service.InitializeProfile(ctx, req.Name, req.PhysicalBalance, req.DigitalName, req.DigitalBalance); err != nil {
		h.logger.Error("Failed to initialize profile", "error", err)
		RespondInternalError(c)
		return
	}

	snap, err := h.service.Snapshot(ctx)
	if err != nil {
		h.logger.Error("Failed to read snapshot after profile init", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, snap)
}

// CreateTransaction records a transaction and applies it to the owning
// account's balance. Missing id and date are filled in by the server.
func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.Amount.IsNegative() {
		RespondBadRequest(c, "Amount must not be negative")
		return
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			h.logger.Error("Invalid transaction date", "date", req.Date, "error", err)
			RespondBadRequest(c, "Invalid date: must be RFC 3339")
			return
		}
		date = parsed
	}

	t := transaction.Transaction{
		ID:          req.ID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        transaction.Type(req.Type),
		Category:    req.Category,
		Date:        date,
		Description: req.Description,
		Merchant:    req.Merchant,
	}

	violation, err := h.service.AddTransaction(c.Request.Context(), t)
	if err != nil {
		h.respondMutationError(c, err, violation)
		return
	}

	RespondCreated(c, MutationResponse{Transaction: &t, Violation: violation})
}

// DeleteTransaction removes a transaction and reverts its balance effect.
// Deleting an unknown id succeeds with no content.
func (h *LedgerHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")

	violation, err := h.service.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		h.respondMutationError(c, err, violation)
		return
	}

	if violation != nil {
		RespondOK(c, MutationResponse{Violation: violation})
		return
	}

	RespondNoContent(c)
}

// CreateAccount adds an account to the ledger
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	acc, err := account.New(req.ID, req.Name, account.Type(req.Type), req.Balance, req.Currency, req.Icon)
	if err != nil {
		h.logger.Error("Invalid account", "error", err)
		RespondBadRequest(c, err.Error())
		return
	}

	if err := h.service.AddAccount(c.Request.Context(), *acc); err != nil {
		h.logger.Error("Failed to add account", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, MutationResponse{Account: acc})
}

// ClearLedger wipes all persisted state, returning the system to its
// pre-onboarding defaults.
func (h *LedgerHandler) ClearLedger(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		h.logger.Error("Failed to clear ledger", "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// GetSnapshot returns all collections plus the profile state in one read
func (h *LedgerHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read snapshot", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, snap)
}

// respondMutationError maps a refused mutation to its HTTP status. Violations
// only surface as errors in strict mode; anything else is a store failure.
func (h *LedgerHandler) respondMutationError(c *gin.Context, err error, violation *ledger.Violation) {
	var v *ledger.Violation
	if violation != nil {
		v = violation
	} else if !errors.As(err, &v) {
		v = nil
	}

	if v != nil {
		h.logger.Warn("Mutation refused", "kind", string(v.Kind), "error", err)
		switch v.Kind {
		case ledger.ViolationAccountNotFound:
			RespondNotFound(c, "Account not found: "+v.AccountID)
		case ledger.ViolationDuplicateTransaction:
			RespondConflict(c, "Duplicate transaction id: "+v.TransactionID)
		default:
			RespondConflict(c, v.Error())
		}
		return
	}

	h.logger.Error("Mutation failed", "error", err)
	RespondInternalError(c)
}
