package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/pocketfin-ledger/internal/views"
	"github.com/shopspring/decimal"
)

// ViewHandler serves the derived views computed from a fresh snapshot
type ViewHandler struct {
	service LedgerService
	logger  *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(logger *slog.Logger, service LedgerService) *ViewHandler {
	return &ViewHandler{
		service: service,
		logger:  logger,
	}
}

// SummaryResponse is the dashboard overview payload
type SummaryResponse struct {
	NetWorth           decimal.Decimal           `json:"netWorth"`
	TotalIncome        decimal.Decimal           `json:"totalIncome"`
	TotalExpense       decimal.Decimal           `json:"totalExpense"`
	RecentTransactions []transaction.Transaction `json:"recentTransactions"`
	Budgets            views.BudgetSummary       `json:"budgets"`
}

// GetSummary returns net worth, income/expense totals, the recent
// transactions, and the budget rollup. The recent count is controlled by the
// optional "recent" query parameter.
func (h *ViewHandler) GetSummary(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read snapshot", "error", err)
		RespondInternalError(c)
		return
	}

	recent := views.DefaultRecentCount
	if raw := c.Query("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondBadRequest(c, "Invalid recent parameter")
			return
		}
		recent = n
	}

	RespondOK(c, SummaryResponse{
		NetWorth:           views.NetWorth(snap.Accounts),
		TotalIncome:        views.TotalIncome(snap.Transactions),
		TotalExpense:       views.TotalExpense(snap.Transactions),
		RecentTransactions: views.RecentTransactions(snap.Transactions, recent),
		Budgets:            views.SummarizeBudgets(snap.Budgets),
	})
}

// GetCategoryBreakdown returns per-category expense totals with percentages
func (h *ViewHandler) GetCategoryBreakdown(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read snapshot", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, views.CategoryBreakdown(snap.Transactions))
}

// GetBalanceTrend returns the 30-day trend series scaled to current net worth
func (h *ViewHandler) GetBalanceTrend(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read snapshot", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, views.BalanceTrend(views.NetWorth(snap.Accounts)))
}
