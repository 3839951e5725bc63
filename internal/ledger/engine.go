// Package ledger implements the consistency engine that keeps account
// balances, the transaction history, and the persisted collections mutually
// consistent. It is the only component permitted to mutate account balances.
//
// The central invariant: for every account, balance equals its seed balance
// plus the sum of signed amounts of all stored transactions attributed to it.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pocketfin-ledger/internal/domain/account"
	"github.com/pocketfin-ledger/internal/domain/budget"
	"github.com/pocketfin-ledger/internal/domain/profile"
	"github.com/pocketfin-ledger/internal/domain/recurring"
	"github.com/pocketfin-ledger/internal/domain/transaction"
	"github.com/pocketfin-ledger/internal/events"
	"github.com/pocketfin-ledger/internal/store"
	"github.com/shopspring/decimal"
)

// Collection keys. Names are part of the persisted layout and must not change.
const (
	accountsKey     = "pf_accounts"
	transactionsKey = "pf_transactions"
	budgetsKey      = "pf_budgets"
	recurringKey    = "pf_recurring"
	profileKey      = "pf_user_profile"
)

// Snapshot is a full, freshly-read view of all ledger collections
type Snapshot struct {
	Accounts     []account.Account                `json:"accounts"`
	Transactions []transaction.Transaction        `json:"transactions"`
	Budgets      []budget.Budget                  `json:"budgets"`
	Recurring    []recurring.RecurringTransaction `json:"recurring"`
	Onboarded    bool                             `json:"onboarded"`
	UserName     string                           `json:"userName"`
}

// Engine owns the persistent store and enforces the balance invariant.
// Mutations are serialized with an internal mutex: the design assumes exactly
// one logical writer at a time, and the mutex guarantees it within the
// process. Cross-process writers remain unsupported.
type Engine struct {
	store     store.Store
	publisher events.Publisher
	logger    *slog.Logger
	strict    bool
	now       func() time.Time
	mu        sync.Mutex
}

// NewEngine creates a ledger engine on top of the given store. With strict
// enabled, mutations that would violate the balance invariant are refused;
// otherwise they are applied permissively and reported.
func NewEngine(logger *slog.Logger, st store.Store, publisher events.Publisher, strict bool) *Engine {
	return &Engine{
		store:     st,
		publisher: publisher,
		logger:    logger,
		strict:    strict,
		now:       time.Now,
	}
}

// loadOrSeed reads a collection, seeding and persisting the defaults the
// first time the key is read. A key is seeded at most once.
func loadOrSeed[T any](ctx context.Context, e *Engine, key string, seed func() T) (T, error) {
	raw, err := e.store.Read(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		value := seed()
		if writeErr := e.writeJSON(ctx, key, value); writeErr != nil {
			var zero T
			return zero, writeErr
		}
		return value, nil
	}
	if err != nil {
		var zero T
		return zero, err
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode collection %s: %w", key, err)
	}
	return value, nil
}

func (e *Engine) writeJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", key, err)
	}
	return e.store.Write(ctx, key, raw)
}

func (e *Engine) loadAccounts(ctx context.Context) ([]account.Account, error) {
	return loadOrSeed(ctx, e, accountsKey, seedAccounts)
}

func (e *Engine) loadTransactions(ctx context.Context) ([]transaction.Transaction, error) {
	return loadOrSeed(ctx, e, transactionsKey, func() []transaction.Transaction {
		return seedTransactions(e.now())
	})
}

func (e *Engine) loadBudgets(ctx context.Context) ([]budget.Budget, error) {
	return loadOrSeed(ctx, e, budgetsKey, seedBudgets)
}

func (e *Engine) loadRecurring(ctx context.Context) ([]recurring.RecurringTransaction, error) {
	return loadOrSeed(ctx, e, recurringKey, seedRecurring)
}

// readProfile returns the stored profile, or nil when the user has not onboarded
func (e *Engine) readProfile(ctx context.Context) (*profile.UserProfile, error) {
	raw, err := e.store.Read(ctx, profileKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p profile.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

// InitializeProfile writes a fresh profile and resets every collection: two
// accounts (fixed ids "1" and "2"), empty transactions, default budgets,
// empty recurring entries. Calling it again overwrites the previous state.
func (e *Engine) InitializeProfile(ctx context.Context, name string, physicalBalance decimal.Decimal, digitalName string, digitalBalance decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prof := profile.UserProfile{Name: name, Onboarded: true, Joined: e.now()}
	if err := e.writeJSON(ctx, profileKey, prof); err != nil {
		return err
	}

	accounts := []account.Account{
		{ID: "1", Name: "Physical Wallet", Type: account.TypeWallet, Balance: physicalBalance, Currency: "USD", Icon: "wallet"},
		{ID: "2", Name: digitalName, Type: account.TypeBank, Balance: digitalBalance, Currency: "USD", Icon: "account_balance"},
	}
	if err := e.writeJSON(ctx, accountsKey, accounts); err != nil {
		return err
	}

	if err := e.writeJSON(ctx, transactionsKey, []transaction.Transaction{}); err != nil {
		return err
	}
	if err := e.writeJSON(ctx, budgetsKey, seedBudgets()); err != nil {
		return err
	}
	if err := e.writeJSON(ctx, recurringKey, []recurring.RecurringTransaction{}); err != nil {
		return err
	}

	e.logger.Info("Profile initialized", "name", name)
	e.publish(ctx, "profile", events.MutationEvent{
		Type:       events.TypeProfileInitialized,
		OccurredAt: e.now(),
	})

	return nil
}

// AddTransaction prepends t to the history and applies its signed amount to
// the owning account's balance. A duplicate id or an unknown account yields a
// Violation: permissive mode records the transaction anyway (an unknown
// account leaves every balance untouched), strict mode refuses the mutation.
func (e *Engine) AddTransaction(ctx context.Context, t transaction.Transaction) (*Violation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	transactions, err := e.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := e.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var violation *Violation
	for i := range transactions {
		if transactions[i].ID == t.ID {
			violation = &Violation{Kind: ViolationDuplicateTransaction, TransactionID: t.ID}
			break
		}
	}

	ownerIdx := -1
	for i := range accounts {
		if accounts[i].ID == t.AccountID {
			ownerIdx = i
			break
		}
	}
	if violation == nil && ownerIdx < 0 {
		violation = &Violation{Kind: ViolationAccountNotFound, TransactionID: t.ID, AccountID: t.AccountID}
	}

	if violation != nil {
		if e.strict {
			return violation, fmt.Errorf("refusing transaction %s: %w", t.ID, violation)
		}
		e.logger.Warn("Ledger invariant violation on add",
			"kind", string(violation.Kind),
			"transaction_id", t.ID,
			"account_id", t.AccountID,
		)
	}

	transactions = append([]transaction.Transaction{t}, transactions...)
	if ownerIdx >= 0 {
		accounts[ownerIdx].Apply(t.SignedAmount())
	}

	if err := e.writeJSON(ctx, transactionsKey, transactions); err != nil {
		return violation, err
	}
	if err := e.writeJSON(ctx, accountsKey, accounts); err != nil {
		return violation, err
	}

	e.publish(ctx, t.ID, events.MutationEvent{
		Type:          events.TypeTransactionAdded,
		TransactionID: t.ID,
		AccountID:     t.AccountID,
		OccurredAt:    e.now(),
	})

	return violation, nil
}

// DeleteTransaction removes the transaction and reverts the owning account's
// balance by the inverse signed amount, leaving the ledger as if the
// transaction had never been added. An unknown id is a silent no-op.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) (*Violation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	transactions, err := e.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range transactions {
		if transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	t := transactions[idx]

	accounts, err := e.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	ownerIdx := -1
	for i := range accounts {
		if accounts[i].ID == t.AccountID {
			ownerIdx = i
			break
		}
	}

	var violation *Violation
	if ownerIdx < 0 {
		violation = &Violation{Kind: ViolationAccountNotFound, TransactionID: id, AccountID: t.AccountID}
		if e.strict {
			return violation, fmt.Errorf("refusing delete of transaction %s: %w", id, violation)
		}
		e.logger.Warn("Ledger invariant violation on delete",
			"kind", string(violation.Kind),
			"transaction_id", id,
			"account_id", t.AccountID,
		)
	}

	if ownerIdx >= 0 {
		accounts[ownerIdx].Apply(t.SignedAmount().Neg())
	}
	transactions = append(transactions[:idx], transactions[idx+1:]...)

	if err := e.writeJSON(ctx, accountsKey, accounts); err != nil {
		return violation, err
	}
	if err := e.writeJSON(ctx, transactionsKey, transactions); err != nil {
		return violation, err
	}

	e.publish(ctx, id, events.MutationEvent{
		Type:          events.TypeTransactionDeleted,
		TransactionID: id,
		AccountID:     t.AccountID,
		OccurredAt:    e.now(),
	})

	return violation, nil
}

// AddAccount appends an account to the collection
func (e *Engine) AddAccount(ctx context.Context, acc account.Account) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.loadAccounts(ctx)
	if err != nil {
		return err
	}

	accounts = append(accounts, acc)
	if err := e.writeJSON(ctx, accountsKey, accounts); err != nil {
		return err
	}

	e.logger.Info("Account added", "account_id", acc.ID, "name", acc.Name)
	return nil
}

// ClearAll wipes the persistent store entirely, returning the system to its
// pre-onboarding state. The next read of each collection re-seeds defaults.
func (e *Engine) ClearAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Clear(ctx); err != nil {
		return err
	}

	e.logger.Info("Ledger cleared")
	e.publish(ctx, "ledger", events.MutationEvent{
		Type:       events.TypeLedgerCleared,
		OccurredAt: e.now(),
	})

	return nil
}

// Snapshot reads all four collections plus the profile fresh from the store.
// There is no caching; every call re-reads.
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := e.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := e.loadBudgets(ctx)
	if err != nil {
		return nil, err
	}
	recurringEntries, err := e.loadRecurring(ctx)
	if err != nil {
		return nil, err
	}
	prof, err := e.readProfile(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Accounts:     accounts,
		Transactions: transactions,
		Budgets:      budgets,
		Recurring:    recurringEntries,
	}
	if prof != nil {
		snap.Onboarded = prof.Onboarded
		snap.UserName = prof.Name
	}

	return snap, nil
}

// IsOnboarded reports whether a profile record exists
func (e *Engine) IsOnboarded(ctx context.Context) (bool, error) {
	return e.store.Exists(ctx, profileKey)
}

// publish sends a mutation event; failures are logged, never surfaced, so the
// event feed can never fail a mutation.
func (e *Engine) publish(ctx context.Context, key string, event events.MutationEvent) {
	if err := e.publisher.Publish(ctx, key, event); err != nil {
		e.logger.Warn("Failed to publish mutation event", "type", event.Type, "error", err)
	}
}
