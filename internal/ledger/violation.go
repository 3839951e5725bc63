package ledger

// ViolationKind identifies a detected balance-invariant violation
type ViolationKind string

const (
	// ViolationAccountNotFound means a transaction references an account
	// that does not exist; the transaction is recorded but unattributed.
	ViolationAccountNotFound ViolationKind = "ACCOUNT_NOT_FOUND"

	// ViolationDuplicateTransaction means a transaction reuses an id that
	// is already present in the history.
	ViolationDuplicateTransaction ViolationKind = "DUPLICATE_TRANSACTION_ID"
)

// Violation describes a mutation that would leave (or has left) the ledger in
// a logically inconsistent state. In permissive mode the engine applies the
// mutation anyway and returns the violation on an explicit channel so callers
// can observe it; in strict mode the mutation is refused and the violation is
// returned as the error.
type Violation struct {
	Kind          ViolationKind `json:"kind"`
	TransactionID string        `json:"transactionId,omitempty"`
	AccountID     string        `json:"accountId,omitempty"`
}

func (v *Violation) Error() string {
	switch v.Kind {
	case ViolationAccountNotFound:
		return "account not found: " + v.AccountID
	case ViolationDuplicateTransaction:
		return "duplicate transaction id: " + v.TransactionID
	}
	return string(v.Kind)
}
