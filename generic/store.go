package generic

import "context"

// =============================================================================
// GRANT LEDGER - Append-only record of dispatched grants
// =============================================================================

// GrantLedger records grants after their notification was sent.
// It is APPEND-ONLY and has no idempotency key: sending the same payroll
// twice records two grants.
type GrantLedger interface {
	Record(ctx context.Context, grant Grant) error
}

// GrantReader lists recorded grants. An empty employeeID lists all of them,
// ordered by GrantedAt.
type GrantReader interface {
	ListGrants(ctx context.Context, employeeID EmployeeID) ([]Grant, error)
}
