/*
errors.go - Centralized error types for the grant engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The vacation package returns these (or structured errors unwrapping to
  them); the API maps them to HTTP status codes.

ERROR CATEGORIES:
  1. Lookup errors - A payroll record references an unknown employee
  2. Validation errors - Malformed dates or records from clients
  3. Store errors - Database-level failures (wrapped with %w)
  4. Ledger errors - Email sent but the grant was not recorded (ErrLedger)

USAGE:
  if errors.Is(err, generic.ErrEmployeeNotFound) {
      // roster is inconsistent; the batch stopped at this record
  }

SEE ALSO:
  - vacation/calculator.go: Returns EmployeeNotFoundError
  - api/handlers.go: Maps errors to responses
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a payroll record has an address
	// entry but no employee entry.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrAddressNotFound is returned by lookups that require an address.
	// The batch itself never returns it: a missing address is a skip.
	ErrAddressNotFound = errors.New("address not found")

	// ErrInvalidDate is returned when a calendar date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRecord is returned when a client submits an incomplete record.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrLedger is returned when a grant could not be recorded. The email for
	// that grant has already been sent; re-running would send it again.
	ErrLedger = errors.New("grant ledger write failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// EmployeeNotFoundError names the payroll entry that could not be joined.
type EmployeeNotFoundError struct {
	EmployeeID EmployeeID
}

func (e *EmployeeNotFoundError) Error() string {
	return fmt.Sprintf("employee not found: %q", e.EmployeeID)
}

func (e *EmployeeNotFoundError) Unwrap() error {
	return ErrEmployeeNotFound
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrAddressNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRecord)
}
