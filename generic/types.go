/*
Package generic provides the domain-agnostic building blocks of the grant engine.

PURPOSE:
  Holds the pieces the vacation package and the stores share without
  depending on each other: identifiers, amounts, the clock, date math,
  errors and the grant ledger interface.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 5 days)
  - Grant: An immutable ledger entry recording a dispatched bonus
  - EmployeeID: Type-safe identifier

DESIGN PRINCIPLES:
  1. Immutability: Grants are never modified
  2. Precision: Ledger values use decimal.Decimal
  3. Type Safety: Employee IDs are not bare strings

SEE ALSO:
  - time.go: Clock and YearsSince
  - store.go: GrantLedger
*/
package generic

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitDays  Unit = "days"
	UnitHours Unit = "hours"
)

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

// ParseAmount reads a stored decimal string. Unparseable input yields zero.
func ParseAmount(value string, unit Unit) Amount {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{Value: decimal.Zero, Unit: unit}
	}
	return Amount{Value: d, Unit: unit}
}

func (a Amount) Add(b Amount) Amount { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) String() string { return a.Value.String() + " " + string(a.Unit) }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type GrantID string

// =============================================================================
// GRANT - Record of one dispatched notification
// =============================================================================

type Grant struct {
	ID            GrantID
	EmployeeID    EmployeeID
	Recipient     string
	YearsEmployed int
	Granted       Amount // days announced as granted
	Balance       Amount // total announced to the employee
	GrantedAt     time.Time
}
