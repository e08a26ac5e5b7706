// Package vacation computes tenure-based bonus vacation and notifies employees.
// It joins payroll entries against address and employee lookups and sends one
// email per joined entry through an injected email.Sender.
package vacation

import (
	"time"

	"github.com/warp/vacation-grant/generic"
)

// =============================================================================
// INPUT RECORDS
// =============================================================================

// PayrollRecord is one employee's existing vacation entitlement.
type PayrollRecord struct {
	EmployeeID   generic.EmployeeID
	VacationDays int
}

// AddressRecord is an address book entry. First and Last are carried for
// completeness; the notification uses the employee name instead.
type AddressRecord struct {
	EmployeeID generic.EmployeeID
	First      string
	Last       string
	Email      string
}

// EmployeeRecord is the HR view of an employee. EndDate is never consulted
// when computing tenure.
type EmployeeRecord struct {
	ID        generic.EmployeeID
	Name      string
	StartDate time.Time
	EndDate   *time.Time
}

// =============================================================================
// DIRECTORY - Read-only lookup tables
// =============================================================================

// Directory indexes addresses and employees by employee ID. It is built once
// and never mutated, so it can be shared without locking.
type Directory struct {
	addresses map[generic.EmployeeID]AddressRecord
	employees map[generic.EmployeeID]EmployeeRecord
}

// NewDirectory builds the lookup tables. When an ID appears twice the later
// record wins.
func NewDirectory(addresses []AddressRecord, employees []EmployeeRecord) *Directory {
	d := &Directory{
		addresses: make(map[generic.EmployeeID]AddressRecord, len(addresses)),
		employees: make(map[generic.EmployeeID]EmployeeRecord, len(employees)),
	}
	for _, a := range addresses {
		d.addresses[a.EmployeeID] = a
	}
	for _, e := range employees {
		d.employees[e.ID] = e
	}
	return d
}

func (d *Directory) Address(id generic.EmployeeID) (AddressRecord, bool) {
	a, ok := d.addresses[id]
	return a, ok
}

func (d *Directory) Employee(id generic.EmployeeID) (EmployeeRecord, bool) {
	e, ok := d.employees[id]
	return e, ok
}
