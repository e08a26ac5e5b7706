/*
demo.go - Demo roster

PURPOSE:
  Six employees, all with addresses and payroll entries, so a grant run can
  be tried end to end from either binary.

  Employee i (1..6) started on Jan 1 of 2021-i, left on 2025-01-01,
  and has i vacation days on payroll.

NOTE:
  LoadDemo resets the database. Only use in development/demo environments.
*/
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/warp/vacation-grant/generic"
	"github.com/warp/vacation-grant/vacation"
)

// DemoRoster returns fresh copies of the demo records.
func DemoRoster() ([]vacation.PayrollRecord, []vacation.AddressRecord, []vacation.EmployeeRecord) {
	var (
		payroll   []vacation.PayrollRecord
		addresses []vacation.AddressRecord
		employees []vacation.EmployeeRecord
	)
	for i := 1; i <= 6; i++ {
		id := generic.EmployeeID(fmt.Sprint(i))
		end := generic.NewDate(2025, time.January, 1)
		payroll = append(payroll, vacation.PayrollRecord{EmployeeID: id, VacationDays: i})
		addresses = append(addresses, vacation.AddressRecord{
			EmployeeID: id,
			First:      "emp",
			Last:       fmt.Sprintf("number %d", i),
			Email:      fmt.Sprintf("emp%d@gmail.com", i),
		})
		employees = append(employees, vacation.EmployeeRecord{
			ID:        id,
			Name:      fmt.Sprintf("emp number %d", i),
			StartDate: generic.NewDate(2021-i, time.January, 1),
			EndDate:   &end,
		})
	}
	return payroll, addresses, employees
}

// LoadDemo resets the store and writes the demo roster.
func (s *Store) LoadDemo(ctx context.Context) error {
	if err := s.Reset(ctx); err != nil {
		return err
	}

	payroll, addresses, employees := DemoRoster()
	for _, e := range employees {
		if err := s.SaveEmployee(ctx, e); err != nil {
			return fmt.Errorf("save employee %s: %w", e.ID, err)
		}
	}
	for _, a := range addresses {
		if err := s.SaveAddress(ctx, a); err != nil {
			return fmt.Errorf("save address %s: %w", a.EmployeeID, err)
		}
	}
	for _, p := range payroll {
		if err := s.AppendPayroll(ctx, p); err != nil {
			return fmt.Errorf("save payroll %s: %w", p.EmployeeID, err)
		}
	}
	return nil
}
