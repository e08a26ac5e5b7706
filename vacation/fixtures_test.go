package vacation_test

import (
	"fmt"
	"time"

	"github.com/warp/vacation-grant/generic"
	"github.com/warp/vacation-grant/vacation"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var jan2025 = generic.NewDate(2025, time.January, 1)

func date(year int, month time.Month, day int) time.Time {
	return generic.NewDate(year, month, day)
}

// sixEmployees returns the six-employee roster: employee i started on
// Jan 1 of 2021-i and has i vacation days on payroll.
func sixEmployees() ([]vacation.PayrollRecord, []vacation.AddressRecord, []vacation.EmployeeRecord) {
	end := jan2025
	var (
		payroll   []vacation.PayrollRecord
		addresses []vacation.AddressRecord
		employees []vacation.EmployeeRecord
	)
	for i := 1; i <= 6; i++ {
		id := generic.EmployeeID(fmt.Sprint(i))
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
			StartDate: date(2021-i, time.January, 1),
			EndDate:   &end,
		})
	}
	return payroll, addresses, employees
}

func sixEmployeeDirectory() ([]vacation.PayrollRecord, *vacation.Directory) {
	payroll, addresses, employees := sixEmployees()
	return payroll, vacation.NewDirectory(addresses, employees)
}
