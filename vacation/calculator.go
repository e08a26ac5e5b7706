package vacation

import (
	"time"

	"github.com/warp/vacation-grant/generic"
)

// Calculation is the result of CalculateVacation.
type Calculation struct {
	Name          string
	YearsEmployed int
	NewBalance    int
}

// CalculateVacation grants one bonus day per whole year of service.
// Tenure runs from StartDate to now, regardless of EndDate.
func CalculateVacation(payroll PayrollRecord, employee *EmployeeRecord, now time.Time) (Calculation, error) {
	if employee == nil {
		return Calculation{}, &generic.EmployeeNotFoundError{EmployeeID: payroll.EmployeeID}
	}

	years := generic.YearsSince(employee.StartDate, now)
	return Calculation{
		Name:          employee.Name,
		YearsEmployed: years,
		NewBalance:    years + payroll.VacationDays,
	}, nil
}
