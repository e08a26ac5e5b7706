/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
*/
package api

// EmployeeDTO is an employee joined with its address, if any.
type EmployeeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	First     string `json:"first,omitempty"`
	Last      string `json:"last,omitempty"`
	Email     string `json:"email,omitempty"`
}

// CreateEmployeeRequest creates an employee and, when Email is set, its address.
type CreateEmployeeRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	First     string `json:"first,omitempty"`
	Last      string `json:"last,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Payroll entry status values.
const (
	PayrollReady            = "ready"
	PayrollNoAddress        = "skipped_no_address"
	PayrollEmployeeNotFound = "employee_not_found"
)

// PayrollEntryDTO previews what the next grant run does with an entry.
type PayrollEntryDTO struct {
	EmployeeID    string `json:"employee_id"`
	VacationDays  int    `json:"vacation_days"`
	Status        string `json:"status"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	YearsEmployed *int   `json:"years_employed,omitempty"`
	NewBalance    *int   `json:"new_balance,omitempty"`
}

// AppendPayrollRequest adds a payroll entry.
type AppendPayrollRequest struct {
	EmployeeID   string `json:"employee_id"`
	VacationDays int    `json:"vacation_days"`
}

// GrantDTO is a recorded grant.
type GrantDTO struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	Recipient     string `json:"recipient"`
	YearsEmployed int    `json:"years_employed"`
	GrantedDays   string `json:"granted_days"`
	Balance       string `json:"balance"`
	Unit          string `json:"unit"`
	GrantedAt     string `json:"granted_at"`
}

// RunGrantsResponse lists the grants sent by one batch run.
type RunGrantsResponse struct {
	Count  int        `json:"count"`
	Grants []GrantDTO `json:"grants"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
