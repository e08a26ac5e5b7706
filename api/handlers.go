/*
handlers.go - HTTP API handlers for the vacation grant service

ENDPOINTS:
  Employees:
    GET    /api/employees          List employees with addresses
    POST   /api/employees          Create employee (+ address)

  Payroll:
    GET    /api/payroll            Payroll entries with a vacation preview
    POST   /api/payroll            Append a payroll entry

  Grants:
    POST   /api/grants/run         Run the batch over the stored roster
    GET    /api/grants             Recorded grants (?employee_id=)

  Scenarios:
    POST   /api/scenarios/demo     Reset and load the demo roster

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 422: Roster inconsistent (payroll entry without employee)
  - 502: Email provider failure
  - 500: Internal errors, including ledger_failed (email sent, grant not
         recorded: the grants listed in details were all delivered)

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/warp/vacation-grant/email"
	"github.com/warp/vacation-grant/generic"
	"github.com/warp/vacation-grant/generic/store"
	"github.com/warp/vacation-grant/store/sqlite"
	"github.com/warp/vacation-grant/vacation"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Sender email.Sender
	Clock  generic.Clock
}

// NewHandler creates a handler on the system clock.
func NewHandler(s *sqlite.Store, sender email.Sender) *Handler {
	return &Handler{
		Store:  s,
		Sender: sender,
		Clock:  generic.RealClock{},
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees joined with their address.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	addresses, err := h.Store.ListAddresses(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list addresses", err)
		return
	}
	dir := vacation.NewDirectory(addresses, nil)

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dto := EmployeeDTO{
			ID:        string(e.ID),
			Name:      e.Name,
			StartDate: generic.FormatDate(e.StartDate),
		}
		if e.EndDate != nil {
			dto.EndDate = generic.FormatDate(*e.EndDate)
		}
		if a, ok := dir.Address(e.ID); ok {
			dto.First, dto.Last, dto.Email = a.First, a.Last, a.Email
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates an employee and, if an email is given, its address.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, addr, err := req.toRecords()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	if addr != nil {
		if err := h.Store.SaveAddress(ctx, *addr); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save address", err)
			return
		}
	}

	dto := EmployeeDTO{
		ID:        req.ID,
		Name:      req.Name,
		StartDate: generic.FormatDate(emp.StartDate),
		First:     req.First,
		Last:      req.Last,
		Email:     req.Email,
	}
	if emp.EndDate != nil {
		dto.EndDate = generic.FormatDate(*emp.EndDate)
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (req CreateEmployeeRequest) toRecords() (vacation.EmployeeRecord, *vacation.AddressRecord, error) {
	if req.ID == "" || req.Name == "" {
		return vacation.EmployeeRecord{}, nil, fmt.Errorf("%w: id and name are required", generic.ErrInvalidRecord)
	}
	start, err := generic.ParseDate(req.StartDate)
	if err != nil {
		return vacation.EmployeeRecord{}, nil, err
	}
	emp := vacation.EmployeeRecord{
		ID:        generic.EmployeeID(req.ID),
		Name:      req.Name,
		StartDate: start,
	}
	if req.EndDate != "" {
		end, err := generic.ParseDate(req.EndDate)
		if err != nil {
			return vacation.EmployeeRecord{}, nil, err
		}
		emp.EndDate = &end
	}

	if req.Email == "" {
		return emp, nil, nil
	}
	return emp, &vacation.AddressRecord{
		EmployeeID: emp.ID,
		First:      req.First,
		Last:       req.Last,
		Email:      req.Email,
	}, nil
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// ListPayroll returns payroll entries with what a run would do right now.
func (h *Handler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	payroll, dir, err := h.Store.LoadRoster(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	now := h.Clock.Now()
	dtos := make([]PayrollEntryDTO, len(payroll))
	for i, p := range payroll {
		dtos[i] = previewEntry(p, dir, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func previewEntry(p vacation.PayrollRecord, dir *vacation.Directory, now time.Time) PayrollEntryDTO {
	dto := PayrollEntryDTO{
		EmployeeID:   string(p.EmployeeID),
		VacationDays: p.VacationDays,
	}

	address, ok := dir.Address(p.EmployeeID)
	if !ok {
		dto.Status = PayrollNoAddress
		return dto
	}
	dto.Email = address.Email

	employee, ok := dir.Employee(p.EmployeeID)
	if !ok {
		dto.Status = PayrollEmployeeNotFound
		return dto
	}

	calc, _ := vacation.CalculateVacation(p, &employee, now)
	dto.Status = PayrollReady
	dto.Name = calc.Name
	dto.YearsEmployed = &calc.YearsEmployed
	dto.NewBalance = &calc.NewBalance
	return dto
}

// AppendPayroll adds an entry to the end of the payroll list.
func (h *Handler) AppendPayroll(w http.ResponseWriter, r *http.Request) {
	var req AppendPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", generic.ErrInvalidRecord)
		return
	}
	if req.VacationDays < 0 {
		writeError(w, http.StatusBadRequest, "vacation_days must not be negative", generic.ErrInvalidRecord)
		return
	}

	p := vacation.PayrollRecord{EmployeeID: generic.EmployeeID(req.EmployeeID), VacationDays: req.VacationDays}
	if err := h.Store.AppendPayroll(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save payroll entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// GRANT HANDLERS
// =============================================================================

// RunGrants notifies every payroll entry and records what was sent.
func (h *Handler) RunGrants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payroll, dir, err := h.Store.LoadRoster(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	sent := store.NewMemory()
	notifier := vacation.NewNotifier(h.Sender, h.Clock)
	// sent goes first so the response lists a sent email even when the
	// database write for it fails
	notifier.Ledger = store.Tee(sent, h.Store)

	log.Printf("[Grant] Running for %d payroll entries", len(payroll))
	runErr := notifier.GrantVacation(ctx, payroll, dir)

	grants, _ := sent.ListGrants(ctx, "")
	resp := RunGrantsResponse{Count: len(grants), Grants: toGrantDTOs(grants)}

	if runErr != nil {
		log.Printf("[Grant] Stopped after %d grants: %v", len(grants), runErr)
		var notFound *generic.EmployeeNotFoundError
		switch {
		case errors.As(runErr, &notFound):
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   runErr.Error(),
				Code:    "employee_not_found",
				Details: resp,
			})
		case errors.Is(runErr, generic.ErrLedger):
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "Notifications sent but not recorded",
				Code:    "ledger_failed",
				Details: resp,
			})
		default:
			writeJSON(w, http.StatusBadGateway, ErrorResponse{
				Error:   "Failed to send notifications",
				Code:    "send_failed",
				Details: resp,
			})
		}
		return
	}

	log.Printf("[Grant] Completed: %d grants", len(grants))
	writeJSON(w, http.StatusOK, resp)
}

// ListGrants returns recorded grants, optionally for one employee.
func (h *Handler) ListGrants(w http.ResponseWriter, r *http.Request) {
	employeeID := generic.EmployeeID(r.URL.Query().Get("employee_id"))
	grants, err := h.Store.ListGrants(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list grants", err)
		return
	}
	writeJSON(w, http.StatusOK, toGrantDTOs(grants))
}

func toGrantDTOs(grants []generic.Grant) []GrantDTO {
	dtos := make([]GrantDTO, len(grants))
	for i, g := range grants {
		dtos[i] = GrantDTO{
			ID:            string(g.ID),
			EmployeeID:    string(g.EmployeeID),
			Recipient:     g.Recipient,
			YearsEmployed: g.YearsEmployed,
			GrantedDays:   g.Granted.Value.String(),
			Balance:       g.Balance.Value.String(),
			Unit:          string(g.Balance.Unit),
			GrantedAt:     g.GrantedAt.UTC().Format(time.RFC3339),
		}
	}
	return dtos
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
