/*
handlers_test.go - HTTP tests for the grant API

Tests for:
- Demo roster load + grant run
- Run failures (missing employee, provider error, ledger write)
- Payroll preview statuses
- Request validation
*/
package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vacation-grant/email"
	"github.com/warp/vacation-grant/generic"
	"github.com/warp/vacation-grant/store/sqlite"
	"github.com/warp/vacation-grant/vacation"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type testServer struct {
	handler *Handler
	router  http.Handler
	sender  *email.Recorder
}

func newTestServer(t *testing.T) *testServer {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sender := &email.Recorder{}
	h := NewHandler(store, sender)
	h.Clock = generic.FixedClock{At: generic.NewDate(2025, time.January, 1)}

	return &testServer{handler: h, router: NewRouter(h), sender: sender}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// =============================================================================
// GRANT RUN
// =============================================================================

func TestRunGrants_DemoRoster(t *testing.T) {
	// GIVEN: The demo roster, now = 2025-01-01
	// WHEN: Running the batch
	// THEN: Six emails in payroll order, six grants recorded
	ts := newTestServer(t)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/scenarios/demo", nil).Code)

	rec := ts.do(t, http.MethodPost, "/api/grants/run", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[RunGrantsResponse](t, rec)
	assert.Equal(t, 6, resp.Count)
	require.Len(t, resp.Grants, 6)
	assert.Equal(t, "1", resp.Grants[0].EmployeeID)
	assert.Equal(t, 5, resp.Grants[0].YearsEmployed)
	assert.Equal(t, "5", resp.Grants[0].GrantedDays)
	assert.Equal(t, "6", resp.Grants[0].Balance)
	assert.Equal(t, "days", resp.Grants[0].Unit)
	assert.Equal(t, "16", resp.Grants[5].Balance)

	sent := ts.sender.Sent()
	require.Len(t, sent, 6)
	for i, msg := range sent {
		assert.Equal(t, resp.Grants[i].Recipient, msg.To)
		assert.Equal(t, vacation.Subject, msg.Subject)
	}

	// Ledger persisted
	rec = ts.do(t, http.MethodGet, "/api/grants?employee_id=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	grants := decode[[]GrantDTO](t, rec)
	require.Len(t, grants, 1)
	assert.Equal(t, "emp3@gmail.com", grants[0].Recipient)
}

func TestRunGrants_RunTwiceSendsTwice(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.handler.Store.LoadDemo(context.Background()))

	ts.do(t, http.MethodPost, "/api/grants/run", nil)
	ts.do(t, http.MethodPost, "/api/grants/run", nil)

	assert.Len(t, ts.sender.Sent(), 12)
	grants := decode[[]GrantDTO](t, ts.do(t, http.MethodGet, "/api/grants", nil))
	assert.Len(t, grants, 12)
}

func TestRunGrants_MissingEmployee(t *testing.T) {
	// GIVEN: A payroll entry with an address but no employee, placed after the demo roster
	// THEN: 422 after the six demo emails
	ts := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, ts.handler.Store.LoadDemo(ctx))
	require.NoError(t, ts.handler.Store.SaveAddress(ctx, vacation.AddressRecord{EmployeeID: "99", Email: "ghost@example.com"}))
	require.NoError(t, ts.handler.Store.AppendPayroll(ctx, vacation.PayrollRecord{EmployeeID: "99", VacationDays: 1}))

	rec := ts.do(t, http.MethodPost, "/api/grants/run", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "employee_not_found", resp.Code)
	assert.Contains(t, resp.Error, "99")
	assert.Len(t, ts.sender.Sent(), 6)
}

func TestRunGrants_SendFailure(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.handler.Store.LoadDemo(context.Background()))
	ts.handler.Sender = &email.Recorder{Err: errors.New("provider down")}

	rec := ts.do(t, http.MethodPost, "/api/grants/run", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "send_failed", resp.Code)

	grants := decode[[]GrantDTO](t, ts.do(t, http.MethodGet, "/api/grants", nil))
	assert.Empty(t, grants)
}

func TestRunGrants_LedgerFailure(t *testing.T) {
	// GIVEN: A file-backed demo roster whose grants table is dropped
	//        from another connection
	// WHEN: Running the batch
	// THEN: 500 ledger_failed; the first email went out and is listed in details
	path := filepath.Join(t.TempDir(), "grants.db")
	store, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.LoadDemo(context.Background()))

	other, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = other.Exec("DROP TABLE grants")
	require.NoError(t, err)
	require.NoError(t, other.Close())

	sender := &email.Recorder{}
	h := NewHandler(store, sender)
	h.Clock = generic.FixedClock{At: generic.NewDate(2025, time.January, 1)}
	ts := &testServer{handler: h, router: NewRouter(h), sender: sender}

	rec := ts.do(t, http.MethodPost, "/api/grants/run", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "ledger_failed", resp.Code)

	details, ok := resp.Details.(map[string]any)
	require.True(t, ok, "details: %#v", resp.Details)
	assert.EqualValues(t, 1, details["count"])

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "emp1@gmail.com", sent[0].To)
}

// =============================================================================
// PAYROLL
// =============================================================================

func TestListPayroll_Statuses(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	s := ts.handler.Store

	require.NoError(t, s.SaveEmployee(ctx, vacation.EmployeeRecord{ID: "1", Name: "emp number 1", StartDate: generic.NewDate(2020, time.January, 1)}))
	require.NoError(t, s.SaveAddress(ctx, vacation.AddressRecord{EmployeeID: "1", Email: "emp1@gmail.com"}))
	require.NoError(t, s.SaveEmployee(ctx, vacation.EmployeeRecord{ID: "2", Name: "no address", StartDate: generic.NewDate(2020, time.January, 1)}))
	require.NoError(t, s.SaveAddress(ctx, vacation.AddressRecord{EmployeeID: "3", Email: "ghost@example.com"}))
	for _, id := range []generic.EmployeeID{"1", "2", "3"} {
		require.NoError(t, s.AppendPayroll(ctx, vacation.PayrollRecord{EmployeeID: id, VacationDays: 1}))
	}

	rec := ts.do(t, http.MethodGet, "/api/payroll", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]PayrollEntryDTO](t, rec)
	require.Len(t, entries, 3)

	assert.Equal(t, PayrollReady, entries[0].Status)
	require.NotNil(t, entries[0].YearsEmployed)
	assert.Equal(t, 5, *entries[0].YearsEmployed)
	assert.Equal(t, 6, *entries[0].NewBalance)

	assert.Equal(t, PayrollNoAddress, entries[1].Status)
	assert.Nil(t, entries[1].YearsEmployed)

	assert.Equal(t, PayrollEmployeeNotFound, entries[2].Status)
	assert.Equal(t, "ghost@example.com", entries[2].Email)

	assert.Empty(t, ts.sender.Sent(), "preview must not send")
}

func TestAppendPayroll_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/payroll", AppendPayrollRequest{EmployeeID: "1", VacationDays: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/payroll", AppendPayrollRequest{VacationDays: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/payroll", AppendPayrollRequest{EmployeeID: "1", VacationDays: 3})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestCreateEmployee(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/employees", CreateEmployeeRequest{
		ID: "7", Name: "emp number 7", StartDate: "2018-03-01", EndDate: "2025-01-01",
		First: "emp", Last: "number 7", Email: "emp7@gmail.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	employees := decode[[]EmployeeDTO](t, rec)
	require.Len(t, employees, 1)
	assert.Equal(t, "2018-03-01", employees[0].StartDate)
	assert.Equal(t, "2025-01-01", employees[0].EndDate)
	assert.Equal(t, "emp7@gmail.com", employees[0].Email)
}

func TestCreateEmployee_WithoutEmailHasNoAddress(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/employees", CreateEmployeeRequest{ID: "8", Name: "emp number 8", StartDate: "2020-01-01"})
	require.Equal(t, http.StatusCreated, rec.Code)

	addresses, err := ts.handler.Store.ListAddresses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func TestCreateEmployee_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		req  CreateEmployeeRequest
	}{
		{"missing id", CreateEmployeeRequest{Name: "x", StartDate: "2020-01-01"}},
		{"missing name", CreateEmployeeRequest{ID: "1", StartDate: "2020-01-01"}},
		{"bad start date", CreateEmployeeRequest{ID: "1", Name: "x", StartDate: "01/01/2020"}},
		{"bad end date", CreateEmployeeRequest{ID: "1", Name: "x", StartDate: "2020-01-01", EndDate: "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/employees", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
