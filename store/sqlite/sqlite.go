/*
Package sqlite provides a SQLite-backed roster and grant ledger.

PURPOSE:
  The grant batch works on in-memory lookup tables. This store is where the
  binaries keep the roster between runs and where sent grants are logged.

INTERFACES IMPLEMENTED:
  generic.GrantLedger: Append a sent grant
  generic.GrantReader: List grants

KEY TABLES:
  employees: HR records (start/end dates)
  addresses: Address book keyed by employee
  payroll:   Existing entitlement, in insertion order (seq)
  grants:    Append-only log of sent notifications

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE on grants, except Reset (dev/demo only).
  There is no idempotency key: running the batch twice logs twice.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, same as the in-memory ledger.

USAGE:
  store, err := sqlite.New("./data/grants.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  payroll, dir, err := store.LoadRoster(ctx)

SEE ALSO:
  - generic/store.go: Ledger interfaces
  - generic/store/memory.go: In-memory ledger for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/vacation-grant/generic"
	"github.com/warp/vacation-grant/vacation"
)

// timestampLayout is fixed-width so that text ordering matches time ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements the roster and ledger using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS addresses (
		employee_id TEXT PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		email TEXT NOT NULL
	);

	-- seq preserves payroll order; the batch processes entries in this order
	CREATE TABLE IF NOT EXISTS payroll (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL,
		vacation_days INTEGER NOT NULL
	);

	-- Grants (append-only log of sent notifications)
	CREATE TABLE IF NOT EXISTS grants (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		recipient TEXT NOT NULL,
		years_employed INTEGER NOT NULL,
		granted_value TEXT NOT NULL,
		balance_value TEXT NOT NULL,
		unit TEXT NOT NULL,
		granted_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_grants_employee
		ON grants(employee_id, granted_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp vacation.EmployeeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date
	`

	var endDate sql.NullString
	if emp.EndDate != nil {
		endDate = nullString(emp.EndDate.UTC().Format(time.RFC3339))
	}

	_, err := s.db.ExecContext(ctx, query,
		string(emp.ID), emp.Name,
		emp.StartDate.UTC().Format(time.RFC3339),
		endDate,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListEmployees returns all employees ordered by ID. A stored date that does
// not parse fails the whole listing with generic.ErrInvalidDate.
func (s *Store) ListEmployees(ctx context.Context) ([]vacation.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, start_date, end_date FROM employees ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []vacation.EmployeeRecord
	for rows.Next() {
		var emp vacation.EmployeeRecord
		var id, startDate string
		var endDate sql.NullString
		if err := rows.Scan(&id, &emp.Name, &startDate, &endDate); err != nil {
			return nil, err
		}
		emp.ID = generic.EmployeeID(id)
		start, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, fmt.Errorf("employee %s start_date %q: %w", id, startDate, generic.ErrInvalidDate)
		}
		emp.StartDate = start
		if endDate.Valid {
			end, err := time.Parse(time.RFC3339, endDate.String)
			if err != nil {
				return nil, fmt.Errorf("employee %s end_date %q: %w", id, endDate.String, generic.ErrInvalidDate)
			}
			emp.EndDate = &end
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// =============================================================================
// ADDRESSES
// =============================================================================

// SaveAddress inserts or replaces the address of an employee.
func (s *Store) SaveAddress(ctx context.Context, a vacation.AddressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO addresses (employee_id, first_name, last_name, email)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email
	`
	_, err := s.db.ExecContext(ctx, query, string(a.EmployeeID), a.First, a.Last, a.Email)
	return err
}

// ListAddresses returns all addresses ordered by employee ID.
func (s *Store) ListAddresses(ctx context.Context) ([]vacation.AddressRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT employee_id, first_name, last_name, email FROM addresses ORDER BY employee_id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []vacation.AddressRecord
	for rows.Next() {
		var a vacation.AddressRecord
		var id string
		var first, last sql.NullString
		if err := rows.Scan(&id, &first, &last, &a.Email); err != nil {
			return nil, err
		}
		a.EmployeeID = generic.EmployeeID(id)
		a.First = first.String
		a.Last = last.String
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// =============================================================================
// PAYROLL
// =============================================================================

// AppendPayroll adds a payroll entry at the end of the list.
func (s *Store) AppendPayroll(ctx context.Context, p vacation.PayrollRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payroll (employee_id, vacation_days) VALUES (?, ?)",
		string(p.EmployeeID), p.VacationDays,
	)
	return err
}

// ListPayroll returns payroll entries in insertion order.
func (s *Store) ListPayroll(ctx context.Context) ([]vacation.PayrollRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT employee_id, vacation_days FROM payroll ORDER BY seq",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payroll []vacation.PayrollRecord
	for rows.Next() {
		var p vacation.PayrollRecord
		var id string
		if err := rows.Scan(&id, &p.VacationDays); err != nil {
			return nil, err
		}
		p.EmployeeID = generic.EmployeeID(id)
		payroll = append(payroll, p)
	}
	return payroll, rows.Err()
}

// LoadRoster reads the payroll list and builds the lookup directory.
func (s *Store) LoadRoster(ctx context.Context) ([]vacation.PayrollRecord, *vacation.Directory, error) {
	payroll, err := s.ListPayroll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load payroll: %w", err)
	}
	addresses, err := s.ListAddresses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load addresses: %w", err)
	}
	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load employees: %w", err)
	}
	return payroll, vacation.NewDirectory(addresses, employees), nil
}

// =============================================================================
// GRANTS (generic.GrantLedger / generic.GrantReader)
// =============================================================================

// Record appends a grant. This is the ONLY write to the grants table.
func (s *Store) Record(ctx context.Context, g generic.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO grants (id, employee_id, recipient, years_employed,
			granted_value, balance_value, unit, granted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		string(g.ID), string(g.EmployeeID), g.Recipient, g.YearsEmployed,
		g.Granted.Value.String(), g.Balance.Value.String(), string(g.Balance.Unit),
		g.GrantedAt.UTC().Format(timestampLayout),
		time.Now().UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("insert grant: %w", err)
	}
	return nil
}

// ListGrants returns grants ordered by grant time. An empty employeeID lists all.
func (s *Store) ListGrants(ctx context.Context, employeeID generic.EmployeeID) ([]generic.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, recipient, years_employed,
			granted_value, balance_value, unit, granted_at
		FROM grants
	`
	var args []any
	if employeeID != "" {
		query += " WHERE employee_id = ?"
		args = append(args, string(employeeID))
	}
	query += " ORDER BY granted_at, rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []generic.Grant
	for rows.Next() {
		var g generic.Grant
		var id, empID, granted, balance, unit, grantedAt string
		if err := rows.Scan(&id, &empID, &g.Recipient, &g.YearsEmployed,
			&granted, &balance, &unit, &grantedAt); err != nil {
			return nil, err
		}
		g.ID = generic.GrantID(id)
		g.EmployeeID = generic.EmployeeID(empID)
		g.Granted = generic.ParseAmount(granted, generic.Unit(unit))
		g.Balance = generic.ParseAmount(balance, generic.Unit(unit))
		g.GrantedAt, _ = time.Parse(timestampLayout, grantedAt)
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset clears all data. Only use in development/demo environments.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"grants", "payroll", "addresses", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Compile-time checks
var (
	_ generic.GrantLedger = (*Store)(nil)
	_ generic.GrantReader = (*Store)(nil)
)
