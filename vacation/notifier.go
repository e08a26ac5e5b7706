/*
notifier.go - Bonus vacation notification

PURPOSE:
  Joins one payroll entry against the directory, computes the bonus with
  CalculateVacation and emails the employee. GrantVacation runs the same
  thing over a whole payroll list.

FLOW (per payroll entry):
  1. Look up the address. Missing address = skip silently (no send, no log).
  2. Look up the employee. Missing employee = EmployeeNotFoundError.
  3. Compute tenure at Clock.Now() and the new balance.
  4. Send "Good news!" through the injected Sender.
  5. Append the grant to the Ledger, if one is configured.
  6. Log elapsed time.

FAILURE SEMANTICS:
  Nothing is retried or isolated. The first error (missing employee, send
  failure, ledger failure) stops the batch; entries already sent stay sent.
  A ledger failure wraps generic.ErrLedger: that entry's email went out.

MESSAGE NOTE:
  The body announces "{years} days" granted, the same figure as the years of
  employment. That is the bonus rule (one day per year), not a typo.

SEE ALSO:
  - calculator.go: CalculateVacation
  - email/sender.go: Sender
  - generic/store.go: GrantLedger
*/
package vacation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/warp/vacation-grant/email"
	"github.com/warp/vacation-grant/generic"
)

// Subject is the fixed subject line of every notification.
const Subject = "Good news!"

// Category tags grant notifications at the email provider.
const Category = "vacation_grant"

const bodyTemplate = "Dear %s\nbased on your %d years of employment, you have been granted %d days of vacation, bringing your total to %d"

// FormatBody renders the notification body for a calculation.
func FormatBody(c Calculation) string {
	return fmt.Sprintf(bodyTemplate, c.Name, c.YearsEmployed, c.YearsEmployed, c.NewBalance)
}

// Notifier sends bonus vacation notifications.
type Notifier struct {
	Sender email.Sender
	Clock  generic.Clock

	// Ledger is optional. When set, every sent notification is recorded.
	Ledger generic.GrantLedger

	// Logger receives the per-entry timing line. nil uses the standard logger.
	Logger *log.Logger
}

// NewNotifier creates a notifier without a ledger.
func NewNotifier(sender email.Sender, clock generic.Clock) *Notifier {
	return &Notifier{Sender: sender, Clock: clock}
}

// Notify processes a single payroll entry.
func (n *Notifier) Notify(ctx context.Context, payroll PayrollRecord, dir *Directory) error {
	start := time.Now()

	address, ok := dir.Address(payroll.EmployeeID)
	if !ok {
		return nil
	}

	var employee *EmployeeRecord
	if e, ok := dir.Employee(payroll.EmployeeID); ok {
		employee = &e
	}

	now := n.Clock.Now()
	calc, err := CalculateVacation(payroll, employee, now)
	if err != nil {
		return err
	}

	msg := email.Message{
		To:       address.Email,
		Subject:  Subject,
		Text:     FormatBody(calc),
		Category: Category,
	}
	if err := n.Sender.Send(ctx, msg); err != nil {
		return err
	}

	if n.Ledger != nil {
		granted := generic.NewAmountFromInt(calc.YearsEmployed, generic.UnitDays)
		grant := generic.Grant{
			ID:            generic.GrantID(uuid.NewString()),
			EmployeeID:    payroll.EmployeeID,
			Recipient:     address.Email,
			YearsEmployed: calc.YearsEmployed,
			Granted:       granted,
			Balance:       granted.Add(generic.NewAmountFromInt(payroll.VacationDays, generic.UnitDays)),
			GrantedAt:     now,
		}
		if err := n.Ledger.Record(ctx, grant); err != nil {
			return fmt.Errorf("%w: employee %s already notified: %w", generic.ErrLedger, payroll.EmployeeID, err)
		}
	}

	n.logf("[Notifier] %s: took %d ms to complete", payroll.EmployeeID, time.Since(start).Milliseconds())
	return nil
}

// GrantVacation notifies every payroll entry in order. It stops at the first
// error and returns it unchanged.
func (n *Notifier) GrantVacation(ctx context.Context, payroll []PayrollRecord, dir *Directory) error {
	for _, p := range payroll {
		if err := n.Notify(ctx, p, dir); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) logf(format string, args ...any) {
	if n.Logger != nil {
		n.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
