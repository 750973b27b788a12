// Package campaign orchestrates the two campaign operations: sending
// invites to unsent ledger rows and reconciling responses before sending
// reminders. Both are idempotent at the row level; every unit of progress
// is persisted before the next one starts, so an aborted run resumes
// cleanly from the ledger.
package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/alfredjeanlab/outreach/internal/config"
	"github.com/alfredjeanlab/outreach/internal/ledger"
	"github.com/alfredjeanlab/outreach/internal/model"
	"github.com/alfredjeanlab/outreach/internal/responses"
)

// Store is the ledger persistence surface the driver needs.
type Store interface {
	Load() ([]*model.Row, error)
	Save(rows []*model.Row) error
}

// Mailer dispatches one rendered message. graph.Client satisfies this.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, html string) error
}

// Driver runs campaign operations against injected collaborators so the
// reconciliation logic stays testable without network or environment.
type Driver struct {
	Store   Store
	Roster  func() ([]model.Recipient, error)
	Source  responses.Source
	Mailer  Mailer
	Policy  config.Campaign
	Limiter *rate.Limiter
	Logger  *slog.Logger
	Now     func() time.Time
	RunID   string
}

// CheckResult summarizes one check run.
type CheckResult struct {
	Responded int
	Reminded  int
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d *Driver) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

// pace applies the courtesy delay between outbound mails.
func (d *Driver) pace(ctx context.Context) error {
	if d.Limiter == nil {
		return nil
	}
	return d.Limiter.Wait(ctx)
}

// Send merges the recipient list into the ledger and sends an invite to
// every row that has none yet. The ledger is saved after every send; a
// mail failure aborts the run with the failing row unstamped, so a rerun
// picks up exactly there.
func (d *Driver) Send(ctx context.Context, subject, formLink string) (int, error) {
	recipients, err := d.Roster()
	if err != nil {
		return 0, fmt.Errorf("load recipients: %w", err)
	}
	rows, err := d.Store.Load()
	if err != nil {
		return 0, fmt.Errorf("load ledger: %w", err)
	}
	rows = ledger.Merge(recipients, rows)
	if err := d.Store.Save(rows); err != nil {
		return 0, fmt.Errorf("save ledger: %w", err)
	}

	sent := 0
	for _, row := range rows {
		if row.SentAt != nil {
			continue
		}
		html, err := renderInvite(mailData{Title: row.Title, FormLink: formLink, OrgName: d.Policy.OrgName})
		if err != nil {
			return sent, err
		}
		if err := d.Mailer.SendMail(ctx, row.Email, subject, html); err != nil {
			return sent, fmt.Errorf("send invite to %s: %w", row.Email, err)
		}

		now := d.now()
		due := now.AddDate(0, 0, d.Policy.DeadlineDays)
		row.SentAt = &now
		row.DueAt = &due
		if err := d.Store.Save(rows); err != nil {
			return sent, fmt.Errorf("save ledger after %s: %w", row.Email, err)
		}
		sent++
		d.logger().Info("invite sent", "email", row.Email, "due", due, "run", d.RunID)

		if err := d.pace(ctx); err != nil {
			return sent, err
		}
	}
	d.logger().Info("send complete", "sent", sent, "rows", len(rows), "run", d.RunID)
	return sent, nil
}

// Check reconciles the ledger against the response set, then reminds
// every row that is still unresponded, not yet reminded, and past the
// configured gate.
func (d *Driver) Check(ctx context.Context, subject, formLink string) (CheckResult, error) {
	var res CheckResult

	rows, err := d.Store.Load()
	if err != nil {
		return res, fmt.Errorf("load ledger: %w", err)
	}

	set, err := d.Source.Fetch(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch responses: %w", err)
	}
	d.logger().Info("responses loaded",
		"emails", len(set.Emails),
		"domains", sortedKeys(set.Domains),
		"run", d.RunID)

	corporate := ledger.CorporateDomains(rows, d.Policy.ExtraGenericDomains)
	d.logger().Info("corporate domains detected", "domains", sortedKeys(corporate))

	res.Responded = ledger.MarkResponded(rows, set, corporate, d.now())
	if err := d.Store.Save(rows); err != nil {
		return res, fmt.Errorf("save ledger: %w", err)
	}

	for _, row := range rows {
		if !d.shouldRemind(row) {
			continue
		}
		html, err := renderReminder(mailData{Title: row.Title, FormLink: formLink, OrgName: d.Policy.OrgName})
		if err != nil {
			return res, err
		}
		if err := d.Mailer.SendMail(ctx, row.Email, subject, html); err != nil {
			return res, fmt.Errorf("send reminder to %s: %w", row.Email, err)
		}

		now := d.now()
		row.ReminderSentAt = &now
		if err := d.Store.Save(rows); err != nil {
			return res, fmt.Errorf("save ledger after %s: %w", row.Email, err)
		}
		res.Reminded++
		d.logger().Info("reminder sent", "email", row.Email, "run", d.RunID)

		if err := d.pace(ctx); err != nil {
			return res, err
		}
	}
	d.logger().Info("check complete",
		"responded", res.Responded,
		"reminded", res.Reminded,
		"run", d.RunID)
	return res, nil
}

// shouldRemind applies the reminder gate: never remind a responder or a
// row already reminded; with RequireDue, also wait until the response
// deadline has passed (which excludes rows never invited).
func (d *Driver) shouldRemind(row *model.Row) bool {
	if row.Email == "" {
		return false
	}
	if row.RespondedAt != nil || row.ReminderSentAt != nil {
		return false
	}
	if d.Policy.Reminders.RequireDue {
		return row.DueAt != nil && d.now().After(*row.DueAt)
	}
	return true
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
