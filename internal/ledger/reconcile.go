package ledger

import (
	"time"

	"github.com/alfredjeanlab/outreach/internal/model"
)

// Merge inserts a ledger row for every recipient not already present,
// keyed by normalized email. Existing rows are never touched, so the merge
// is idempotent and safe to run every invocation even as the recipient
// list grows.
func Merge(recipients []model.Recipient, rows []*model.Row) []*model.Row {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		seen[row.Email] = struct{}{}
	}
	out := rows
	for _, rec := range recipients {
		email := model.NormalizeEmail(rec.Email)
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, &model.Row{Title: rec.Title, Email: email})
	}
	return out
}

// CorporateDomains extracts every domain present in the ledger and drops
// the generic public providers. The result is recomputed each check run
// from current ledger contents and never persisted.
func CorporateDomains(rows []*model.Row, extraGeneric []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, row := range rows {
		d := row.Domain()
		if d == "" {
			continue
		}
		if model.IsGenericDomain(d, extraGeneric) {
			continue
		}
		out[d] = struct{}{}
	}
	return out
}

// MarkResponded stamps RespondedAt on unresponded rows that match the
// response set, either exactly by address or by corporate-domain
// propagation (one responder at a corporate domain counts for every row at
// that domain). Rows already marked are left alone: the field is monotonic
// and survives a check run with an empty response set. Returns the number
// of rows newly marked.
func MarkResponded(rows []*model.Row, set model.ResponseSet, corporate map[string]struct{}, now time.Time) int {
	marked := 0
	for _, row := range rows {
		if row.RespondedAt != nil {
			continue
		}
		email := model.NormalizeEmail(row.Email)
		if email == "" {
			continue
		}

		if set.ContainsEmail(email) {
			ts := now
			row.RespondedAt = &ts
			marked++
			continue
		}

		d := model.Domain(email)
		if d == "" {
			continue
		}
		if _, ok := corporate[d]; ok && set.ContainsDomain(d) {
			ts := now
			row.RespondedAt = &ts
			marked++
		}
	}
	return marked
}
