package ledger

import (
	"testing"
	"time"

	"github.com/alfredjeanlab/outreach/internal/model"
)

func TestMerge_FirstRun(t *testing.T) {
	recipients := []model.Recipient{{Title: "Acme", Email: "x@acme.com"}}
	rows := Merge(recipients, nil)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Title != "Acme" || r.Email != "x@acme.com" {
		t.Errorf("unexpected row: %+v", r)
	}
	if r.SentAt != nil || r.DueAt != nil || r.RespondedAt != nil || r.ReminderSentAt != nil {
		t.Error("new rows must have all timestamps empty")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	recipients := []model.Recipient{
		{Title: "Acme", Email: "x@acme.com"},
		{Title: "Beta", Email: "Y@Beta.com"},
	}
	once := Merge(recipients, nil)
	twice := Merge(recipients, once)

	if len(twice) != len(once) {
		t.Fatalf("merge is not idempotent: %d then %d rows", len(once), len(twice))
	}
	// Email gets normalized on insert, so the re-merge must not duplicate.
	if twice[1].Email != "y@beta.com" {
		t.Errorf("expected normalized email, got %q", twice[1].Email)
	}
}

func TestMerge_NeverTouchesExistingRows(t *testing.T) {
	sent := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	existing := []*model.Row{{Title: "Old Title", Email: "x@acme.com", SentAt: &sent}}
	recipients := []model.Recipient{{Title: "New Title", Email: "x@acme.com"}}

	rows := Merge(recipients, existing)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Title != "Old Title" {
		t.Errorf("merge overwrote Title: %q", rows[0].Title)
	}
	if rows[0].SentAt == nil || !rows[0].SentAt.Equal(sent) {
		t.Error("merge touched SentAt")
	}
}

func TestCorporateDomains(t *testing.T) {
	rows := []*model.Row{
		{Email: "a@corp.com"},
		{Email: "b@corp.com"},
		{Email: "c@gmail.com"},
		{Email: "d@partner.com.br"},
	}
	got := CorporateDomains(rows, []string{"partner.com.br"})

	if _, ok := got["corp.com"]; !ok {
		t.Error("corp.com should be corporate")
	}
	if _, ok := got["gmail.com"]; ok {
		t.Error("gmail.com must never be corporate")
	}
	if _, ok := got["partner.com.br"]; ok {
		t.Error("extra generic domain must be excluded")
	}
	if len(got) != 1 {
		t.Errorf("expected 1 corporate domain, got %v", got)
	}
}

func TestMarkResponded_ExactMatch(t *testing.T) {
	now := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	rows := []*model.Row{{Email: "c@gmail.com"}}
	set := model.NewResponseSet()
	set.Add("c@gmail.com")

	// Exact match marks even on a generic domain.
	marked := MarkResponded(rows, set, map[string]struct{}{}, now)
	if marked != 1 {
		t.Fatalf("marked = %d, want 1", marked)
	}
	if rows[0].RespondedAt == nil || !rows[0].RespondedAt.Equal(now) {
		t.Errorf("RespondedAt = %v, want %v", rows[0].RespondedAt, now)
	}
}

func TestMarkResponded_DomainPropagation(t *testing.T) {
	now := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	rows := []*model.Row{
		{Email: "a@corp.com"},
		{Email: "b@corp.com"},
		{Email: "c@gmail.com"},
	}
	set := model.NewResponseSet()
	set.Add("a@corp.com")
	set.Add("d@gmail.com")
	corporate := CorporateDomains(rows, nil)

	marked := MarkResponded(rows, set, corporate, now)
	if marked != 2 {
		t.Fatalf("marked = %d, want 2", marked)
	}
	if rows[0].RespondedAt == nil {
		t.Error("exact responder a@corp.com not marked")
	}
	if rows[1].RespondedAt == nil {
		t.Error("b@corp.com should be marked via corporate domain propagation")
	}
	if rows[2].RespondedAt != nil {
		t.Error("c@gmail.com must not be marked by another gmail.com response")
	}
}

func TestMarkResponded_Monotonic(t *testing.T) {
	earlier := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	rows := []*model.Row{{Email: "a@corp.com", RespondedAt: &earlier}}

	set := model.NewResponseSet()
	set.Add("a@corp.com")
	if marked := MarkResponded(rows, set, map[string]struct{}{"corp.com": {}}, later); marked != 0 {
		t.Fatalf("marked = %d, want 0", marked)
	}
	if !rows[0].RespondedAt.Equal(earlier) {
		t.Error("RespondedAt was overwritten")
	}

	// An empty set (transient read failure) must not clear anything either.
	if marked := MarkResponded(rows, model.NewResponseSet(), nil, later); marked != 0 {
		t.Fatalf("marked = %d, want 0", marked)
	}
	if !rows[0].RespondedAt.Equal(earlier) {
		t.Error("RespondedAt was cleared by an empty response set")
	}
}

func TestMarkResponded_IgnoresReminderStamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	reminded := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	rows := []*model.Row{{Email: "a@corp.com", ReminderSentAt: &reminded}}

	set := model.NewResponseSet()
	set.Add("a@corp.com")
	if marked := MarkResponded(rows, set, nil, now); marked != 1 {
		t.Fatalf("marked = %d, want 1", marked)
	}
	if rows[0].State() != model.StateResponded {
		t.Errorf("late responder state = %q, want %q", rows[0].State(), model.StateResponded)
	}
}
