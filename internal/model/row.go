// Package model defines the core campaign records: recipients, tracking
// ledger rows, and the transient response set derived from a form export.
package model

import (
	"strings"
	"time"
)

// Recipient is one entry from the static invite list. Email is the unique
// key and is stored normalized (trimmed, lowercased).
type Recipient struct {
	Title string `json:"title"`
	Email string `json:"email"`
}

// State represents the lifecycle position of a ledger row.
type State string

const (
	// StateNew means the row has never been invited.
	StateNew State = "new"
	// StateInvited means the invite went out but no response was seen.
	StateInvited State = "invited"
	// StateReminded means a reminder went out; a late response can still
	// move the row to StateResponded.
	StateReminded State = "reminded"
	// StateResponded is terminal.
	StateResponded State = "responded"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Row is one tracking ledger entry, keyed by Email. Timestamp fields are
// nil until the corresponding event happens; RespondedAt, once set, is
// never cleared.
type Row struct {
	Title          string     `json:"title"`
	Email          string     `json:"email"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// State derives the lifecycle state from the row's timestamps.
// Responded wins over reminded: the reminder is not terminal.
func (r *Row) State() State {
	switch {
	case r.RespondedAt != nil:
		return StateResponded
	case r.ReminderSentAt != nil:
		return StateReminded
	case r.SentAt != nil:
		return StateInvited
	default:
		return StateNew
	}
}

// Domain returns the domain part of the row's email, or "" when the email
// has no @.
func (r *Row) Domain() string {
	return Domain(r.Email)
}

// NormalizeEmail trims surrounding whitespace and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LooksLikeEmail reports whether a normalized value is plausibly an email
// address. The bar is deliberately low (contains both "@" and "."): form
// exports carry free-text values and anything stricter rejects real
// addresses more often than it catches junk.
func LooksLikeEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// Domain returns the part after the last "@", or "" when there is none.
func Domain(email string) string {
	i := strings.LastIndex(email, "@")
	if i < 0 || i == len(email)-1 {
		return ""
	}
	return email[i+1:]
}
