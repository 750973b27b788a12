// Package ledger persists the per-recipient tracking table and implements
// the reconciliation that marks rows as responded.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/alfredjeanlab/outreach/internal/model"
)

// header is the fixed column layout of the tracking file. The header row is
// written even when the ledger is empty.
var header = []string{
	"Title",
	"Email",
	"sent_at_iso",
	"due_at_iso",
	"responded_at_iso",
	"reminder_sent_at_iso",
}

// ErrCorrupt indicates the tracking file exists but does not carry the
// expected column layout.
var ErrCorrupt = errors.New("tracking file has unexpected columns")

// Store reads and writes the tracking ledger at a fixed path. Writes
// replace the whole file atomically; an advisory lock guards against a
// second invocation mutating the same ledger concurrently.
type Store struct {
	Path string
}

// NewStore returns a store for the given tracking file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads all ledger rows. A missing file is a normal first run and
// yields an empty ledger, not an error.
func (s *Store) Load() ([]*model.Row, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open tracking file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	head, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tracking header: %w", err)
	}
	for i, col := range header {
		if strings.TrimSpace(head[i]) != col {
			return nil, fmt.Errorf("%w: got %q at column %d, want %q", ErrCorrupt, head[i], i, col)
		}
	}

	var rows []*model.Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tracking row: %w", err)
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Save rewrites the whole tracking file. The write goes to a temp file in
// the same directory and is renamed into place so a crash mid-write never
// truncates prior progress. Rows are written sorted by email so repeated
// runs produce stable files.
func (s *Store) Save(rows []*model.Row) error {
	lock := flock.New(s.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock tracking file: %w", err)
	}
	defer lock.Unlock()

	sorted := make([]*model.Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Email < sorted[j].Email
	})

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".tracking-*.csv")
	if err != nil {
		return fmt.Errorf("create temp tracking file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write tracking header: %w", err)
	}
	for _, row := range sorted {
		if err := w.Write(formatRow(row)); err != nil {
			tmp.Close()
			return fmt.Errorf("write tracking row %s: %w", row.Email, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush tracking file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp tracking file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace tracking file: %w", err)
	}
	return nil
}

func parseRow(rec []string) (*model.Row, error) {
	row := &model.Row{
		Title: rec[0],
		Email: model.NormalizeEmail(rec[1]),
	}
	for i, dst := range []**time.Time{&row.SentAt, &row.DueAt, &row.RespondedAt, &row.ReminderSentAt} {
		raw := strings.TrimSpace(rec[2+i])
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s of %s: %w", header[2+i], row.Email, err)
		}
		*dst = &ts
	}
	return row, nil
}

func formatRow(row *model.Row) []string {
	rec := []string{row.Title, row.Email, "", "", "", ""}
	for i, ts := range []*time.Time{row.SentAt, row.DueAt, row.RespondedAt, row.ReminderSentAt} {
		if ts != nil {
			rec[2+i] = ts.UTC().Format(time.RFC3339)
		}
	}
	return rec
}
