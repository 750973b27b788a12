// Package roster loads the static invite list from a CSV export.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alfredjeanlab/outreach/internal/model"
)

// ErrMissingColumn indicates the recipient file lacks the Title or Email
// column.
var ErrMissingColumn = errors.New("recipient file is missing a required column")

// Load parses a recipient CSV with at least Title and Email columns
// (header names matched case-insensitively). Values are trimmed, emails
// lowercased, and rows missing either value are skipped.
func Load(path string) ([]model.Recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recipient file: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) ([]model.Recipient, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read recipient header: %w", err)
	}

	titleIdx, emailIdx := -1, -1
	for i, h := range head {
		switch strings.ToLower(strings.TrimSpace(stripBOM(h))) {
		case "title":
			if titleIdx < 0 {
				titleIdx = i
			}
		case "email":
			if emailIdx < 0 {
				emailIdx = i
			}
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("%w: Title", ErrMissingColumn)
	}
	if emailIdx < 0 {
		return nil, fmt.Errorf("%w: Email", ErrMissingColumn)
	}

	var out []model.Recipient
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read recipient row: %w", err)
		}
		if titleIdx >= len(rec) || emailIdx >= len(rec) {
			continue
		}
		title := strings.TrimSpace(rec[titleIdx])
		email := model.NormalizeEmail(rec[emailIdx])
		if title == "" || email == "" {
			continue
		}
		out = append(out, model.Recipient{Title: title, Email: email})
	}
	return out, nil
}

// stripBOM drops a UTF-8 byte order mark. Spreadsheet exports routinely
// prefix the first header cell with one.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
