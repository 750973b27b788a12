package responses

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alfredjeanlab/outreach/internal/model"
)

// FileSource reads a locally exported form-response CSV.
type FileSource struct {
	Path string
	// PreferredHeader is matched exactly (case-insensitive) before
	// falling back to any header containing "email".
	PreferredHeader string
	Logger          *slog.Logger
}

// Fetch parses the export. A missing file or an export without a usable
// email column yields an empty set with a warning; a check run must not
// fail because nobody exported responses yet.
func (s *FileSource) Fetch(ctx context.Context) (model.ResponseSet, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	set := model.NewResponseSet()

	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("response file not found", "path", s.Path)
		return set, nil
	}
	if err != nil {
		return set, fmt.Errorf("open response file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		logger.Warn("response file is empty", "path", s.Path)
		return set, nil
	}
	if err != nil {
		return set, fmt.Errorf("read response header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	col := findEmailColumn(headers, s.PreferredHeader)
	if col < 0 {
		logger.Warn("no email column in response file", "path", s.Path)
		return set, nil
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return set, fmt.Errorf("read response row: %w", err)
		}
		if col >= len(rec) {
			continue
		}
		set.Add(rec[col])
	}
	return set, nil
}
