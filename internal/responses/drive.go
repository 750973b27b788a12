package responses

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/outreach/internal/graph"
	"github.com/alfredjeanlab/outreach/internal/model"
)

// driveReader is the slice of the Graph client the drive source needs.
type driveReader interface {
	SearchDriveFiles(ctx context.Context, hint string, logger *slog.Logger) ([]graph.DriveFile, error)
	FirstWorksheetUsedRange(ctx context.Context, f graph.DriveFile) ([][]string, error)
}

// DriveSource discovers response spreadsheets by filename hint across the
// personal drive and group drives, and reads the first worksheet of each.
type DriveSource struct {
	Client driveReader
	Hint   string
	Logger *slog.Logger
}

// remoteEmailHeader is the column convention of the hosted spreadsheet.
const remoteEmailHeader = "Email"

// Fetch aggregates responses from every discovered file. A file that
// cannot be read contributes nothing; one inaccessible spreadsheet must
// not abort the whole reconciliation.
func (s *DriveSource) Fetch(ctx context.Context) (model.ResponseSet, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	set := model.NewResponseSet()

	files, err := s.Client.SearchDriveFiles(ctx, s.Hint, logger)
	if err != nil {
		return set, err
	}
	if len(files) == 0 {
		logger.Warn("no response spreadsheets found", "hint", s.Hint)
		return set, nil
	}

	for _, f := range files {
		rows, err := s.Client.FirstWorksheetUsedRange(ctx, f)
		if err != nil {
			logger.Warn("skipping unreadable spreadsheet", "file", f.Name, "err", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		col := findEmailColumn(rows[0], remoteEmailHeader)
		if col < 0 {
			logger.Warn("no email column in spreadsheet", "file", f.Name)
			continue
		}
		for _, row := range rows[1:] {
			if col >= len(row) {
				continue
			}
			set.Add(row[col])
		}
	}
	return set, nil
}
