package responses

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alfredjeanlab/outreach/internal/graph"
)

// fakeDrive serves canned worksheet contents per item ID.
type fakeDrive struct {
	files  []graph.DriveFile
	sheets map[string][][]string
	errs   map[string]error
}

func (f *fakeDrive) SearchDriveFiles(_ context.Context, _ string, _ *slog.Logger) ([]graph.DriveFile, error) {
	return f.files, nil
}

func (f *fakeDrive) FirstWorksheetUsedRange(_ context.Context, file graph.DriveFile) ([][]string, error) {
	if err := f.errs[file.ItemID]; err != nil {
		return nil, err
	}
	return f.sheets[file.ItemID], nil
}

func TestDriveSource_AggregatesFiles(t *testing.T) {
	drive := &fakeDrive{
		files: []graph.DriveFile{
			{DriveID: "d1", ItemID: "f1", Name: "respostas.xlsx"},
			{DriveID: "d2", ItemID: "f2", Name: "respostas (1).xlsx"},
		},
		sheets: map[string][][]string{
			"f1": {{"Hora", "Email"}, {"1", "a@corp.com"}, {"2", "junk"}},
			"f2": {{"Seu Email de contato"}, {"b@other.com"}},
		},
	}
	s := &DriveSource{Client: drive, Hint: "respostas", Logger: quietLogger()}

	set, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(set.Emails) != 2 {
		t.Fatalf("expected 2 emails, got %v", set.Emails)
	}
	if !set.ContainsEmail("a@corp.com") || !set.ContainsEmail("b@other.com") {
		t.Errorf("emails = %v", set.Emails)
	}
}

func TestDriveSource_SkipsUnreadableFile(t *testing.T) {
	drive := &fakeDrive{
		files: []graph.DriveFile{
			{DriveID: "d1", ItemID: "bad", Name: "locked.xlsx"},
			{DriveID: "d1", ItemID: "ok", Name: "respostas.xlsx"},
		},
		sheets: map[string][][]string{
			"ok": {{"Email"}, {"a@corp.com"}},
		},
		errs: map[string]error{"bad": errors.New("403")},
	}
	s := &DriveSource{Client: drive, Hint: "respostas", Logger: quietLogger()}

	set, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("one unreadable file must not fail the fetch: %v", err)
	}
	if len(set.Emails) != 1 || !set.ContainsEmail("a@corp.com") {
		t.Errorf("emails = %v", set.Emails)
	}
}

func TestDriveSource_NoFiles(t *testing.T) {
	s := &DriveSource{Client: &fakeDrive{}, Hint: "respostas", Logger: quietLogger()}
	set, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !set.Empty() {
		t.Errorf("expected empty set, got %v", set.Emails)
	}
}

func TestDriveSource_SheetWithoutEmailColumn(t *testing.T) {
	drive := &fakeDrive{
		files:  []graph.DriveFile{{DriveID: "d", ItemID: "f", Name: "notas.xlsx"}},
		sheets: map[string][][]string{"f": {{"Hora", "Nome"}, {"1", "Ana"}}},
	}
	s := &DriveSource{Client: drive, Hint: "notas", Logger: quietLogger()}
	set, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !set.Empty() {
		t.Errorf("expected empty set, got %v", set.Emails)
	}
}
