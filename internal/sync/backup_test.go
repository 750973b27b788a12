package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// mockDestination records calls to Write.
type mockDestination struct {
	name   string
	writes int
	last   []byte
	err    error
}

func (d *mockDestination) Name() string { return d.name }

func (d *mockDestination) Write(_ context.Context, data []byte) error {
	d.writes++
	d.last = append([]byte(nil), data...)
	return d.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracking.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBackup_WritesAllDestinations(t *testing.T) {
	path := writeLedger(t, "Title,Email\n")
	d1 := &mockDestination{name: "one"}
	d2 := &mockDestination{name: "two"}

	Backup(context.Background(), path, []Destination{d1, d2}, quietLogger())

	if d1.writes != 1 || d2.writes != 1 {
		t.Fatalf("writes = %d, %d", d1.writes, d2.writes)
	}
	if string(d1.last) != "Title,Email\n" {
		t.Errorf("payload = %q", d1.last)
	}
}

func TestBackup_OneFailureDoesNotBlockOthers(t *testing.T) {
	path := writeLedger(t, "x\n")
	bad := &mockDestination{name: "bad", err: errors.New("boom")}
	good := &mockDestination{name: "good"}

	Backup(context.Background(), path, []Destination{bad, good}, quietLogger())

	if good.writes != 1 {
		t.Error("failure of one destination blocked the next")
	}
}

func TestBackup_MissingLedgerIsSkipped(t *testing.T) {
	d := &mockDestination{name: "one"}
	Backup(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), []Destination{d}, quietLogger())
	if d.writes != 0 {
		t.Error("backup ran without a ledger file")
	}
}

func TestBackup_NoDestinationsIsNoop(t *testing.T) {
	// Must not even try to read the ledger.
	Backup(context.Background(), "does-not-exist.csv", nil, quietLogger())
}
