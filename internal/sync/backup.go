// Package sync copies the tracking ledger to off-host destinations after a
// run, so the campaign state survives the machine it ran on.
package sync

import (
	"context"
	"log/slog"
	"os"
)

// Destination is a backup target (S3, git, etc.).
type Destination interface {
	// Name identifies the destination in logs.
	Name() string
	// Write sends the ledger bytes to the destination.
	Write(ctx context.Context, data []byte) error
}

// Backup uploads the ledger file to every destination. Failures are
// per-destination and best-effort: a broken backup target never fails the
// campaign run that produced the ledger.
func Backup(ctx context.Context, ledgerPath string, destinations []Destination, logger *slog.Logger) {
	if len(destinations) == 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(ledgerPath)
	if err != nil {
		logger.Error("backup skipped: cannot read ledger", "path", ledgerPath, "err", err)
		return
	}

	for _, dest := range destinations {
		if err := dest.Write(ctx, data); err != nil {
			logger.Error("backup destination write failed", "destination", dest.Name(), "err", err)
			continue
		}
		logger.Info("ledger backed up", "destination", dest.Name(), "bytes", len(data))
	}
}
