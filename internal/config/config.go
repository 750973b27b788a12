// Package config loads the two configuration layers: process environment
// (identity and sync settings) and the campaign policy file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Env holds environment-sourced configuration. Identity values are
// required for any command that talks to the Graph API.
type Env struct {
	TenantID string `env:"OUTREACH_TENANT_ID"`
	ClientID string `env:"OUTREACH_CLIENT_ID"`

	// Filename hint for discovering the response spreadsheet remotely.
	FormsHint string `env:"OUTREACH_FORMS_HINT"`

	// StateDir stores the cached token file. Defaults to
	// ~/.local/state/outreach.
	StateDir string `env:"OUTREACH_STATE_DIR"`

	// Ledger backup destinations (optional).
	SyncS3Bucket   string `env:"OUTREACH_SYNC_S3_BUCKET"`
	SyncS3Key      string `env:"OUTREACH_SYNC_S3_KEY" envDefault:"outreach/tracking.csv"`
	SyncS3Region   string `env:"OUTREACH_SYNC_S3_REGION" envDefault:"us-east-1"`
	SyncS3Endpoint string `env:"OUTREACH_SYNC_S3_ENDPOINT"`
	SyncGitRepo    string `env:"OUTREACH_SYNC_GIT_REPO"`
	SyncGitFile    string `env:"OUTREACH_SYNC_GIT_FILE" envDefault:"tracking.csv"`
	SyncGitBranch  string `env:"OUTREACH_SYNC_GIT_BRANCH" envDefault:"main"`
}

// LoadEnv parses environment configuration.
func LoadEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if e.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		e.StateDir = filepath.Join(home, ".local", "state", "outreach")
	}
	return &e, nil
}

// RequireIdentity validates that the Graph identity settings are present.
func (e *Env) RequireIdentity() error {
	if e.TenantID == "" {
		return fmt.Errorf("OUTREACH_TENANT_ID is required")
	}
	if e.ClientID == "" {
		return fmt.Errorf("OUTREACH_CLIENT_ID is required")
	}
	return nil
}
