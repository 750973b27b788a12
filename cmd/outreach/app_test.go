package main

import (
	"testing"
	"time"

	"github.com/alfredjeanlab/outreach/internal/config"
	"github.com/alfredjeanlab/outreach/internal/responses"
)

func TestSourceSelection(t *testing.T) {
	policy := config.DefaultCampaign()

	tests := []struct {
		name      string
		responses string
		hint      string
		wantFile  string // "" means the drive source is expected
	}{
		{"explicit file wins over hint", "manual.csv", "Respostas", "manual.csv"},
		{"hint selects drive search", "", "Respostas", ""},
		{"default local export", "", "", policy.ResponsesFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := responsesPath
			responsesPath = tt.responses
			t.Cleanup(func() { responsesPath = old })

			a := &app{env: &config.Env{FormsHint: tt.hint}, policy: policy}
			src := a.source(nil)

			if tt.wantFile == "" {
				if _, ok := src.(*responses.DriveSource); !ok {
					t.Fatalf("source = %T, want *responses.DriveSource", src)
				}
				return
			}
			fs, ok := src.(*responses.FileSource)
			if !ok {
				t.Fatalf("source = %T, want *responses.FileSource", src)
			}
			if fs.Path != tt.wantFile {
				t.Errorf("path = %q, want %q", fs.Path, tt.wantFile)
			}
			if fs.PreferredHeader != policy.ResponseEmailHeader {
				t.Errorf("preferred header = %q", fs.PreferredHeader)
			}
		})
	}
}

func TestDriverPacing(t *testing.T) {
	a := &app{policy: config.DefaultCampaign()}
	if d := a.driver(nil, nil); d.Limiter == nil {
		t.Error("default policy should pace sends")
	}

	a.policy.PacingSeconds = 0
	if d := a.driver(nil, nil); d.Limiter != nil {
		t.Error("zero pacing should disable the limiter")
	}
}

func TestDay(t *testing.T) {
	if got := day(nil); got != "-" {
		t.Errorf("day(nil) = %q", got)
	}
	ts := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	if got := day(&ts); got != "2026-03-10" {
		t.Errorf("day = %q", got)
	}
}
