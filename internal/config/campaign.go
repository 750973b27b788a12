package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Campaign is the policy side of configuration, loaded from a TOML file so
// a campaign can be re-run with stable settings. Every field has a usable
// default; a missing file yields the defaults.
type Campaign struct {
	// OrgName is the organization signature rendered into mail bodies.
	OrgName string `toml:"org_name"`

	// DeadlineDays sets due_at = sent_at + DeadlineDays on invite.
	DeadlineDays int `toml:"deadline_days"`

	// PacingSeconds is the courtesy delay between outbound mails.
	PacingSeconds int `toml:"pacing_seconds"`

	// ResponsesFile is the local form-response export read by check. When
	// empty and a remote hint is configured, check searches drives instead.
	ResponsesFile string `toml:"responses_file"`

	// ResponseEmailHeader is the preferred response-file column, matched
	// case-insensitively before falling back to any header containing
	// "email".
	ResponseEmailHeader string `toml:"response_email_header"`

	// ExtraGenericDomains supplements the built-in public-provider deny
	// list used by corporate-domain classification.
	ExtraGenericDomains []string `toml:"extra_generic_domains"`

	Reminders struct {
		// RequireDue gates reminders on the response deadline having
		// passed. The alternative (false) reminds on every check run.
		RequireDue bool `toml:"require_due"`
		// Subject is the default reminder subject when --subject is not
		// given.
		Subject string `toml:"subject"`
	} `toml:"reminders"`
}

// DefaultCampaign returns the built-in campaign policy.
func DefaultCampaign() Campaign {
	var c Campaign
	c.DeadlineDays = 7
	c.PacingSeconds = 3
	c.ResponsesFile = "respostas_forms.csv"
	c.ResponseEmailHeader = "Informe um E-mail para contato"
	c.Reminders.RequireDue = true
	c.Reminders.Subject = "Lembrete: Atualização cadastral pendente"
	return c
}

// LoadCampaign reads the campaign policy file. A missing file returns the
// defaults; a present but invalid file is an error.
func LoadCampaign(path string) (Campaign, error) {
	c := DefaultCampaign()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("load campaign config %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return c, fmt.Errorf("campaign config %s: %w", path, err)
	}
	return c, nil
}

func (c Campaign) validate() error {
	if c.DeadlineDays <= 0 {
		return fmt.Errorf("deadline_days must be > 0")
	}
	if c.PacingSeconds < 0 {
		return fmt.Errorf("pacing_seconds must be >= 0")
	}
	return nil
}
