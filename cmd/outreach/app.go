package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/alfredjeanlab/outreach/internal/auth"
	"github.com/alfredjeanlab/outreach/internal/campaign"
	"github.com/alfredjeanlab/outreach/internal/config"
	"github.com/alfredjeanlab/outreach/internal/graph"
	"github.com/alfredjeanlab/outreach/internal/idgen"
	"github.com/alfredjeanlab/outreach/internal/ledger"
	"github.com/alfredjeanlab/outreach/internal/model"
	"github.com/alfredjeanlab/outreach/internal/responses"
	"github.com/alfredjeanlab/outreach/internal/roster"
	"github.com/alfredjeanlab/outreach/internal/sync"
	"github.com/alfredjeanlab/outreach/internal/ui"
)

// app bundles the configuration and collaborators shared by the
// subcommands.
type app struct {
	env    *config.Env
	policy config.Campaign
	auth   *auth.Authenticator
	store  *ledger.Store
	runID  string
	logger *slog.Logger
}

// newApp loads both configuration layers and, when the command talks to
// the Graph API, the authenticator. Token caching prefers the OS keychain
// and falls back to a file under the state directory.
func newApp(requireIdentity bool) (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	policy, err := config.LoadCampaign(campaignPath)
	if err != nil {
		return nil, err
	}
	runID, err := idgen.NewRunID()
	if err != nil {
		return nil, err
	}

	a := &app{
		env:    env,
		policy: policy,
		store:  ledger.NewStore(ledgerPath),
		runID:  runID,
		logger: slog.Default().With("run", runID),
	}

	if requireIdentity {
		if err := env.RequireIdentity(); err != nil {
			return nil, err
		}
		a.auth = &auth.Authenticator{
			TenantID: env.TenantID,
			ClientID: env.ClientID,
			Cache: &auth.FallbackCache{
				Primary:   auth.NewKeyringCache(env.ClientID),
				Secondary: auth.NewFileCache(env.StateDir),
			},
			Prompt: devicePrompt,
			Logger: a.logger,
		}
	}
	return a, nil
}

func devicePrompt(userCode, verificationURI string) {
	fmt.Printf("To sign in, open %s and enter the code %s\n",
		verificationURI, ui.Bold(userCode))
}

func (a *app) graphClient() *graph.Client {
	return graph.NewClient("", auth.Source{Auth: a.auth})
}

// source picks where form responses come from: an explicit --responses
// path wins, then a configured remote filename hint, then the campaign's
// local export path.
func (a *app) source(client *graph.Client) responses.Source {
	if responsesPath != "" {
		return &responses.FileSource{
			Path:            responsesPath,
			PreferredHeader: a.policy.ResponseEmailHeader,
			Logger:          a.logger,
		}
	}
	if a.env.FormsHint != "" {
		return &responses.DriveSource{Client: client, Hint: a.env.FormsHint, Logger: a.logger}
	}
	return &responses.FileSource{
		Path:            a.policy.ResponsesFile,
		PreferredHeader: a.policy.ResponseEmailHeader,
		Logger:          a.logger,
	}
}

func (a *app) driver(mailer campaign.Mailer, src responses.Source) *campaign.Driver {
	var limiter *rate.Limiter
	if a.policy.PacingSeconds > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(a.policy.PacingSeconds)*time.Second), 1)
	}
	return &campaign.Driver{
		Store:   a.store,
		Roster:  func() ([]model.Recipient, error) { return roster.Load(recipientsPath) },
		Source:  src,
		Mailer:  mailer,
		Policy:  a.policy,
		Limiter: limiter,
		Logger:  a.logger,
		RunID:   a.runID,
	}
}

// backup copies the ledger to every configured off-host destination. It
// runs even after a failed campaign operation; whatever progress was
// persisted is worth keeping.
func (a *app) backup(ctx context.Context) {
	var dests []sync.Destination
	if a.env.SyncS3Bucket != "" {
		d, err := sync.NewS3Destination(ctx,
			a.env.SyncS3Bucket, a.env.SyncS3Key, a.env.SyncS3Region, a.env.SyncS3Endpoint)
		if err != nil {
			a.logger.Warn("s3 backup unavailable", "err", err)
		} else {
			dests = append(dests, d)
		}
	}
	if a.env.SyncGitRepo != "" {
		dests = append(dests, sync.NewGitDestination(
			a.env.SyncGitRepo, a.env.SyncGitFile, a.env.SyncGitBranch))
	}
	sync.Backup(ctx, ledgerPath, dests, a.logger)
}
