// Package auth acquires Graph bearer tokens: silently from a cached
// session when possible, interactively via the device-code flow otherwise.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
)

// Scopes are the delegated permissions the campaign needs. offline_access
// yields a refresh token so later runs skip the interactive flow.
var Scopes = []string{
	"User.Read",
	"Mail.Send",
	"Files.Read.All",
	"Sites.Read.All",
	"offline_access",
}

// Prompt displays the device-code instructions to the user. It is supplied
// by the caller so the flow itself stays free of terminal concerns.
type Prompt func(userCode, verificationURI string)

// Authenticator performs the token dance against the Microsoft identity
// platform.
type Authenticator struct {
	TenantID string
	ClientID string
	Cache    Cache
	Prompt   Prompt
	Logger   *slog.Logger

	// Endpoint overrides the identity endpoints (tests).
	Endpoint oauth2.Endpoint
}

func (a *Authenticator) endpoint() oauth2.Endpoint {
	if a.Endpoint.TokenURL != "" {
		return a.Endpoint
	}
	base := "https://login.microsoftonline.com/" + a.TenantID + "/oauth2/v2.0"
	return oauth2.Endpoint{
		AuthURL:       base + "/authorize",
		TokenURL:      base + "/token",
		DeviceAuthURL: base + "/devicecode",
	}
}

func (a *Authenticator) config() *oauth2.Config {
	return &oauth2.Config{
		ClientID: a.ClientID,
		Endpoint: a.endpoint(),
		Scopes:   Scopes,
	}
}

func (a *Authenticator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Token returns a valid access token. A cached session is refreshed
// silently; only when that fails does the interactive device flow run.
func (a *Authenticator) Token(ctx context.Context) (string, error) {
	cfg := a.config()

	if cached, err := a.Cache.Load(); err == nil && cached != nil {
		tok, err := cfg.TokenSource(ctx, cached).Token()
		if err == nil {
			if tok.AccessToken != cached.AccessToken {
				if err := a.Cache.Store(tok); err != nil {
					a.logger().Warn("could not persist refreshed token", "err", err)
				}
			}
			return tok.AccessToken, nil
		}
		a.logger().Warn("silent token refresh failed, falling back to device flow", "err", err)
	}

	return a.Login(ctx)
}

// Login always runs the interactive device-code flow and caches the
// resulting token. It blocks until the user completes the flow out-of-band
// or ctx expires.
func (a *Authenticator) Login(ctx context.Context) (string, error) {
	cfg := a.config()

	da, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("start device flow: %w", err)
	}
	if a.Prompt != nil {
		a.Prompt(da.UserCode, da.VerificationURI)
	}

	tok, err := cfg.DeviceAccessToken(ctx, da)
	if err != nil {
		return "", fmt.Errorf("complete device flow: %w", err)
	}
	if err := a.Cache.Store(tok); err != nil {
		a.logger().Warn("could not persist token", "err", err)
	}
	return tok.AccessToken, nil
}

// Logout drops any cached session.
func (a *Authenticator) Logout() error {
	return a.Cache.Clear()
}

// Source adapts the authenticator to the graph.TokenSource shape.
type Source struct {
	Auth *Authenticator
}

// Token returns a valid bearer token.
func (s Source) Token(ctx context.Context) (string, error) {
	return s.Auth.Token(ctx)
}
