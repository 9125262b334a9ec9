package tasks

import (
	"context"
	"strings"

	"github.com/desertthunder/ytspot/internal/services"
	"github.com/desertthunder/ytspot/internal/shared"
)

// CredentialLength is the exact length of a Spotify client id and secret.
const CredentialLength = 32

// Credentials are the operator-supplied Spotify application credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// CredentialsFromConfig reads the [credentials.spotify] section.
func CredentialsFromConfig(c shared.SpotifyConfig) Credentials {
	return Credentials{ClientID: c.ClientID, ClientSecret: c.ClientSecret, RedirectURI: c.RedirectURI}
}

// Normalize trims both values and checks their length.
func (c Credentials) Normalize() (Credentials, error) {
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.ClientSecret = strings.TrimSpace(c.ClientSecret)

	if len(c.ClientID) != CredentialLength || len(c.ClientSecret) != CredentialLength {
		return c, shared.NewValidationError(shared.InvalidCredentialLength, nil)
	}

	if c.RedirectURI = strings.TrimSpace(c.RedirectURI); c.RedirectURI == "" {
		c.RedirectURI = shared.DefaultRedirectURI
	}
	return c, nil
}

// Authenticate validates creds, runs consent through auth and returns the authorized Spotify client.
//
// Nothing is retried; the caller re-submits corrected input.
func Authenticate(ctx context.Context, creds Credentials, auth services.Authorizer) (*services.SpotifyService, error) {
	creds, err := creds.Normalize()
	if err != nil {
		return nil, err
	}

	spotify, err := services.NewSpotifyService(creds.ClientID, creds.ClientSecret, creds.RedirectURI)
	if err != nil {
		return nil, err
	}

	token, err := auth.Authorize(ctx, spotify.OAuthConfig())
	if err != nil {
		return nil, err
	}

	if err := spotify.Authenticate(ctx, token); err != nil {
		return nil, err
	}
	return spotify, nil
}
