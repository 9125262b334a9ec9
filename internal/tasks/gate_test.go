package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ytspot/internal/shared"
	tu "github.com/desertthunder/ytspot/internal/testing"
)

func TestAuthenticate(t *testing.T) {
	id := strings.Repeat("a", 32)
	secret := strings.Repeat("b", 32)

	t.Run("Credential Length", func(t *testing.T) {
		tests := []struct {
			name    string
			id      string
			secret  string
			wantErr bool
		}{
			{name: "Exact Length", id: id, secret: secret},
			{name: "Surrounding Whitespace Trimmed", id: "  " + id + "\n", secret: "\t" + secret + " "},
			{name: "Short ID", id: id[:31], secret: secret, wantErr: true},
			{name: "Long Secret", id: id, secret: secret + "c", wantErr: true},
			{name: "Empty", id: "", secret: "", wantErr: true},
			{name: "Inner Whitespace Counts", id: id[:16] + " " + id[17:], secret: secret},
			{name: "Whitespace Only Padding", id: strings.Repeat(" ", 32), secret: secret, wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				auth := &tu.FakeAuthorizer{}
				spotify, err := Authenticate(context.Background(), Credentials{ClientID: tt.id, ClientSecret: tt.secret}, auth)

				if tt.wantErr {
					kind, ok := shared.ValidationKindOf(err)
					if !ok || kind != shared.InvalidCredentialLength {
						t.Fatalf("expected InvalidCredentialLength, got %v", err)
					}
					if auth.Calls != 0 {
						t.Error("authorizer should not be called for invalid credentials")
					}
					return
				}

				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if !spotify.IsAuthenticated() {
					t.Error("expected authenticated service")
				}
				if auth.Calls != 1 {
					t.Errorf("expected one consent call, got %d", auth.Calls)
				}
			})
		}
	})

	t.Run("Consent Configuration", func(t *testing.T) {
		auth := &tu.FakeAuthorizer{}
		if _, err := Authenticate(context.Background(), Credentials{ClientID: id, ClientSecret: secret}, auth); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		cfg := auth.Config
		if cfg.ClientID != id || cfg.ClientSecret != secret {
			t.Error("expected trimmed credentials in oauth config")
		}
		if cfg.RedirectURL != "http://127.0.0.1:8888/callback" {
			t.Errorf("unexpected redirect %s", cfg.RedirectURL)
		}
		want := "playlist-read-private playlist-read-collaborative playlist-modify-private playlist-modify-public"
		if got := strings.Join(cfg.Scopes, " "); got != want {
			t.Errorf("unexpected scopes %q", got)
		}
	})

	t.Run("Consent Failure Surfaces", func(t *testing.T) {
		auth := &tu.FakeAuthorizer{Err: shared.ErrTimeout}
		_, err := Authenticate(context.Background(), Credentials{ClientID: id, ClientSecret: secret}, auth)
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if auth.Calls != 1 {
			t.Errorf("expected exactly one attempt, got %d", auth.Calls)
		}
	})

	t.Run("CredentialsFromConfig", func(t *testing.T) {
		c := CredentialsFromConfig(shared.SpotifyConfig{ClientID: id, ClientSecret: secret})
		n, err := c.Normalize()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n.RedirectURI != shared.DefaultRedirectURI {
			t.Errorf("expected default redirect, got %s", n.RedirectURI)
		}
	})
}
