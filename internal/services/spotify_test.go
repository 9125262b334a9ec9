package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	"golang.org/x/oauth2"
)

const (
	testClientID     = "0123456789abcdef0123456789abcdef"
	testClientSecret = "fedcba9876543210fedcba9876543210"
)

func newTestSpotify(t *testing.T, handler http.HandlerFunc) *SpotifyService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	srv, err := NewSpotifyService(testClientID, testClientSecret, "")
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if err := srv.Authenticate(context.Background(), &oauth2.Token{AccessToken: "test_access_token"}); err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	srv.SetBaseURL(server.URL)
	return srv
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(testClientID, testClientSecret, "http://127.0.0.1:9999/callback")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if srv.OAuthConfig().RedirectURL != "http://127.0.0.1:9999/callback" {
				t.Errorf("unexpected redirect %s", srv.OAuthConfig().RedirectURL)
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			_, err := NewSpotifyService("", testClientSecret, "")
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Default Redirect URI", func(t *testing.T) {
			srv, _ := NewSpotifyService(testClientID, testClientSecret, "")
			if srv.OAuthConfig().RedirectURL != "http://127.0.0.1:8888/callback" {
				t.Errorf("expected default redirect URI, got %s", srv.OAuthConfig().RedirectURL)
			}
		})

		t.Run("Scopes", func(t *testing.T) {
			srv, _ := NewSpotifyService(testClientID, testClientSecret, "")
			want := []string{"playlist-read-private", "playlist-read-collaborative", "playlist-modify-private", "playlist-modify-public"}
			got := srv.OAuthConfig().Scopes
			if len(got) != len(want) {
				t.Fatalf("expected %d scopes, got %v", len(want), got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("scope %d: expected %s, got %s", i, want[i], got[i])
				}
			}
		})
	})

	t.Run("Get AuthURL", func(t *testing.T) {
		srv, _ := NewSpotifyService(testClientID, testClientSecret, "")
		authURL := srv.GetAuthURL("test_state")

		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Error("auth URL should contain Spotify domain")
		}
		if !strings.Contains(authURL, testClientID) {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
		if !strings.Contains(authURL, "playlist-modify-public") {
			t.Error("auth URL should contain scopes")
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv, _ := NewSpotifyService(testClientID, testClientSecret, "")
		if srv.IsAuthenticated() {
			t.Fatal("expected unauthenticated service")
		}

		if err := srv.Authenticate(context.Background(), &oauth2.Token{}); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for empty token, got %v", err)
		}

		if err := srv.Authenticate(context.Background(), &oauth2.Token{AccessToken: "tok"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !srv.IsAuthenticated() {
			t.Error("expected authenticated service")
		}
	})

	t.Run("Requests Without Authentication", func(t *testing.T) {
		srv, _ := NewSpotifyService(testClientID, testClientSecret, "")
		_, err := srv.CurrentUser(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("CurrentUser", func(t *testing.T) {
		srv := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer test_access_token" {
				t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`{"id":"user-1","display_name":"Operator"}`))
		})

		user, err := srv.CurrentUser(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.ID != "user-1" || user.DisplayName != "Operator" {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("SearchTracks", func(t *testing.T) {
		srv := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if r.URL.Path != "/search" || q.Get("type") != "track" || q.Get("limit") != "20" || q.Get("q") != "Song A" {
				t.Errorf("unexpected search request %s", r.URL.String())
			}
			w.Write([]byte(`{"tracks":{"total":2,"items":[
				{"id":"t1","name":"Song A","artists":[{"name":"Band X"},{"name":"Guest"}]},
				{"id":"t2","name":"Song A (Live)","artists":[]}
			]}}`))
		})

		tracks, err := srv.SearchTracks(context.Background(), "Song A", 20)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].CatalogID != "t1" || tracks[0].PrimaryArtist != "Band X" || tracks[0].Rank != 0 {
			t.Errorf("unexpected first track %+v", tracks[0])
		}
		if tracks[1].Rank != 1 || tracks[1].PrimaryArtist != "" {
			t.Errorf("unexpected second track %+v", tracks[1])
		}
	})

	t.Run("ListPlaylists", func(t *testing.T) {
		srv := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me/playlists" || r.URL.Query().Get("limit") != "9" || r.URL.Query().Get("offset") != "0" {
				t.Errorf("unexpected request %s", r.URL.String())
			}
			w.Write([]byte(`{"items":[{"id":"p1","name":"Road Trip","public":true,"tracks":{"total":4}}],"total":1,"next":"more"}`))
		})

		playlists, err := srv.ListPlaylists(context.Background(), 9)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(playlists) != 1 || playlists[0].Name != "Road Trip" || playlists[0].TrackCount != 4 || !playlists[0].Public {
			t.Errorf("unexpected playlists %+v", playlists)
		}
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		srv := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/users/user-1/playlists" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var body createPlaylistRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Name != "Gym" || body.Public || body.Description != "" {
				t.Errorf("unexpected body %+v", body)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"new-1","name":"Gym","public":false}`))
		})

		p, err := srv.CreatePlaylist(context.Background(), "user-1", models.NewPlaylist{Name: "Gym"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.ID != "new-1" || p.Name != "Gym" {
			t.Errorf("unexpected playlist %+v", p)
		}
	})

	t.Run("AppendTrack", func(t *testing.T) {
		srv := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/playlists/p1/tracks" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var body appendTracksRequest
			json.NewDecoder(r.Body).Decode(&body)
			if len(body.URIs) != 1 || body.URIs[0] != "spotify:track:t1" {
				t.Errorf("unexpected uris %v", body.URIs)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"snapshot_id":"abc"}`))
		})

		if err := srv.AppendTrack(context.Background(), "p1", "t1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Error Statuses", func(t *testing.T) {
		tests := []struct {
			name   string
			status int
			want   error
		}{
			{name: "Unauthorized", status: http.StatusUnauthorized, want: shared.ErrTokenExpired},
			{name: "Forbidden", status: http.StatusForbidden, want: shared.ErrAPIRequest},
			{name: "Server Error", status: http.StatusInternalServerError, want: shared.ErrAPIRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				srv := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					w.Write([]byte(`{"error":{"status":0,"message":"nope"}}`))
				})

				err := srv.AppendTrack(context.Background(), "p1", "t1")
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
				if !strings.Contains(err.Error(), "nope") {
					t.Errorf("expected API message in error, got %v", err)
				}
			})
		}
	})

	t.Run("clampLimit", func(t *testing.T) {
		for in, want := range map[int]int{0: 20, -1: 20, 9: 9, 50: 50, 80: 50} {
			if got := clampLimit(in); got != want {
				t.Errorf("clampLimit(%d) = %d, want %d", in, got, want)
			}
		}
	})
}
