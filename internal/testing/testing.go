// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytspot/internal/models"
	"golang.org/x/oauth2"
)

// FakeCatalog is an in-memory test double for services.Catalog.
//
// Search results are keyed by exact query. Appends are recorded per playlist in call order.
type FakeCatalog struct {
	User      models.User
	Playlists []models.Playlist
	Results   map[string][]models.CandidateTrack

	SearchErr error
	ListErr   error
	CreateErr error
	AppendErr error

	// FailAppendAt makes the nth append (1-based) fail with AppendErr.
	FailAppendAt int

	mu       sync.Mutex
	Searches []string
	Limits   []int
	Created  []models.NewPlaylist
	Appends  map[string][]string
}

// NewFakeCatalog returns a catalog for user "user-1" with no playlists.
func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		User:    models.User{ID: "user-1", DisplayName: "Test User"},
		Results: map[string][]models.CandidateTrack{},
		Appends: map[string][]string{},
	}
}

// AddResult registers a single-result search for query.
func (f *FakeCatalog) AddResult(query, id, name, artist string) {
	f.Results[query] = append(f.Results[query], models.CandidateTrack{
		CatalogID: id, DisplayName: name, PrimaryArtist: artist, Rank: len(f.Results[query]),
	})
}

func (f *FakeCatalog) CurrentUser(ctx context.Context) (models.User, error) {
	return f.User, nil
}

func (f *FakeCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.CandidateTrack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Searches = append(f.Searches, query)
	f.Limits = append(f.Limits, limit)
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	results := f.Results[query]
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (f *FakeCatalog) ListPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Limits = append(f.Limits, limit)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Playlists, nil
}

func (f *FakeCatalog) CreatePlaylist(ctx context.Context, ownerID string, p models.NewPlaylist) (models.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return models.Playlist{}, f.CreateErr
	}
	f.Created = append(f.Created, p)
	created := models.Playlist{ID: fmt.Sprintf("new-%d", len(f.Created)), Name: p.Name, Description: p.Description, Public: p.Public}
	f.Playlists = append(f.Playlists, created)
	return created, nil
}

func (f *FakeCatalog) AppendTrack(ctx context.Context, playlistID, trackID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.AppendErr != nil && (f.FailAppendAt == 0 || f.appendCount()+1 == f.FailAppendAt) {
		return f.AppendErr
	}
	f.Appends[playlistID] = append(f.Appends[playlistID], trackID)
	return nil
}

func (f *FakeCatalog) appendCount() int {
	n := 0
	for _, ids := range f.Appends {
		n += len(ids)
	}
	return n
}

// Appended returns the track ids appended to playlistID.
func (f *FakeCatalog) Appended(playlistID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Appends[playlistID]...)
}

// FakeSource is a test double for services.SourceLister.
type FakeSource struct {
	Entries []models.SourceEntry
	Err     error
	Calls   int
}

func (f *FakeSource) FlattenPlaylist(ctx context.Context, url string) ([]models.SourceEntry, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Entries, nil
}

// FakeAuthorizer is a test double for services.Authorizer.
type FakeAuthorizer struct {
	Token  *oauth2.Token
	Err    error
	Calls  int
	Config *oauth2.Config
}

func (f *FakeAuthorizer) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	f.Calls++
	f.Config = cfg
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Token == nil {
		return &oauth2.Token{AccessToken: "fake-access-token", TokenType: "Bearer"}, nil
	}
	return f.Token, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
