package models

import (
	"fmt"
	"time"
)

// SourceEntry is one item of a source playlist, in playlist order.
type SourceEntry struct {
	Title    string
	SourceID string
}

// CandidateTrack is one catalog search result.
type CandidateTrack struct {
	CatalogID     string
	DisplayName   string
	PrimaryArtist string
	Rank          int
}

// DisplayLine renders the track as "<name> by <artist>".
func (c CandidateTrack) DisplayLine() string {
	return fmt.Sprintf("%s by %s", c.DisplayName, c.PrimaryArtist)
}

// Playlist represents a catalog playlist.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}

// NewPlaylist holds what is needed to create a playlist.
type NewPlaylist struct {
	Name        string
	Description string
	Public      bool
}

// DestinationPlaylistRef identifies the playlist a transfer appends to.
type DestinationPlaylistRef struct {
	ID    string
	Name  string
	IsNew bool
}

// User is the authenticated catalog user.
type User struct {
	ID          string
	DisplayName string
}

// CachedMatch is a recorded catalog lookup keyed by its normalized query.
type CachedMatch struct {
	ID            string
	Sequence      int64
	Query         string
	SourceID      string
	CatalogID     string
	DisplayName   string
	PrimaryArtist string
	Created       time.Time
	Updated       time.Time
}

// Track returns the cached lookup as a rank 0 candidate.
func (m CachedMatch) Track() CandidateTrack {
	return CandidateTrack{CatalogID: m.CatalogID, DisplayName: m.DisplayName, PrimaryArtist: m.PrimaryArtist}
}
