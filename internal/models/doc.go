// Package models defines the values that flow through a playlist transfer.
//
// Source side:
//   - [SourceEntry] : one flat playlist item (title + video id), read once and never mutated
//
// Catalog side:
//   - [CandidateTrack] : a search result, ranked by the catalog (rank 0 is best)
//   - [Playlist] : a playlist owned or followed by the authenticated user
//   - [NewPlaylist] : the fields needed to create a destination playlist
//   - [DestinationPlaylistRef] : the resolved destination for a transfer
//   - [User] : the authenticated catalog user
//
// Persistence:
//   - [CachedMatch] : a recorded query -> track lookup in the match cache
package models
