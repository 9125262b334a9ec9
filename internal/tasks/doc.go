// Package tasks moves a YouTube playlist into a Spotify playlist.
//
// # Pipeline
//
//  1. [Authenticate] : trims and length-checks the client credentials, then obtains consent through a
//     services.Authorizer and returns the authorized Spotify client. The client is passed explicitly to
//     everything that follows.
//  2. [ReadSource] : checks the URL and flattens the playlist to title + video id, in order.
//  3. [ListCandidates] and [Resolve] : a bounded preview of the user's playlists, and the operator's [Choice]
//     turned into a destination (existing or newly created).
//  4. [Matcher] : strips "(...)" annotations from the title, searches the catalog and picks a candidate
//     through a [Scorer] (rank 0 by default).
//  5. [Transfer] : the per-entry loop over a [TransferSession].
//
// [PlaylistEngine] runs steps 2-5 for the CLI and the TUI.
//
// # Transfer Loop
//
// One entry is processed per tick, and ticks are spaced by a rate.Limiter. A matched entry sends a TrackAdded
// [ProgressUpdate] and is then appended with one catalog call. A [NoMatchError] either skips the entry
// ([SkipMisses]) or stops the session ([AbortOnMiss]). Any other error stops the session. Cancelling the context
// stops the loop before its next tick.
//
// # Progress Reporting
//
// Updates are sent on a caller-owned channel and are never dropped: a send blocks until the receiver takes it or
// the context is done. A complete session ends with exactly one Finished update.
//
// # Match Cache
//
// The optional [TrackCacher] records every successful lookup. Errors from the cache are logged and ignored.
package tasks
