// Package repositories implements SQLite persistence for the match cache.
//
// [MatchRepository] stores one row per normalized search query with the catalog track it resolved to.
// [MatchCacheAdapter] exposes it to the matcher as a cache of catalog lookups. It never stores transfer
// progress, so a session cannot be resumed from it.
//
// Sequence numbers come from [NextSequence], which atomically increments a per-table counter row.
package repositories
