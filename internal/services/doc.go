// Package services implements the network collaborators of a transfer.
//
// # Interfaces
//
// Three small interfaces describe what a transfer needs from the outside world:
//   - [Catalog] : search, list, create and append against the destination catalog
//   - [SourceLister] : flat listing of a source playlist
//   - [Authorizer] : interactive OAuth consent, returning a token
//
// # Spotify Implementation
//
// [SpotifyService] implements [Catalog] over the Spotify Web API. The OAuth2 configuration requests exactly the
// playlist read and modify scopes in [SpotifyScopes]. After [SpotifyService.Authenticate] the [oauth2.Client]
// attaches the bearer token to every request.
//
// # YouTube Implementation
//
// [YouTubeService] implements [SourceLister] with ytdlp's playlist item listing. Only the title and video id of each
// item are read.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : 401 from the API, reauthorization needed
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//   - [shared.ErrInvalidInput] : a URL with no playlist id
//
// Nothing in this package retries.
package services
