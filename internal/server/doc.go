// Package server runs the short-lived loopback server that completes Spotify's authorization-code flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] uses [http.ServeMux]
// internally with method filtering. [Middleware] runs in the order it was added.
//
// # OAuth Callback Handler
//
// [OAuthHandler] validates the state parameter, exchanges the authorization code for a token and sends exactly one
// [OAuthResult] through a channel. Later callbacks are rejected.
//
// # Browser Consent
//
// [BrowserConsent] implements services.Authorizer. It listens on the host of the configured redirect URL, opens
// the browser on the consent page and waits up to two minutes for the callback. The server is shut down before
// Authorize returns.
package server
