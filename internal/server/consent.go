package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytspot/internal/shared"
	"golang.org/x/oauth2"
)

// DefaultConsentTimeout bounds how long Authorize waits for the callback.
const DefaultConsentTimeout = 2 * time.Minute

// BrowserConsent runs the interactive half of the authorization-code flow on a loopback server.
type BrowserConsent struct {
	Logger  *log.Logger
	Timeout time.Duration

	// Open presents the consent URL to the operator. Defaults to [shared.OpenBrowser].
	Open func(url string) error

	// Prompt is called when the browser could not be opened.
	Prompt func(url string)
}

// NewBrowserConsent returns a [BrowserConsent] with the default timeout and browser launcher.
func NewBrowserConsent(logger *log.Logger) *BrowserConsent {
	return &BrowserConsent{Logger: logger, Timeout: DefaultConsentTimeout, Open: shared.OpenBrowser}
}

// Authorize implements services.Authorizer.
func (b *BrowserConsent) Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	redirect, err := url.Parse(cfg.RedirectURL)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("%w: redirect_uri %q", shared.ErrInvalidConfig, cfg.RedirectURL)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	handler := NewOAuthHandler(cfg, state)
	router := NewBasicRouter()
	if b.Logger != nil {
		router.Use(RequestLogger(b.Logger))
	}
	path := redirect.Path
	if path == "" {
		path = "/"
	}
	router.Handle(http.MethodGet, path, handler)

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("%w: listen on %s: %v", shared.ErrServiceUnavailable, redirect.Host, err)
	}

	httpServer := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serverErrors := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()
	defer b.shutdown(httpServer)

	authURL := cfg.AuthCodeURL(state)
	b.debug("waiting for consent", "addr", redirect.Host)

	open := b.Open
	if open == nil {
		open = shared.OpenBrowser
	}
	if err := open(authURL); err != nil {
		b.warn("failed to open browser automatically", "error", err)
		if b.Prompt != nil {
			b.Prompt(authURL)
		}
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultConsentTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, result.Error()
		}
		if result.Token == nil {
			return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
		}
		return result.Token, nil
	case err := <-serverErrors:
		return nil, fmt.Errorf("%w: callback server: %v", shared.ErrServiceUnavailable, err)
	case <-timer.C:
		return nil, fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *BrowserConsent) shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		b.warn("error shutting down callback server", "error", err)
	}
}

func (b *BrowserConsent) debug(msg string, kv ...any) {
	if b.Logger != nil {
		b.Logger.Debug(msg, kv...)
	}
}

func (b *BrowserConsent) warn(msg string, kv ...any) {
	if b.Logger != nil {
		b.Logger.Warn(msg, kv...)
	}
}
