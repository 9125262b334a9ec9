package server

import (
	"fmt"
	"html/template"
	"net/http"
	"sync/atomic"

	"github.com/desertthunder/ytspot/internal/shared"
	"golang.org/x/oauth2"
)

// OAuthResult is the single outcome of a consent callback: a token or an error.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// OAuthHandler answers Spotify's redirect to /callback. It accepts one request; later ones get 400.
type OAuthHandler struct {
	config  *oauth2.Config
	state   string
	claimed atomic.Bool
	results chan OAuthResult
}

// NewOAuthHandler creates a handler that expects the callback to echo state.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{config: config, state: state, results: make(chan OAuthResult, 1)}
}

func (h *OAuthHandler) Routes() []string {
	return []string{"/callback"}
}

func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.claimed.CompareAndSwap(false, true) {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}

	token, status, err := h.exchange(r)
	h.publish(OAuthResult{Token: token, err: err})

	page := callbackPage{Heading: "Spotify connected", Detail: "Return to the terminal to pick a playlist."}
	if err != nil {
		page = callbackPage{Heading: "Authorization failed", Detail: err.Error(), Failed: true}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	callbackTemplate.Execute(w, page)
}

// exchange checks the callback query and trades the code for a token.
func (h *OAuthHandler) exchange(r *http.Request) (*oauth2.Token, int, error) {
	query := r.URL.Query()
	if query.Get("state") != h.state {
		return nil, http.StatusBadRequest, fmt.Errorf("%w: state mismatch", shared.ErrAuthFailed)
	}

	code := query.Get("code")
	if code == "" {
		reason := query.Get("error")
		if desc := query.Get("error_description"); desc != "" {
			reason += ": " + desc
		}
		if reason == "" {
			reason = "callback carried no code"
		}
		return nil, http.StatusBadRequest, fmt.Errorf("%w: %s", shared.ErrAuthFailed, reason)
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}
	return token, http.StatusOK, nil
}

func (h *OAuthHandler) publish(result OAuthResult) {
	h.results <- result
	close(h.results)
}

// Result delivers exactly one [OAuthResult] and is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.results
}

type callbackPage struct {
	Heading string
	Detail  string
	Failed  bool
}

var callbackTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>ytspot</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        main { text-align: center; background: white; padding: 2rem; border-radius: 8px; }
        h1 { color: {{if .Failed}}#D7263D{{else}}#1DB954{{end}}; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <main>
        <h1>{{.Heading}}</h1>
        <p>{{.Detail}}</p>
    </main>
</body>
</html>
`))
