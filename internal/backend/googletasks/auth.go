package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"taskboard/internal/config"
)

const (
	// TasksScope is the OAuth scope for Google Tasks.
	TasksScope = "https://www.googleapis.com/auth/tasks"

	callbackTimeout      = 5 * time.Minute
	tokenExchangeTimeout = 30 * time.Second
	tokenCheckTimeout    = 10 * time.Second

	callbackStartPort   = 8085
	callbackMaxAttempts = 5
)

// ErrNoToken is returned when token.json is missing or unreadable.
var ErrNoToken = errors.New("not logged in")

// LoadOAuthConfig reads oauth_client.json from the config directory.
func LoadOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	data, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(data, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads token.json from the config directory.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoToken, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes token.json with mode 0600, creating the config directory.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	if err := cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// TokenValid reports whether the stored token has a refresh token and can
// still produce an access token.
func TokenValid(ctx context.Context, cfg *config.Config) bool {
	token, err := LoadToken(cfg)
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := LoadOAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
	defer cancel()
	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}

// Authorize runs the loopback authorization code flow with PKCE. The consent
// URL is written to prompt; the call blocks until the browser redirects back.
func Authorize(ctx context.Context, oauthConfig *oauth2.Config, prompt io.Writer) (*oauth2.Token, error) {
	port, listener, err := listenCallback()
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	conf := *oauthConfig
	conf.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	verifier := oauth2.GenerateVerifier()
	state := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)
	fmt.Fprintln(prompt, "Open this URL in your browser:")
	fmt.Fprintln(prompt, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			sendErr(errCh, errors.New("state mismatch in callback"))
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			sendErr(errCh, errors.New("no code in callback"))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sendErr(errCh, err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(callbackTimeout):
		return nil, errors.New("oauth callback timed out")
	case <-ctx.Done():
		return nil, errors.New("cancelled")
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()
	token, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

func sendErr(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func listenCallback() (int, net.Listener, error) {
	for i := 0; i < callbackMaxAttempts; i++ {
		port := callbackStartPort + i
		l, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, l, nil
		}
	}
	return 0, nil, errors.New("could not bind to local port for OAuth callback")
}
