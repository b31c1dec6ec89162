package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lshigami/kioku/config"
	"github.com/lshigami/kioku/internal/apperr"
	"github.com/rs/zerolog/log"
)

// Client is the typed HTTP capability for talking to the remote sync
// server. Every failure to complete a request, and every non-2xx status,
// comes back wrapped in apperr.ErrNetwork.
type Client interface {
	// Configured reports whether a remote base URL is set. An unconfigured
	// client fails every call with apperr.ErrNetwork.
	Configured() bool
	CheckConnection(ctx context.Context) bool
	CreateDeck(ctx context.Context, payload DeckPayload) (*DeckResponse, error)
	CreateCard(ctx context.Context, remoteDeckID int64, payload CardPayload) (*CardResponse, error)
	FetchDecks(ctx context.Context) ([]DeckResponse, error)
	FetchCards(ctx context.Context, remoteDeckID int64) ([]CardResponse, error)
}

// DeckPayload is the create body for POST /api/decks.
type DeckPayload struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ShuffleCards bool    `json:"shuffle_cards"`
}

// DeckResponse is the server's representation of a deck. The server key is
// numeric and distinct from the local UUID.
type DeckResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	ShuffleCards bool       `json:"shuffle_cards"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// CardPayload is the create body for POST /api/decks/{id}/cards.
type CardPayload struct {
	Front         string  `json:"front"`
	FrontType     string  `json:"front_type"`
	FrontLanguage *string `json:"front_language,omitempty"`
	Back          string  `json:"back"`
	BackType      string  `json:"back_type"`
	BackLanguage  *string `json:"back_language,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type CardResponse struct {
	ID            int64   `json:"id"`
	Front         string  `json:"front"`
	FrontType     string  `json:"front_type"`
	FrontLanguage *string `json:"front_language,omitempty"`
	Back          string  `json:"back"`
	BackType      string  `json:"back_type"`
	BackLanguage  *string `json:"back_language,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Remote.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		baseURL: cfg.Remote.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) Configured() bool {
	return c.baseURL != ""
}

func (c *client) CheckConnection(ctx context.Context) bool {
	if !c.Configured() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *client) CreateDeck(ctx context.Context, payload DeckPayload) (*DeckResponse, error) {
	var out DeckResponse
	if err := c.do(ctx, http.MethodPost, "/api/decks", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) CreateCard(ctx context.Context, remoteDeckID int64, payload CardPayload) (*CardResponse, error) {
	var out CardResponse
	path := fmt.Sprintf("/api/decks/%d/cards", remoteDeckID)
	if err := c.do(ctx, http.MethodPost, path, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) FetchDecks(ctx context.Context) ([]DeckResponse, error) {
	var out []DeckResponse
	if err := c.do(ctx, http.MethodGet, "/api/decks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) FetchCards(ctx context.Context, remoteDeckID int64) ([]CardResponse, error) {
	var out []CardResponse
	path := fmt.Sprintf("/api/decks/%d/cards", remoteDeckID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if !c.Configured() {
		return fmt.Errorf("no remote server configured: %w", apperr.ErrNetwork)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, apperr.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
			Msg("Remote request returned non-success status")
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, apperr.ErrNetwork)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %v: %w", method, path, err, apperr.ErrNetwork)
	}
	return nil
}
