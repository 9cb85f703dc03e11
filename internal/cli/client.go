package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deeptrader/internal/game"
	"deeptrader/internal/store"
)

// Client talks to a dtsim-api host.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   strings.TrimSpace(token),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

// IsAPIError reports whether err came back from the API rather than the network.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func (c *Client) Health(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) ListGames(ctx context.Context) ([]store.SlotInfo, error) {
	var out struct {
		Games []store.SlotInfo `json:"games"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/games", nil, &out)
	return out.Games, err
}

func (c *Client) NewGame(ctx context.Context, slot, playerName, countryID string) (game.Summary, error) {
	var out game.Summary
	err := c.jsonRequest(ctx, http.MethodPost, gamePath(slot, ""), map[string]any{
		"player_name": playerName,
		"country_id":  countryID,
	}, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context, slot string) (game.Summary, error) {
	var out game.Summary
	err := c.jsonRequest(ctx, http.MethodGet, gamePath(slot, "/summary"), nil, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, slot string) (game.GameState, error) {
	var raw json.RawMessage
	if err := c.jsonRequest(ctx, http.MethodGet, gamePath(slot, ""), nil, &raw); err != nil {
		return game.GameState{}, err
	}
	return game.DecodeState(raw)
}

// Dispatch sends one action in its wire envelope.
func (c *Client) Dispatch(ctx context.Context, slot string, a game.Action) (game.Summary, error) {
	raw, err := game.EncodeAction(a)
	if err != nil {
		return game.Summary{}, err
	}
	var out game.Summary
	err = c.jsonRequest(ctx, http.MethodPost, gamePath(slot, "/actions"), json.RawMessage(raw), &out)
	return out, err
}

func (c *Client) Save(ctx context.Context, slot string) error {
	return c.jsonRequest(ctx, http.MethodPost, gamePath(slot, "/save"), nil, nil)
}

func (c *Client) Delete(ctx context.Context, slot string) error {
	return c.jsonRequest(ctx, http.MethodDelete, gamePath(slot, ""), nil, nil)
}

func gamePath(slot, suffix string) string {
	return "/v1/games/" + url.PathEscape(slot) + suffix
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var payload struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
