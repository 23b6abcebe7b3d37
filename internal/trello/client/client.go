// Package client implements a thin authenticated client for the Trello
// REST API. It holds immutable credentials and forwards one call per tool
// invocation; responses are returned as raw JSON without interpretation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bobmcallan/trello-mcp/internal/trello/common"
	"github.com/bobmcallan/trello-mcp/internal/trello/models"
)

// Client issues authenticated requests against the Trello REST API.
type Client struct {
	baseURL    string
	boardID    string
	key        string
	token      string
	httpClient *http.Client
	logger     *common.Logger
}

// New creates a Trello client from config. Key and token are injected as
// query parameters on every request (Trello's auth model).
func New(cfg common.TrelloConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		boardID: cfg.BoardID,
		key:     cfg.APIKey,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: logger,
	}
}

// BoardID returns the configured board identifier.
func (c *Client) BoardID() string {
	return c.boardID
}

// CardsByList returns the cards in the given list.
func (c *Client) CardsByList(ctx context.Context, listID string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/lists/%s/cards", url.PathEscape(listID)), nil)
}

// Lists returns all lists on the configured board.
func (c *Client) Lists(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/boards/%s/lists", url.PathEscape(c.boardID)), nil)
}

// RecentActivity returns the limit most recent actions on the board.
func (c *Client) RecentActivity(ctx context.Context, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return c.get(ctx, fmt.Sprintf("/boards/%s/actions", url.PathEscape(c.boardID)), params)
}

// AddCard creates a card on a list.
func (c *Client) AddCard(ctx context.Context, req models.AddCardRequest) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, "/cards", nil, req)
}

// UpdateCard patches fields on an existing card.
func (c *Client) UpdateCard(ctx context.Context, req models.UpdateCardRequest) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/cards/%s", url.PathEscape(req.CardID)), nil, req)
}

// ArchiveCard sets a card closed.
func (c *Client) ArchiveCard(ctx context.Context, cardID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("value", "true")
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/cards/%s/closed", url.PathEscape(cardID)), params, nil)
}

// AddList creates a list on the configured board.
func (c *Client) AddList(ctx context.Context, name string) (json.RawMessage, error) {
	body := map[string]string{
		"name":    name,
		"idBoard": c.boardID,
	}
	return c.send(ctx, http.MethodPost, "/lists", nil, body)
}

// ArchiveList sets a list closed.
func (c *Client) ArchiveList(ctx context.Context, listID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("value", "true")
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/lists/%s/closed", url.PathEscape(listID)), params, nil)
}

// MyCards returns the cards assigned to the token's member.
func (c *Client) MyCards(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/members/me/cards", nil)
}

// Search runs a cross-board keyword search for cards.
func (c *Client) Search(ctx context.Context, query string, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("modelTypes", "cards")
	params.Set("cards_limit", strconv.Itoa(limit))
	return c.get(ctx, "/search", params)
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// send performs a request with an optional JSON body.
func (c *Client) send(ctx context.Context, method, path string, params url.Values, payload interface{}) (json.RawMessage, error) {
	return c.do(ctx, method, path, params, payload)
}

// do performs an HTTP request with auth query parameters and returns the
// raw response body. Bodies of >=400 responses are decoded for their error
// message where possible.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload interface{}) (json.RawMessage, error) {
	// Log request (Debug) — path only, the full URL carries credentials
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("Trello API Request")

	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.key)
	params.Set("token", c.token)

	var bodyReader io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+params.Encode(), bodyReader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Dur("duration", duration).Msg("Trello API Request Failed")
		return nil, fmt.Errorf("trello request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Log response (Debug)
	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("Trello API Response")

	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, body)
	}

	return body, nil
}

// apiError extracts the message from a Trello error body. Trello returns
// {"message": ...} for JSON errors and a bare string otherwise.
func apiError(status int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			return fmt.Errorf("%s", errResp.Message)
		}
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
	}
	return fmt.Errorf("trello returned %d: %s", status, string(body))
}
