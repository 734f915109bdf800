// Package syncclient talks to the bookmark API on behalf of a device:
// push single bookmarks, pull an owner's collection, import a batch.
// There is no retry policy; a failed push is logged and the bookmark
// stays local until the next sync.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pinbox/pinbox/internal/domain"
	"github.com/pinbox/pinbox/internal/logger"
	"github.com/pinbox/pinbox/internal/utils"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
	logger  logger.Logger
}

// New creates a client against baseURL (scheme://host[:port], no trailing
// slash required). A zero timeout falls back to the default.
func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  log,
	}
}

type listResponse struct {
	Items []domain.Bookmark `json:"items"`
}

type importRequest struct {
	UserID string            `json:"user_id"`
	Items  []domain.Bookmark `json:"items"`
}

type importResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Push sends one bookmark to the server. The server upserts by id, so
// pushing an already-synced bookmark is harmless.
func (c *Client) Push(ctx context.Context, b *domain.Bookmark) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode bookmark: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/bookmarks", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return c.apiError("push", resp)
	}
	return nil
}

// PushAsync fires Push in the background and returns a channel that
// receives the outcome once, then closes. Failures are logged here;
// callers that only want fire-and-forget can drop the channel.
func (c *Client) PushAsync(ctx context.Context, b domain.Bookmark) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := c.Push(ctx, &b)
		if err != nil {
			c.logger.Warn("background push failed",
				logger.String("id", b.ID),
				logger.Error(err))
		}
		done <- err
	}()
	return done
}

// Pull fetches the owner's full remote collection.
func (c *Client) Pull(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	if userID == "" {
		return nil, fmt.Errorf("pull requires a user id")
	}

	endpoint := c.baseURL + "/bookmarks?user_id=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pull request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError("pull", resp)
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode pull response: %w", err)
	}
	if out.Items == nil {
		out.Items = []domain.Bookmark{}
	}
	return out.Items, nil
}

// Import sends a whole batch in one request and returns the number of
// bookmarks the server accepted.
func (c *Client) Import(ctx context.Context, userID string, items []domain.Bookmark) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("import requires a user id")
	}
	if items == nil {
		items = []domain.Bookmark{}
	}

	body, err := json.Marshal(importRequest{UserID: userID, Items: items})
	if err != nil {
		return 0, fmt.Errorf("failed to encode import batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/bookmarks/import", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build import request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("import request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, c.apiError("import", resp)
	}

	var out importResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode import response: %w", err)
	}
	return out.Imported, nil
}

// apiError turns a non-200 response into an error carrying the server's
// message when it sent one.
func (c *Client) apiError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	var apiErr errorResponse
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%s rejected (%d %s): %s", op, resp.StatusCode, apiErr.Error, apiErr.Message)
	}
	return fmt.Errorf("%s failed with status %d", op, resp.StatusCode)
}
