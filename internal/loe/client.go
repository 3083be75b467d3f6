// Package loe implements a client for the Lviv power utility's published
// schedule feed. The feed is a hydra:Collection JSON document whose
// photo-grafic menu entries carry the outage schedule as raw HTML.
package loe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// menusPath is the fixed endpoint and query for the schedule feed:
// first page, photo-grafic menus only.
const menusPath = "/api/menus?page=1&type=photo-grafic"

// ErrUnavailable marks any failure to obtain the schedule payload: network
// errors, non-2xx responses, malformed JSON, or a response without a
// photo-grafic HTML payload. Callers treat these as transient and retry on
// the next poll cycle.
var ErrUnavailable = errors.New("schedule feed unavailable")

// Client fetches the outage schedule payload from the LOE menus API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a feed client for the given base URL (scheme and host,
// without the menus path) using the given request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "loe_client"),
	}
}

type menusResponse struct {
	Members []menuMember `json:"hydra:member"`
}

type menuMember struct {
	Type      string     `json:"type"`
	MenuItems []menuItem `json:"menuItems"`
}

type menuItem struct {
	Name    string `json:"name"`
	RawHTML string `json:"rawhtml"`
}

// FetchRawHTML retrieves the current schedule payload: the rawhtml field of
// the first photo-grafic menu item. If no photo-grafic member carries a
// payload, any member's first rawhtml is used as a fallback.
func (c *Client) FetchRawHTML(ctx context.Context) (string, error) {
	url := c.baseURL + menusPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}

	c.logger.DebugContext(ctx, "Fetching schedule feed", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch menus: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	var menus menusResponse
	if err := json.Unmarshal(body, &menus); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", ErrUnavailable, err)
	}
	if len(menus.Members) == 0 {
		return "", fmt.Errorf("%w: response has no hydra:member entries", ErrUnavailable)
	}

	if raw := firstRawHTML(menus.Members, true); raw != "" {
		return raw, nil
	}
	// Fallback: the feed sometimes omits the type field; take any payload.
	if raw := firstRawHTML(menus.Members, false); raw != "" {
		c.logger.WarnContext(ctx, "No photo-grafic member found, using fallback payload")
		return raw, nil
	}

	return "", fmt.Errorf("%w: no rawhtml payload in response", ErrUnavailable)
}

// firstRawHTML scans members for the first non-empty rawhtml payload. When
// typedOnly is set, only members typed photo-grafic are considered.
func firstRawHTML(members []menuMember, typedOnly bool) string {
	for _, m := range members {
		if typedOnly && m.Type != "photo-grafic" {
			continue
		}
		for _, item := range m.MenuItems {
			if item.RawHTML != "" {
				return item.RawHTML
			}
		}
	}
	return ""
}
