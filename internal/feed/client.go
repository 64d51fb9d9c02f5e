package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrFetchFailed marks a terminal feed failure: the transport failed or the
// source answered with a non-success status. Callers surface it once and do
// not retry.
var ErrFetchFailed = errors.New("feed: fetch failed")

// Client retrieves and parses the schedule feed. The source is either an
// http(s) URL or a local file path.
type Client struct {
	source     string
	httpClient *http.Client
}

// NewClient builds a feed client for the given source.
func NewClient(source string) *Client {
	return &Client{
		source:     strings.TrimSpace(source),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves the feed and parses it into events. Any transport or
// status failure collapses into ErrFetchFailed; there is no partial parse.
func (c *Client) Fetch(ctx context.Context) ([]Event, error) {
	if c == nil || c.source == "" {
		return nil, fmt.Errorf("%w: no source configured", ErrFetchFailed)
	}

	raw, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(raw), nil
}

func (c *Client) read(ctx context.Context) (string, error) {
	if strings.HasPrefix(c.source, "http://") || strings.HasPrefix(c.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		return string(body), nil
	}

	body, err := os.ReadFile(c.source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return string(body), nil
}
