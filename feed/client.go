package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultFeedURL is the default upstream feed endpoint
	DefaultFeedURL = "https://api.airdrops.io/v2/airdrops"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Error kinds reported to the HTTP boundary
const (
	KindUnavailable = "upstream_unavailable"
	KindMalformed   = "upstream_malformed"
)

// Client fetches the airdrop feed from the upstream endpoint
type Client struct {
	feedURL    string
	httpClient *http.Client
}

// Config holds the configuration for the feed client
type Config struct {
	FeedURL string
	Timeout time.Duration
}

// NewClient creates a new feed client with default configuration
func NewClient() *Client {
	return NewClientWithConfig(Config{
		FeedURL: DefaultFeedURL,
		Timeout: DefaultTimeout,
	})
}

// NewClientWithConfig creates a new feed client with custom configuration
func NewClientWithConfig(config Config) *Client {
	if config.FeedURL == "" {
		config.FeedURL = DefaultFeedURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		feedURL: config.FeedURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// FetchAirdrops performs one GET against the upstream feed and decodes the
// response body. Top-level fields other than airdrops are passed through.
func (c *Client) FetchAirdrops() (*Payload, error) {
	req, err := http.NewRequest(http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, &FeedError{Kind: KindUnavailable, Message: "failed to create request", Err: err}
	}

	// The upstream rejects non-browser clients, so emulate one
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://airdrops.io/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FeedError{Kind: KindUnavailable, Message: "failed to reach upstream", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FeedError{Kind: KindUnavailable, Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FeedError{
			Kind:    KindUnavailable,
			Message: fmt.Sprintf("upstream returned status %d", resp.StatusCode),
		}
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FeedError{Kind: KindMalformed, Message: "failed to decode response body", Err: err}
	}

	return &payload, nil
}

// FeedError represents an upstream fetch failure
type FeedError struct {
	Kind    string // KindUnavailable or KindMalformed
	Message string
	Err     error
}

func (e *FeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}
