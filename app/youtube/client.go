package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// MaxPageSize is the largest maxResults value the videos.list endpoint accepts.
const MaxPageSize = 50

var (
	// ErrMissingAPIKey is returned when no API key is configured. No request
	// is ever attempted without one.
	ErrMissingAPIKey = errors.New("youtube: missing API key")

	// ErrQuotaExceeded signals that the daily request quota is exhausted.
	// Callers treat this as a stop condition rather than a failure.
	ErrQuotaExceeded = errors.New("youtube: quota exceeded")
)

// Client talks to the YouTube Data API v3.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// ListTrending fetches one page of the "most popular" chart for a region.
// An empty pageToken requests the first page.
func (c *Client) ListTrending(ctx context.Context, region string, pageSize int, pageToken string) (*VideoListPage, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", region)
	params.Set("maxResults", strconv.Itoa(pageSize))
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	reqURL := c.baseURL + "/videos?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var page VideoListPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &page, nil
}

// apiError is the structured error body the API returns on non-200 responses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (c *Client) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Code != 0 {
		if isQuotaError(apiErr) {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Error.Message)
		}
		return fmt.Errorf("API error %d: %s", apiErr.Error.Code, apiErr.Error.Message)
	}

	return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
}

func isQuotaError(apiErr apiError) bool {
	for _, e := range apiErr.Error.Errors {
		switch e.Reason {
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
			return true
		}
	}
	return strings.Contains(strings.ToLower(apiErr.Error.Message), "quota")
}
