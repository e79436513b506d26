package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"gitlab.com/tozd/go/errors"
)

// Version is the release version of figma-icons, reported by the CLI and
// sent as part of the User-Agent header.
const Version = "0.3.0"

const (
	defaultBaseURL = "https://api.figma.com/v1"

	defaultRetryAttempts = 3
	defaultRetryDelay    = 2 * time.Second
)

// StatusError is returned when the Figma API or an asset host answers with a
// non-success status code.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Temporary reports whether the request is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic and transport settings tuned for large files.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client

	retryAttempts uint
	retryDelay    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry sets the number of attempts per request and the base delay
// between them. The delay grows linearly with the attempt number.
func WithRetry(attempts uint, delay time.Duration) ClientOption {
	return func(c *Client) {
		if attempts == 0 {
			attempts = 1
		}
		c.retryAttempts = attempts
		c.retryDelay = delay
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with connection pooling, disabled HTTP/2 (for large file stability),
// and a 10-minute timeout for very large files.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 20,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var fileKeyPattern = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$)`)

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// The pattern is anchored so that look-alike domains are rejected.
func ExtractFileKey(figmaURL string) (string, error) {
	matches := fileKeyPattern.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", errors.Errorf("invalid Figma URL format %q: must be a valid figma.com URL with /file/ or /design/ path", figmaURL)
	}

	return matches[1], nil
}

// GetFile retrieves the document tree of a file.
// Use FileQuery.Depth to fetch only the top levels (pages) and FileQuery.IDs
// to fetch the subtree of specific nodes.
func (c *Client) GetFile(ctx context.Context, fileKey string, query FileQuery) (*FileResponse, error) {
	params := url.Values{}
	if query.Depth > 0 {
		params.Set("depth", strconv.Itoa(query.Depth))
	}
	if len(query.IDs) > 0 {
		params.Set("ids", strings.Join(query.IDs, ","))
	}

	endpoint := fmt.Sprintf("%s/files/%s", c.baseURL, url.PathEscape(fileKey))
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	body, err := c.get(ctx, endpoint, true)
	if err != nil {
		return nil, errors.Errorf("get file %s: %w", fileKey, err)
	}

	var fileResp FileResponse
	if err := json.Unmarshal(body, &fileResp); err != nil {
		return nil, errors.Errorf("failed to parse file response: %w", err)
	}

	return &fileResp, nil
}

// GetImages requests rendered exports for the given node IDs in a single call.
// The returned mapping may lack entries, or hold empty URLs, for nodes that
// could not be rendered.
func (c *Client) GetImages(ctx context.Context, fileKey string, ids []string, format string) (*ImagesResponse, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("format", format)

	endpoint := fmt.Sprintf("%s/images/%s?%s", c.baseURL, url.PathEscape(fileKey), params.Encode())

	body, err := c.get(ctx, endpoint, true)
	if err != nil {
		return nil, errors.Errorf("get images for %s: %w", fileKey, err)
	}

	var imgResp ImagesResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, errors.Errorf("failed to parse images response: %w", err)
	}

	if imgResp.Err != nil && *imgResp.Err != "" {
		return nil, errors.Errorf("export images for %s: %s", fileKey, *imgResp.Err)
	}
	if imgResp.Status != 0 && imgResp.Status != http.StatusOK {
		return nil, &StatusError{URL: endpoint, StatusCode: imgResp.Status}
	}

	return &imgResp, nil
}

// Download fetches the body of a rendered asset. Export URLs are pre-signed,
// so the access token is not sent.
func (c *Client) Download(ctx context.Context, assetURL string) (string, error) {
	body, err := c.get(ctx, assetURL, false)
	if err != nil {
		return "", errors.Errorf("download asset: %w", err)
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, endpoint string, authenticated bool) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			return c.do(ctx, endpoint, authenticated)
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(n+1) * c.retryDelay
		}),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
}

func (c *Client) do(ctx context.Context, endpoint string, authenticated bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(errors.Errorf("failed to create request: %w", err))
	}

	if authenticated {
		req.Header.Set("X-Figma-Token", c.accessToken)
	}
	req.Header.Set("User-Agent", "figma-icons/"+Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	return true
}
