package scripture

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
)

// Client fetches chapter text from BibleGateway's print view.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a BibleGateway client with a request timeout and a
// polite one-request-per-second pace.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:     "https://www.biblegateway.com",
		rateLimiter: newRateLimiter(time.Second),
	}
}

// ChapterText downloads one chapter and strips it to plain text.
func (c *Client) ChapterText(ctx context.Context, book string, chapter int, translation string) (string, error) {
	if !ValidTranslation(translation) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTranslation, translation)
	}

	c.rateLimiter.wait()

	q := url.Values{}
	q.Set("search", fmt.Sprintf("%s %d", book, chapter))
	q.Set("version", translation)
	q.Set("interface", "print")

	reqURL := fmt.Sprintf("%s/passage/?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "horner-bible-reading-plan-generator/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s %d: %w", book, chapter, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s %d: unexpected status %d", book, chapter, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s %d: %w", book, chapter, err)
	}

	text := passageText(doc)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("fetch %s %d: no passage text in response", book, chapter)
	}
	return text, nil
}
