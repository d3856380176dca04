package fetcher

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/maltedev/marketplace-product-extractor/internal/document"
)

// Fetcher retrieves a product page over HTTP and hands back the parsed
// tree. It does no rendering: only markup present in the static response
// is visible to the extractor.
type Fetcher struct {
	client     *http.Client
	userAgents []string
}

func New(timeout time.Duration, userAgents []string) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		userAgents: userAgents,
	}
}

// Fetch downloads url and parses the response body into a Document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*document.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := document.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return doc, nil
}

func (f *Fetcher) userAgent() string {
	if len(f.userAgents) == 0 {
		return "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	return f.userAgents[rand.Intn(len(f.userAgents))]
}
